// Package tools exposes the gateway's callable tool surface. Each tool
// pairs a typed definition (name, description, parameters) with a
// handler that validates arguments and delegates to the Apigee client
// or the team repository. The dispatcher keeps the catalog and the
// handlers in one registry so the two cannot drift apart.
package tools
