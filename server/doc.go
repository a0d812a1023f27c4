// Package server exposes the gateway over HTTP: a tool catalog, a tool
// invocation endpoint, and health probes. It is a thin presentation
// layer; argument validation and upstream concerns live in the tools
// and apigee packages.
package server
