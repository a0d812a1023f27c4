// Package teams is an in-memory team store.
//
// Apigee Hybrid has no native teams or companies API, so the gateway
// keeps team records itself. State lives in process memory and resets
// on restart; the Repository interface leaves room for a persistent
// backend later.
package teams
