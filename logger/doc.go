// Package logger provides structured logging for the gateway using
// zerolog.
//
// It supports JSON and console output formats, log level configuration,
// and component-scoped loggers with structured fields. Correlation IDs
// assigned by the resilience layer are attached as the correlation_id
// field so a single tool call can be traced across retries.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("apigee")
//	log.Info("proxy deployed", logger.Fields("proxy", name, "env", env))
package logger
