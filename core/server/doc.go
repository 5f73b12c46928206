// Package server holds the configuration for the operator-facing report
// server started by the serve command.
package server
