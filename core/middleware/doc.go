// Package middleware groups the Fiber middlewares used by the report
// server: rayid for request correlation and auth for API key protection.
package middleware
