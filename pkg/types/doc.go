// Package types defines the request, outcome, and configuration types shared
// by the fieldmod CLI and its SQLite editor, along with the standard errors
// returned during request validation.
package types
