// Package types defines the Store and Backend interfaces, the backend
// Config, and the standard errors shared by the keeper storage adapters.
package types
