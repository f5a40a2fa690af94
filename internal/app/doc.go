// Package app contains the core application logic. It merges configuration
// layers, connects to the database and runs either the given statements or
// the interactive console, decoupled from any specific entrypoint.
package app
