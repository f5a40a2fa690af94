// Package session runs statements against a driver.Driver and tracks whether
// an explicit transaction is open.
//
// A Session is Idle until a BEGIN line opens a transaction, after which every
// statement runs inside it and advances a counter until COMMIT or ROLLBACK.
// Statements run while Idle each get a one-shot driver session that is closed
// before control returns, whatever the outcome.
package session
