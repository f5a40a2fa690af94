// Package bolt implements driver.Driver over the official Neo4j Go driver.
// It converts the Neo4j driver's values into cypher.Value and its errors
// into driver.StatementError and driver.ConnectionError.
package bolt
