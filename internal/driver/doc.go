// Package driver describes the database capability the console runs
// statements against: sessions, explicit transactions and lazily streamed
// results. Implementations live in sub-packages; bolt talks to a real Neo4j
// server and drivertest provides a scripted in-memory stand-in for tests.
package driver
