// Package cypher renders graph values returned by the database as Cypher
// literals. The Encoder is built once from a Config and is safe to share
// read-only between every renderer in the process.
package cypher
