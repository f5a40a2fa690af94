// Package hcl provides the HCL implementation of config.Loader.
//
// A configuration file holds up to one each of the connection, output,
// encoder and log blocks. Every attribute is optional; anything left out
// keeps the value from the layer below. Expressions can read environment
// variables through the env object, as in password = env.NEO4J_PASSWORD.
package hcl
