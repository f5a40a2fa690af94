package bolt

import (
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/technige/n4/internal/driver"
)

// mapError translates Neo4j driver errors into the driver package taxonomy.
// Errors it does not recognise pass through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var serverErr *neo4j.Neo4jError
	if errors.As(err, &serverErr) {
		se := driver.NewStatementError(serverErr.Code, serverErr.Msg)
		se.Err = err
		return se
	}
	var connErr *neo4j.ConnectivityError
	if errors.As(err, &connErr) {
		return &driver.ConnectionError{Err: err}
	}
	return err
}
