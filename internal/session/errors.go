package session

import "fmt"

// TransactionControlError reports a failed commit or rollback. By the time
// it is returned the transaction has been discarded and the session is Idle.
type TransactionControlError struct {
	Op  string
	Err error
}

func (e *TransactionControlError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Op, e.Err)
}

func (e *TransactionControlError) Unwrap() error {
	return e.Err
}
