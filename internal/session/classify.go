package session

import "strings"

// LineKind is the role of one line of input.
type LineKind int

const (
	Empty LineKind = iota
	Command
	Begin
	Commit
	Rollback
	Statement
)

func (k LineKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Command:
		return "command"
	case Begin:
		return "begin"
	case Commit:
		return "commit"
	case Rollback:
		return "rollback"
	}
	return "statement"
}

// Classify decides how a line is handled. Transaction keywords must make up
// the whole trimmed line and match case-insensitively.
func Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Empty
	case strings.HasPrefix(trimmed, "/"):
		return Command
	case strings.EqualFold(trimmed, "BEGIN"):
		return Begin
	case strings.EqualFold(trimmed, "COMMIT"):
		return Commit
	case strings.EqualFold(trimmed, "ROLLBACK"):
		return Rollback
	}
	return Statement
}
