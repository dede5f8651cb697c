package cases

import "fmt"

// Status is the case lifecycle state. "unassigned" is accepted as an
// alias for the pre-assignment state and normalizes to StatusNew.
type Status string

const (
	StatusNew      Status = "new"
	StatusAssigned Status = "assigned"
	StatusClosed   Status = "closed"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusNew, StatusAssigned, StatusClosed:
		return Status(raw), nil
	case "unassigned":
		return StatusNew, nil
	}
	return "", fmt.Errorf("unknown case status: %q", raw)
}

// CanTransition reports whether a case may move from one status to another.
// Reassignment (assigned -> assigned) is allowed, last writer wins. The only
// way out of closed is an explicit reopen back to new.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusNew:
		return to == StatusAssigned || to == StatusClosed
	case StatusAssigned:
		return to == StatusAssigned || to == StatusClosed
	case StatusClosed:
		return to == StatusNew
	}
	return false
}
