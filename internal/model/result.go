package model

// Severity is totally ordered: StatusCritical > StatusWarn > StatusConsistent.
// The numeric value doubles as the monitoring exit code.
type Severity int

const (
	StatusConsistent Severity = 0
	StatusWarn       Severity = 1
	StatusCritical   Severity = 2
)

func (s Severity) String() string {
	switch s {
	case StatusConsistent:
		return "OK"
	case StatusWarn:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Result is the reconciliation engine's only output type.
// Details is sorted and free of duplicates.
type Result struct {
	Status  Severity
	Message string
	Details []string
}
