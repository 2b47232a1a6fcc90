package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoResults is returned when an export is requested before any successful
// analysis run. Nothing is written in that case.
var ErrNoResults = errors.New("no analysis results yet - run the analysis first")

// ConnectivityError means the sales record store was unreachable at the start
// of a run. It is fatal to the run: nothing is computed. The message carries a
// remediation checklist because the usual cause is environmental.
type ConnectivityError struct {
	Cause error
}

// remediationHints is shown with every connectivity failure.
var remediationHints = []string{
	"PostgreSQL is running and reachable at the configured DSN",
	"the database and the sales table exist (migrations applied)",
	"the sales table has data with the expected fields",
}

func (e *ConnectivityError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sales record store unreachable: %v\n", e.Cause)
	b.WriteString("Check that:\n")
	for i, hint := range remediationHints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, hint)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *ConnectivityError) Unwrap() error {
	return e.Cause
}
