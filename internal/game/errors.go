package game

import (
	"errors"
	"fmt"
)

// RuleViolation means an operation's precondition failed. The prior state
// stays authoritative; the caller just drops the transition.
type RuleViolation struct {
	Reason string
}

func (e *RuleViolation) Error() string { return e.Reason }

func violationf(format string, args ...any) error {
	return &RuleViolation{Reason: fmt.Sprintf(format, args...)}
}

// IsRuleViolation reports whether err is a recoverable rule rejection as
// opposed to a programmer error.
func IsRuleViolation(err error) bool {
	var rv *RuleViolation
	return errors.As(err, &rv)
}
