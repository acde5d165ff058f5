package types

import (
	"github.com/arthur-debert/dotsync/pkg/errors"
)

// Policy decides what happens when an operation's destination path
// already exists. One policy is selected per run and applied uniformly
// to every conflicting path.
type Policy string

const (
	// PolicySkip leaves the existing entry untouched and skips the operation
	PolicySkip Policy = "skip"
	// PolicyBackup moves the existing entry to a timestamped sibling first
	PolicyBackup Policy = "backup"
	// PolicyReplace removes the existing entry first
	PolicyReplace Policy = "replace"
	// PolicyFail aborts the whole run on the first conflict
	PolicyFail Policy = "fail"
)

// ParsePolicy parses a string into a Policy value
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicySkip, PolicyBackup, PolicyReplace, PolicyFail:
		return Policy(s), nil
	case "":
		return PolicyBackup, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown conflict mode: %q (want skip, backup, replace, or fail)", s)
	}
}

// String returns the string representation of the policy
func (p Policy) String() string {
	return string(p)
}

// Valid reports whether p is one of the four known policies
func (p Policy) Valid() bool {
	switch p {
	case PolicySkip, PolicyBackup, PolicyReplace, PolicyFail:
		return true
	}
	return false
}
