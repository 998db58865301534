package models

import "strings"

// MarkerKind distinguishes a marker that still needs processing from one that was already handled
type MarkerKind int

const (
	MarkerUnprocessed MarkerKind = iota
	MarkerProcessed
)

// String returns the string representation of the marker kind
func (k MarkerKind) String() string {
	switch k {
	case MarkerUnprocessed:
		return "unprocessed"
	case MarkerProcessed:
		return "processed"
	default:
		return "unknown"
	}
}

// Subject represents the kind of declaration an annotation marker is attached to
type Subject int

const (
	SubjectClass Subject = iota
	SubjectEnum
)

// String returns the string representation of the subject
func (s Subject) String() string {
	switch s {
	case SubjectClass:
		return "class"
	case SubjectEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Access represents the access level of a member field
type Access int

const (
	AccessNone Access = iota
	AccessPublic
	AccessPrivate
	AccessProtected
)

// String returns the string representation of the access level
func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	default:
		return "none"
	}
}

// ParseAccess converts an access specifier or qualifier token to an Access.
// Matching is case-insensitive so both `public:` and the `Public` qualifier resolve.
func ParseAccess(token string) (Access, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "public":
		return AccessPublic, true
	case "private":
		return AccessPrivate, true
	case "protected":
		return AccessProtected, true
	default:
		return AccessNone, false
	}
}

// Outcome is the result of injecting generated code for one declaration
type Outcome int

const (
	OutcomeInjected Outcome = iota
	OutcomeAlreadyPresent
	OutcomeSkipped
	OutcomeFailed
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeInjected:
		return "injected"
	case OutcomeAlreadyPresent:
		return "already present"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the declaration ends up with generated code in place
func (o Outcome) Succeeded() bool {
	return o == OutcomeInjected || o == OutcomeAlreadyPresent
}
