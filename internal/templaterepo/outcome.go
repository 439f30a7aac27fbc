package templaterepo

import "strings"

// FailureReason classifies why a download did not succeed.
type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonTimeout
	ReasonNotFound
	ReasonRateLimited
	ReasonAccessDenied
	ReasonUnknown
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTimeout:
		return "timeout"
	case ReasonNotFound:
		return "not-found"
	case ReasonRateLimited:
		return "rate-limited"
	case ReasonAccessDenied:
		return "access-denied"
	default:
		return "unknown"
	}
}

// accessDeniedMarkers are the substrings that identify a checkout/permission failure.
var accessDeniedMarkers = []string{
	"could not checkout",
	"access denied",
}

// Classify maps a raw failure message to a FailureReason.
// Matching is by substring, in order: "404", access markers, "rate limit".
func Classify(message string) FailureReason {
	if strings.Contains(message, "404") {
		return ReasonNotFound
	}
	for _, marker := range accessDeniedMarkers {
		if strings.Contains(message, marker) {
			return ReasonAccessDenied
		}
	}
	if strings.Contains(message, "rate limit") {
		return ReasonRateLimited
	}
	return ReasonUnknown
}

// Outcome is the result of a bounded download.
type Outcome struct {
	Reason  FailureReason
	Message string // Raw failure text, empty on success
	Source  RepoSource
}

// Success reports whether the template was materialized.
func (o Outcome) Success() bool {
	return o.Reason == ReasonNone
}

func successOutcome(source RepoSource) Outcome {
	return Outcome{Reason: ReasonNone, Source: source}
}

func failureOutcome(source RepoSource, reason FailureReason, message string) Outcome {
	return Outcome{Reason: reason, Message: message, Source: source}
}
