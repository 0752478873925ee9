package enhance

import (
	"errors"
	"fmt"
)

// ErrEnhanceInFlight is returned when an enhancement is requested while one is running.
var ErrEnhanceInFlight = errors.New("an enhancement is already in progress")

// ErrCertificationsDropped matches any *CertificationsDroppedError via errors.Is.
var ErrCertificationsDropped = errors.New("enhancement dropped all certifications")

// CertificationsDroppedError reports that the enhanced document came back
// without the certifications the draft had. The draft is kept as it was.
type CertificationsDroppedError struct {
	Count int
}

func (e *CertificationsDroppedError) Error() string {
	return fmt.Sprintf("enhanced CV is missing all %d of your certifications; your original data was kept", e.Count)
}

func (e *CertificationsDroppedError) Is(target error) bool {
	return target == ErrCertificationsDropped
}

// EnhanceError represents a failed or unsuccessful enhancement round trip.
type EnhanceError struct {
	Message string
	Cause   error
}

func (e *EnhanceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enhancement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enhancement failed: %s", e.Message)
}

func (e *EnhanceError) Unwrap() error {
	return e.Cause
}

// Severity grades how a failure is surfaced to the user.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
	// SeverityCritical is reserved for data-integrity risks.
	SeverityCritical
)

// Notification turns an Enhance error into a user-facing message.
func Notification(err error) (string, Severity) {
	var dropped *CertificationsDroppedError
	var failed *EnhanceError
	switch {
	case err == nil:
		return "", SeverityInfo
	case errors.As(err, &dropped):
		return dropped.Error() + ". Please review the enhanced content before trying again.", SeverityCritical
	case errors.Is(err, ErrEnhanceInFlight):
		return "Enhancement is still running.", SeverityInfo
	case errors.As(err, &failed):
		if failed.Cause == nil && failed.Message != "" {
			return failed.Message, SeverityError
		}
		return "We couldn't enhance your CV right now. Your draft is unchanged.", SeverityError
	default:
		return "We couldn't enhance your CV right now. Your draft is unchanged.", SeverityError
	}
}
