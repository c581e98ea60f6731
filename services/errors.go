package services

import "errors"

// DomainError is a typed failure raised by the assignment engine and the
// attendance ledger. The code is stable for API clients; the message is the
// user-facing explanation of why the operation was refused.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	// ErrMembershipNotActive: the assignment status is not "active"
	// (cancelled, or previously reconciled to expired/exhausted).
	ErrMembershipNotActive = &DomainError{Code: "membership_not_active", Message: "Membership is not active."}

	// ErrMembershipExpired: the assignment is past its expiry date. Raising
	// this also persists status=expired on the assignment.
	ErrMembershipExpired = &DomainError{Code: "membership_expired", Message: "Membership has expired."}

	// ErrQuotaExhausted: all purchased visits are consumed. Raising this
	// also persists status=exhausted on the assignment.
	ErrQuotaExhausted = &DomainError{Code: "quota_exhausted", Message: "Attendance quota has been exhausted."}

	// ErrAlreadyCheckedIn: an attendance for the same assignment is still
	// open (no check-out yet).
	ErrAlreadyCheckedIn = &DomainError{Code: "already_checked_in", Message: "Member is already checked-in."}

	// ErrNotCheckedIn: check-out attempted on a visit that is already closed.
	ErrNotCheckedIn = &DomainError{Code: "not_checked_in", Message: "Member has already checked-out."}

	// ErrMembershipHasAssignments: a plan with assignments must be
	// deactivated, not deleted, so snapshots keep a valid parent reference.
	ErrMembershipHasAssignments = &DomainError{Code: "membership_in_use", Message: "Membership plan has assignments and can only be deactivated."}
)

// Not-found sentinels. Controllers map these to 404.
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrMembershipNotFound = errors.New("membership plan not found")
	ErrAssignmentNotFound = errors.New("member membership not found")
	ErrAttendanceNotFound = errors.New("attendance not found")
)

// IsDomainError reports whether err is a typed domain failure and returns it.
func IsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
