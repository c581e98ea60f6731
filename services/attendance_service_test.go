package services

import (
	"testing"
	"time"

	"gymdesk_go/models"
)

func intPtr(v int) *int { return &v }

func activeAssignment(max *int, expiry time.Time) *models.MemberMembership {
	return &models.MemberMembership{
		Status:                   models.AssignmentStatusActive,
		SnapshotMaxAttendanceQty: max,
		StartedAt:                expiry.AddDate(0, 0, -30),
		ExpiredAt:                expiry,
	}
}

func TestEvaluateCheckIn(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 10)
	past := now.AddDate(0, 0, -10)

	tests := []struct {
		name         string
		assignment   *models.MemberMembership
		used         int64
		hasOpenVisit bool
		wantErr      *DomainError
		wantMark     string
	}{
		{
			name:       "accepted",
			assignment: activeAssignment(intPtr(10), future),
			used:       3,
		},
		{
			name:       "accepted unlimited",
			assignment: activeAssignment(nil, future),
			used:       9999,
		},
		{
			name: "cancelled refused without status write",
			assignment: &models.MemberMembership{
				Status:    models.AssignmentStatusCancelled,
				ExpiredAt: future,
			},
			wantErr: ErrMembershipNotActive,
		},
		{
			name: "already marked expired refused as not active",
			assignment: &models.MemberMembership{
				Status:    models.AssignmentStatusExpired,
				ExpiredAt: past,
			},
			wantErr: ErrMembershipNotActive,
		},
		{
			name:       "expired refused and marked",
			assignment: activeAssignment(intPtr(10), past),
			wantErr:    ErrMembershipExpired,
			wantMark:   models.AssignmentStatusExpired,
		},
		{
			name:       "exhausted refused and marked",
			assignment: activeAssignment(intPtr(5), future),
			used:       5,
			wantErr:    ErrQuotaExhausted,
			wantMark:   models.AssignmentStatusExhausted,
		},
		{
			name:         "open visit refused",
			assignment:   activeAssignment(intPtr(10), future),
			used:         3,
			hasOpenVisit: true,
			wantErr:      ErrAlreadyCheckedIn,
		},
		{
			name:         "expiry checked before quota and open visit",
			assignment:   activeAssignment(intPtr(5), past),
			used:         5,
			hasOpenVisit: true,
			wantErr:      ErrMembershipExpired,
			wantMark:     models.AssignmentStatusExpired,
		},
		{
			name:         "quota checked before open visit",
			assignment:   activeAssignment(intPtr(5), future),
			used:         5,
			hasOpenVisit: true,
			wantErr:      ErrQuotaExhausted,
			wantMark:     models.AssignmentStatusExhausted,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			decision := evaluateCheckIn(tc.assignment, tc.used, tc.hasOpenVisit, now)
			if decision.err != tc.wantErr {
				t.Fatalf("err = %v, want %v", decision.err, tc.wantErr)
			}
			if decision.markStatus != tc.wantMark {
				t.Fatalf("markStatus = %q, want %q", decision.markStatus, tc.wantMark)
			}
		})
	}
}

func TestEvaluateCheckInExactlyAtExpiry(t *testing.T) {
	expiry := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	assignment := activeAssignment(intPtr(10), expiry)

	decision := evaluateCheckIn(assignment, 0, false, expiry)
	if decision.err != nil {
		t.Fatalf("check-in exactly at expiry must be accepted, got %v", decision.err)
	}
}

func TestAppendNotes(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		extra    string
		want     string
	}{
		{name: "both empty", existing: "", extra: "", want: ""},
		{name: "no existing", existing: "", extra: "left early", want: "left early"},
		{name: "appended on new line", existing: "came with guest", extra: "left early", want: "came with guest\nleft early"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := appendNotes(tc.existing, tc.extra); got != tc.want {
				t.Fatalf("appendNotes(%q, %q) = %q, want %q", tc.existing, tc.extra, got, tc.want)
			}
		})
	}
}

func TestIsDomainError(t *testing.T) {
	if de, ok := IsDomainError(ErrQuotaExhausted); !ok || de.Code != ErrQuotaExhausted.Code {
		t.Fatal("domain error must be recognised")
	}
	if _, ok := IsDomainError(ErrMemberNotFound); ok {
		t.Fatal("not-found sentinel must not be a domain error")
	}
}
