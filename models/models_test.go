package models

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestMemberMembershipIsExpired(t *testing.T) {
	expiry := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	mm := &MemberMembership{ExpiredAt: expiry}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "one second before expiry",
			now:  expiry.Add(-time.Second),
			want: false,
		},
		{
			name: "exactly at expiry",
			now:  expiry,
			want: false,
		},
		{
			name: "one second after expiry",
			now:  expiry.Add(time.Second),
			want: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := mm.IsExpired(tc.now); got != tc.want {
				t.Fatalf("IsExpired(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestMemberMembershipRemainingQty(t *testing.T) {
	tests := []struct {
		name string
		max  *int
		used int64
		want *int
	}{
		{
			name: "unlimited plan",
			max:  nil,
			used: 500,
			want: nil,
		},
		{
			name: "nothing used",
			max:  intPtr(10),
			used: 0,
			want: intPtr(10),
		},
		{
			name: "partially used",
			max:  intPtr(10),
			used: 4,
			want: intPtr(6),
		},
		{
			name: "fully used",
			max:  intPtr(10),
			used: 10,
			want: intPtr(0),
		},
		{
			name: "overused never goes negative",
			max:  intPtr(10),
			used: 15,
			want: intPtr(0),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mm := &MemberMembership{SnapshotMaxAttendanceQty: tc.max}
			got := mm.RemainingQty(tc.used)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("RemainingQty(%d) = %v, want %v", tc.used, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("RemainingQty(%d) = %d, want %d", tc.used, *got, *tc.want)
			}
		})
	}
}

func TestMemberMembershipIsQuotaExhausted(t *testing.T) {
	unlimited := &MemberMembership{SnapshotMaxAttendanceQty: nil}
	if unlimited.IsQuotaExhausted(1000000) {
		t.Fatal("unlimited plan must never be exhausted")
	}

	limited := &MemberMembership{SnapshotMaxAttendanceQty: intPtr(3)}
	if limited.IsQuotaExhausted(2) {
		t.Fatal("quota with one visit left must not be exhausted")
	}
	if !limited.IsQuotaExhausted(3) {
		t.Fatal("fully used quota must be exhausted")
	}
	if !limited.IsQuotaExhausted(4) {
		t.Fatal("overused quota must be exhausted")
	}
}

func TestMemberMembershipCanCheckIn(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 30)
	past := now.AddDate(0, 0, -1)

	tests := []struct {
		name   string
		status string
		expiry time.Time
		max    *int
		used   int64
		want   bool
	}{
		{
			name:   "active with quota left",
			status: AssignmentStatusActive,
			expiry: future,
			max:    intPtr(10),
			used:   3,
			want:   true,
		},
		{
			name:   "active unlimited",
			status: AssignmentStatusActive,
			expiry: future,
			max:    nil,
			used:   999,
			want:   true,
		},
		{
			name:   "cancelled",
			status: AssignmentStatusCancelled,
			expiry: future,
			max:    intPtr(10),
			used:   0,
			want:   false,
		},
		{
			name:   "expired by date",
			status: AssignmentStatusActive,
			expiry: past,
			max:    intPtr(10),
			used:   0,
			want:   false,
		},
		{
			name:   "quota exhausted",
			status: AssignmentStatusActive,
			expiry: future,
			max:    intPtr(5),
			used:   5,
			want:   false,
		},
		{
			name:   "status already marked expired",
			status: AssignmentStatusExpired,
			expiry: future,
			max:    intPtr(10),
			used:   0,
			want:   false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mm := &MemberMembership{
				Status:                   tc.status,
				ExpiredAt:                tc.expiry,
				SnapshotMaxAttendanceQty: tc.max,
			}
			if got := mm.CanCheckIn(now, tc.used); got != tc.want {
				t.Fatalf("CanCheckIn = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMembershipIsUnlimited(t *testing.T) {
	if (&Membership{MaxAttendanceQty: intPtr(10)}).IsUnlimited() {
		t.Fatal("plan with quota must not be unlimited")
	}
	if !(&Membership{MaxAttendanceQty: nil}).IsUnlimited() {
		t.Fatal("plan without quota must be unlimited")
	}
}

func TestAttendanceDurationMinutes(t *testing.T) {
	checkIn := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	open := &Attendance{CheckInAt: checkIn}
	if !open.IsCheckedIn() {
		t.Fatal("attendance without check-out must be open")
	}
	if open.DurationMinutes() != nil {
		t.Fatal("open attendance must have nil duration")
	}

	checkOut := checkIn.Add(95 * time.Minute)
	closed := &Attendance{CheckInAt: checkIn, CheckOutAt: &checkOut}
	if closed.IsCheckedIn() {
		t.Fatal("attendance with check-out must be closed")
	}
	if d := closed.DurationMinutes(); d == nil || *d != 95 {
		t.Fatalf("DurationMinutes = %v, want 95", d)
	}
}
