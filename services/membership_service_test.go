package services

import (
	"testing"
	"time"
)

func TestExpiryFor(t *testing.T) {
	tests := []struct {
		name     string
		started  time.Time
		days     int
		expected time.Time
	}{
		{
			name:     "thirty days",
			started:  time.Date(2026, 1, 10, 10, 30, 0, 0, time.Local),
			days:     30,
			expected: time.Date(2026, 2, 9, 10, 30, 0, 0, time.Local),
		},
		{
			name:     "across month end",
			started:  time.Date(2026, 1, 31, 8, 0, 0, 0, time.Local),
			days:     1,
			expected: time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local),
		},
		{
			name:     "leap day",
			started:  time.Date(2028, 2, 28, 12, 0, 0, 0, time.Local),
			days:     1,
			expected: time.Date(2028, 2, 29, 12, 0, 0, 0, time.Local),
		},
		{
			name:     "full year",
			started:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local),
			days:     365,
			expected: time.Date(2027, 3, 1, 9, 0, 0, 0, time.Local),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := expiryFor(tc.started, tc.days)
			if !got.Equal(tc.expected) {
				t.Fatalf("expiryFor(%v, %d) = %v, want %v", tc.started, tc.days, got, tc.expected)
			}
		})
	}
}

func TestExpiryForNormalizesToLocal(t *testing.T) {
	utcStart := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)
	got := expiryFor(utcStart, 30)
	if got.Location() != time.Local {
		t.Fatalf("expiry location = %v, want local", got.Location())
	}
	if !got.Equal(utcStart.In(time.Local).AddDate(0, 0, 30)) {
		t.Fatalf("expiry instant shifted during conversion")
	}
}

func TestCopyQtyDetachesPointer(t *testing.T) {
	if copyQty(nil) != nil {
		t.Fatal("nil quota must stay nil")
	}

	planQty := 10
	snapshot := copyQty(&planQty)
	if snapshot == nil || *snapshot != 10 {
		t.Fatalf("snapshot = %v, want 10", snapshot)
	}

	// A later plan edit must not reach the snapshot.
	planQty = 99
	if *snapshot != 10 {
		t.Fatalf("snapshot changed with plan edit: %d", *snapshot)
	}
}
