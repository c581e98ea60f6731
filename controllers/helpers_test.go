package controllers

import (
	"errors"
	"testing"

	"gymdesk_go/services"
)

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint
		wantErr bool
	}{
		{name: "simple", input: "42", want: 42},
		{name: "one", input: "1", want: 1},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "overflow", input: "99999999999999999999", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseIDParam(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseIDParam(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestStatusForServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "member not found", err: services.ErrMemberNotFound, want: 404},
		{name: "plan not found", err: services.ErrMembershipNotFound, want: 404},
		{name: "assignment not found", err: services.ErrAssignmentNotFound, want: 404},
		{name: "attendance not found", err: services.ErrAttendanceNotFound, want: 404},
		{name: "already checked in", err: services.ErrAlreadyCheckedIn, want: 409},
		{name: "not checked in", err: services.ErrNotCheckedIn, want: 409},
		{name: "plan in use", err: services.ErrMembershipHasAssignments, want: 409},
		{name: "expired", err: services.ErrMembershipExpired, want: 422},
		{name: "exhausted", err: services.ErrQuotaExhausted, want: 422},
		{name: "not active", err: services.ErrMembershipNotActive, want: 422},
		{name: "unknown", err: errors.New("db gone"), want: 500},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := statusForServiceError(tc.err); got != tc.want {
				t.Fatalf("statusForServiceError(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
