package utils

import (
	"time"

	"gymdesk_go/models"
)

// Compact representations used across APIs
type MemberShort struct {
	ID         uint   `json:"id"`
	MemberCode string `json:"member_code"`
	Name       string `json:"name"`
}

type MembershipShort struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// AssignmentDTO is the wire form of a MemberMembership with the derived
// quota fields. remaining_qty/used_qty are computed from the attendance
// count at serialization time, never read from storage.
type AssignmentDTO struct {
	ID                       uint            `json:"id"`
	CreatedAt                time.Time       `json:"created_at"`
	MemberID                 uint            `json:"member_id"`
	MembershipID             uint            `json:"membership_id"`
	SnapshotMembershipName   string          `json:"snapshot_membership_name"`
	SnapshotMaxAttendanceQty *int            `json:"snapshot_max_attendance_qty"`
	SnapshotDurationDays     int             `json:"snapshot_duration_days"`
	SnapshotPrice            float64         `json:"snapshot_price"`
	StartedAt                time.Time       `json:"started_at"`
	ExpiredAt                time.Time       `json:"expired_at"`
	Status                   string          `json:"status"`
	UsedQty                  int64           `json:"used_qty"`
	RemainingQty             *int            `json:"remaining_qty"` // null = unlimited
	IsExpired                bool            `json:"is_expired"`
	CanCheckIn               bool            `json:"can_check_in"`
	Member                   MemberShort     `json:"member"`
	Membership               MembershipShort `json:"membership"`
}

// ToAssignmentDTO maps a models.MemberMembership plus its consumed-visit
// count to the compact DTO. Assumes Member and Membership are preloaded.
func ToAssignmentDTO(mm models.MemberMembership, used int64) AssignmentDTO {
	now := time.Now()
	return AssignmentDTO{
		ID:                       mm.ID,
		CreatedAt:                mm.CreatedAt,
		MemberID:                 mm.MemberID,
		MembershipID:             mm.MembershipID,
		SnapshotMembershipName:   mm.SnapshotMembershipName,
		SnapshotMaxAttendanceQty: mm.SnapshotMaxAttendanceQty,
		SnapshotDurationDays:     mm.SnapshotDurationDays,
		SnapshotPrice:            mm.SnapshotPrice,
		StartedAt:                mm.StartedAt,
		ExpiredAt:                mm.ExpiredAt,
		Status:                   mm.Status,
		UsedQty:                  used,
		RemainingQty:             mm.RemainingQty(used),
		IsExpired:                mm.IsExpired(now),
		CanCheckIn:               mm.CanCheckIn(now, used),
		Member: MemberShort{
			ID:         mm.Member.ID,
			MemberCode: mm.Member.MemberCode,
			Name:       mm.Member.Name,
		},
		Membership: MembershipShort{
			ID:       mm.Membership.ID,
			Name:     mm.Membership.Name,
			IsActive: mm.Membership.IsActive,
		},
	}
}

// AttendanceDTO is the wire form of a visit.
type AttendanceDTO struct {
	ID                      uint       `json:"id"`
	MemberMembershipID      uint       `json:"member_membership_id"`
	SnapshotMemberName      string     `json:"snapshot_member_name"`
	SnapshotMembershipName  string     `json:"snapshot_membership_name"`
	SnapshotRemainingBefore *int       `json:"snapshot_remaining_before"`
	CheckInAt               time.Time  `json:"check_in_at"`
	CheckOutAt              *time.Time `json:"check_out_at"`
	DurationMinutes         *int       `json:"duration_minutes"` // null while still inside
	IsCheckedIn             bool       `json:"is_checked_in"`
	Notes                   string     `json:"notes,omitempty"`
	RecordedByUserID        *uint      `json:"recorded_by_user_id,omitempty"`
	SnapshotRecordedByName  string     `json:"snapshot_recorded_by_name,omitempty"`
}

// ToAttendanceDTO maps a models.Attendance to the compact DTO.
func ToAttendanceDTO(a models.Attendance) AttendanceDTO {
	return AttendanceDTO{
		ID:                      a.ID,
		MemberMembershipID:      a.MemberMembershipID,
		SnapshotMemberName:      a.SnapshotMemberName,
		SnapshotMembershipName:  a.SnapshotMembershipName,
		SnapshotRemainingBefore: a.SnapshotRemainingBefore,
		CheckInAt:               a.CheckInAt,
		CheckOutAt:              a.CheckOutAt,
		DurationMinutes:         a.DurationMinutes(),
		IsCheckedIn:             a.IsCheckedIn(),
		Notes:                   a.Notes,
		RecordedByUserID:        a.RecordedByUserID,
		SnapshotRecordedByName:  a.SnapshotRecordedByName,
	}
}

// ToAttendanceDTOs maps a slice preserving order.
func ToAttendanceDTOs(items []models.Attendance) []AttendanceDTO {
	out := make([]AttendanceDTO, 0, len(items))
	for _, a := range items {
		out = append(out, ToAttendanceDTO(a))
	}
	return out
}
