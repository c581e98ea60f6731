package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// Assignment status values for MemberMembership.Status.
const (
	AssignmentStatusActive    = "active"
	AssignmentStatusExpired   = "expired"
	AssignmentStatusExhausted = "exhausted"
	AssignmentStatusCancelled = "cancelled"
)

// User model (staff accounts operating the front desk)
type User struct {
	BaseModel
	Username string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Name     string `json:"name" gorm:"size:200;not null"`
	Email    string `json:"email" gorm:"size:255;uniqueIndex"`
	Phone    string `json:"phone" gorm:"size:20"`
	Role     string `json:"role" gorm:"size:50;not null;default:'staff';type:enum('owner','admin','staff')"` // owner, admin, staff
	Status   string `json:"status" gorm:"size:50;not null;default:'active';type:enum('active','inactive','suspended')"`
}

// Member model (gym customer)
type Member struct {
	BaseModel
	MemberCode string `json:"member_code" gorm:"size:20;not null;uniqueIndex"`
	Name       string `json:"name" gorm:"size:200;not null"`
	Email      string `json:"email" gorm:"size:255"`
	Phone      string `json:"phone" gorm:"size:20"`
	Address    string `json:"address" gorm:"size:500"`
	Photo      string `json:"photo" gorm:"size:500"`

	// Relationships
	MemberMemberships []MemberMembership `json:"member_memberships,omitempty" gorm:"foreignKey:MemberID"`
}

// Membership model: a sellable plan template. Edits never touch snapshots
// already taken by assignments.
type Membership struct {
	BaseModel
	Name             string  `json:"name" gorm:"size:255;not null"`
	Description      string  `json:"description" gorm:"type:text"`
	MaxAttendanceQty *int    `json:"max_attendance_qty"` // NULL = unlimited visits
	DurationDays     int     `json:"duration_days" gorm:"not null"`
	Price            float64 `json:"price" gorm:"type:decimal(12,2);not null"`
	IsActive         bool    `json:"is_active" gorm:"default:true"`

	// Relationships
	MemberMemberships []MemberMembership `json:"member_memberships,omitempty" gorm:"foreignKey:MembershipID"`
}

// IsUnlimited reports whether the plan has no attendance quota.
func (m *Membership) IsUnlimited() bool {
	return m.MaxAttendanceQty == nil
}

// MemberMembership model: a plan purchased by a member. The snapshot_* fields
// freeze the plan's terms at purchase time and are never updated afterwards;
// remaining/used quota is derived from the attendances table, not stored.
type MemberMembership struct {
	BaseModel
	MemberID     uint `json:"member_id" gorm:"not null;index:idx_member_status"`
	MembershipID uint `json:"membership_id" gorm:"not null"`

	SnapshotMembershipName   string  `json:"snapshot_membership_name" gorm:"size:255;not null"`
	SnapshotMaxAttendanceQty *int    `json:"snapshot_max_attendance_qty"` // NULL = unlimited
	SnapshotDurationDays     int     `json:"snapshot_duration_days" gorm:"not null"`
	SnapshotPrice            float64 `json:"snapshot_price" gorm:"type:decimal(12,2);not null"`

	StartedAt time.Time `json:"started_at" gorm:"not null"`
	ExpiredAt time.Time `json:"expired_at" gorm:"not null;index"`
	Status    string    `json:"status" gorm:"size:50;not null;default:'active';index:idx_member_status;type:enum('active','expired','exhausted','cancelled')"`

	// Relationships
	Member      Member       `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Membership  Membership   `json:"membership,omitempty" gorm:"foreignKey:MembershipID"`
	Attendances []Attendance `json:"attendances,omitempty" gorm:"foreignKey:MemberMembershipID;constraint:OnDelete:CASCADE"`
}

// IsExpired reports whether the assignment is past its expiry at the given
// instant. Exactly at ExpiredAt counts as not yet expired.
func (mm *MemberMembership) IsExpired(now time.Time) bool {
	return now.After(mm.ExpiredAt)
}

// RemainingQty returns the visits left given the number of attendances
// already recorded. Nil means the plan is unlimited. Never negative.
func (mm *MemberMembership) RemainingQty(used int64) *int {
	if mm.SnapshotMaxAttendanceQty == nil {
		return nil
	}
	remaining := *mm.SnapshotMaxAttendanceQty - int(used)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// IsQuotaExhausted reports whether the quota blocks further check-ins.
// Always false for unlimited plans.
func (mm *MemberMembership) IsQuotaExhausted(used int64) bool {
	remaining := mm.RemainingQty(used)
	return remaining != nil && *remaining <= 0
}

// CanCheckIn reports whether a check-in would currently be accepted.
// Callers needing accurate state must use this (or IsExpired) instead of
// reading Status, which is only reconciled lazily by check-in attempts.
func (mm *MemberMembership) CanCheckIn(now time.Time, used int64) bool {
	if mm.Status != AssignmentStatusActive {
		return false
	}
	if mm.IsExpired(now) {
		return false
	}
	return !mm.IsQuotaExhausted(used)
}

// Attendance model: one row per check-in against an assignment. Snapshot
// fields keep the visit readable even after the member, plan or recording
// user changes or is deleted.
type Attendance struct {
	BaseModel
	MemberMembershipID uint `json:"member_membership_id" gorm:"not null;index:idx_assignment_checkin"`

	SnapshotMemberName      string `json:"snapshot_member_name" gorm:"size:200;not null"`
	SnapshotMembershipName  string `json:"snapshot_membership_name" gorm:"size:255;not null"`
	SnapshotRemainingBefore *int   `json:"snapshot_remaining_before"` // quota left before this visit; NULL = unlimited

	CheckInAt  time.Time  `json:"check_in_at" gorm:"not null;index:idx_assignment_checkin"`
	CheckOutAt *time.Time `json:"check_out_at"`
	Notes      string     `json:"notes" gorm:"type:text"`

	RecordedByUserID       *uint  `json:"recorded_by_user_id"`
	SnapshotRecordedByName string `json:"snapshot_recorded_by_name" gorm:"size:200"`

	// Relationships
	MemberMembership MemberMembership `json:"member_membership,omitempty" gorm:"foreignKey:MemberMembershipID"`
	RecordedBy       *User            `json:"recorded_by,omitempty" gorm:"foreignKey:RecordedByUserID;constraint:OnDelete:SET NULL"`
}

// IsCheckedIn reports whether the visit is still open (no check-out yet).
func (a *Attendance) IsCheckedIn() bool {
	return a.CheckOutAt == nil
}

// DurationMinutes returns the visit length in whole minutes, or nil while
// the member is still inside.
func (a *Attendance) DurationMinutes() *int {
	if a.CheckOutAt == nil {
		return nil
	}
	minutes := int(a.CheckOutAt.Sub(a.CheckInAt).Minutes())
	return &minutes
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// LogArchive model for tracking archived logs
type LogArchive struct {
	BaseModel
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	S3Key       string    `json:"s3_key" gorm:"size:500;not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	RecordCount int       `json:"record_count" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"` // pending, completed, failed
	Error       string    `json:"error" gorm:"type:text"`
}
