package services

import (
	"errors"
	"time"

	"gymdesk_go/database"
	"gymdesk_go/models"

	"gorm.io/gorm"
)

// MembershipService is the assignment engine: it turns a plan into an
// immutable point-in-time purchase (MemberMembership) and owns the explicit
// status transitions. Expiry/exhaustion transitions are owned by the
// attendance ledger, which discovers them lazily during check-in.
type MembershipService struct {
	db *gorm.DB
}

// NewMembershipService creates a new MembershipService
func NewMembershipService() *MembershipService {
	return &MembershipService{db: database.DB}
}

// expiryFor computes the expiry timestamp with calendar-day arithmetic in
// the host's local timezone. AddDate follows calendar days, so a 30-day plan
// bought at 10:00 expires at 10:00 thirty calendar days later even across a
// DST change.
func expiryFor(startedAt time.Time, durationDays int) time.Time {
	return startedAt.In(time.Local).AddDate(0, 0, durationDays)
}

// AssignMembership sells a plan to a member. The plan's current terms are
// copied into the snapshot fields and frozen there forever; later edits to
// the plan never alter this assignment. A member may hold any number of
// concurrent or historical assignments, including repeats of the same plan.
func (ms *MembershipService) AssignMembership(memberID, membershipID uint, startedAt *time.Time) (*models.MemberMembership, error) {
	var member models.Member
	if err := ms.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	var plan models.Membership
	if err := ms.db.First(&plan, membershipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}

	start := time.Now().In(time.Local)
	if startedAt != nil {
		start = startedAt.In(time.Local)
	}

	assignment := models.MemberMembership{
		MemberID:                 member.ID,
		MembershipID:             plan.ID,
		SnapshotMembershipName:   plan.Name,
		SnapshotMaxAttendanceQty: copyQty(plan.MaxAttendanceQty),
		SnapshotDurationDays:     plan.DurationDays,
		SnapshotPrice:            plan.Price,
		StartedAt:                start,
		ExpiredAt:                expiryFor(start, plan.DurationDays),
		Status:                   models.AssignmentStatusActive,
	}

	if err := ms.db.Create(&assignment).Error; err != nil {
		return nil, err
	}

	ms.db.Preload("Member").Preload("Membership").First(&assignment, assignment.ID)
	return &assignment, nil
}

// copyQty detaches the snapshot quota from the plan row so plan edits can
// never reach through the shared pointer.
func copyQty(qty *int) *int {
	if qty == nil {
		return nil
	}
	v := *qty
	return &v
}

// Cancel transitions the assignment to cancelled regardless of its current
// status. Cancellation is terminal; repeated calls simply re-write the same
// status.
func (ms *MembershipService) Cancel(id uint) (*models.MemberMembership, error) {
	assignment, err := ms.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := ms.db.Model(assignment).Update("status", models.AssignmentStatusCancelled).Error; err != nil {
		return nil, err
	}
	assignment.Status = models.AssignmentStatusCancelled
	return assignment, nil
}

// Delete hard-deletes the assignment; the attendances cascade at the
// database layer. Administrative cleanup only.
func (ms *MembershipService) Delete(id uint) error {
	assignment, err := ms.GetByID(id)
	if err != nil {
		return err
	}
	return ms.db.Unscoped().Delete(assignment).Error
}

// GetByID loads an assignment with its member and plan.
func (ms *MembershipService) GetByID(id uint) (*models.MemberMembership, error) {
	var assignment models.MemberMembership
	if err := ms.db.Preload("Member").Preload("Membership").First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// RemainingQty returns the visits left on the assignment, nil if the plan is
// unlimited. Derived from the attendance count on every call; there is no
// stored counter to drift.
func (ms *MembershipService) RemainingQty(id uint) (*int, error) {
	assignment, err := ms.GetByID(id)
	if err != nil {
		return nil, err
	}

	used, err := countAttendances(ms.db, assignment.ID)
	if err != nil {
		return nil, err
	}
	return assignment.RemainingQty(used), nil
}

// UsedQty returns how many visits have been consumed on the assignment.
func (ms *MembershipService) UsedQty(id uint) (int64, error) {
	if _, err := ms.GetByID(id); err != nil {
		return 0, err
	}
	return countAttendances(ms.db, id)
}

// CanCheckIn reports whether a check-in would currently be accepted, without
// mutating anything. The stored status may lag behind reality (lazy
// reconciliation), so this recomputes expiry and quota.
func (ms *MembershipService) CanCheckIn(id uint) (bool, error) {
	assignment, err := ms.GetByID(id)
	if err != nil {
		return false, err
	}

	used, err := countAttendances(ms.db, assignment.ID)
	if err != nil {
		return false, err
	}
	return assignment.CanCheckIn(time.Now(), used), nil
}
