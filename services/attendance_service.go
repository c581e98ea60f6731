package services

import (
	"errors"
	"time"

	"gymdesk_go/database"
	"gymdesk_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceService is the attendance ledger. Check-in runs its whole
// validate-then-append sequence inside one transaction holding a row lock on
// the assignment, so two concurrent check-ins near the last remaining slot
// cannot both pass the quota check.
type AttendanceService struct {
	db *gorm.DB
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService() *AttendanceService {
	return &AttendanceService{db: database.DB}
}

// checkInDecision is the outcome of evaluating eligibility: either a refusal
// (domain error, optionally with a status to persist on the assignment) or a
// green light.
type checkInDecision struct {
	markStatus string
	err        *DomainError
}

// evaluateCheckIn applies the eligibility rules in their fixed order:
// status gate, expiry, quota, open visit. The first failing rule wins.
// Expiry and exhaustion discovered here carry the status the caller must
// persist even though the check-in itself is refused (lazy reconciliation).
func evaluateCheckIn(assignment *models.MemberMembership, used int64, hasOpenVisit bool, now time.Time) checkInDecision {
	if assignment.Status != models.AssignmentStatusActive {
		return checkInDecision{err: ErrMembershipNotActive}
	}
	if assignment.IsExpired(now) {
		return checkInDecision{markStatus: models.AssignmentStatusExpired, err: ErrMembershipExpired}
	}
	if assignment.IsQuotaExhausted(used) {
		return checkInDecision{markStatus: models.AssignmentStatusExhausted, err: ErrQuotaExhausted}
	}
	if hasOpenVisit {
		return checkInDecision{err: ErrAlreadyCheckedIn}
	}
	return checkInDecision{}
}

// CheckIn validates the assignment and appends an attendance row with the
// remaining quota captured before this visit. The status write-back on a
// discovered expiry/exhaustion commits even though the operation fails;
// rolling it back would leave stale assignments permanently "active".
func (as *AttendanceService) CheckIn(memberMembershipID uint, recordedBy *models.User, notes string) (*models.Attendance, error) {
	var attendance models.Attendance
	var refused *DomainError

	err := as.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.MemberMembership
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&assignment, memberMembershipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}

		used, err := countAttendances(tx, assignment.ID)
		if err != nil {
			return err
		}

		hasOpen, err := hasOpenAttendance(tx, assignment.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		decision := evaluateCheckIn(&assignment, used, hasOpen, now)
		if decision.err != nil {
			if decision.markStatus != "" {
				if err := tx.Model(&assignment).Update("status", decision.markStatus).Error; err != nil {
					return err
				}
			}
			// Commit the status write-back; surface the refusal after.
			refused = decision.err
			return nil
		}

		var member models.Member
		if err := tx.First(&member, assignment.MemberID).Error; err != nil {
			return err
		}

		attendance = models.Attendance{
			MemberMembershipID:      assignment.ID,
			SnapshotMemberName:      member.Name,
			SnapshotMembershipName:  assignment.SnapshotMembershipName,
			SnapshotRemainingBefore: assignment.RemainingQty(used),
			CheckInAt:               now,
			Notes:                   notes,
		}
		if recordedBy != nil {
			attendance.RecordedByUserID = &recordedBy.ID
			attendance.SnapshotRecordedByName = recordedBy.Name
		}

		return tx.Create(&attendance).Error
	})
	if err != nil {
		return nil, err
	}
	if refused != nil {
		return nil, refused
	}
	return &attendance, nil
}

// CheckOut closes an open visit. Supplied notes are appended below the
// check-in notes rather than overwriting them.
func (as *AttendanceService) CheckOut(attendanceID uint, notes string) (*models.Attendance, error) {
	attendance, err := as.GetByID(attendanceID)
	if err != nil {
		return nil, err
	}

	if attendance.CheckOutAt != nil {
		return nil, ErrNotCheckedIn
	}

	now := time.Now()
	updates := map[string]interface{}{"check_out_at": now}
	if notes != "" {
		updates["notes"] = appendNotes(attendance.Notes, notes)
	}

	if err := as.db.Model(attendance).Updates(updates).Error; err != nil {
		return nil, err
	}

	attendance.CheckOutAt = &now
	if notes != "" {
		attendance.Notes = appendNotes(attendance.Notes, notes)
	}
	return attendance, nil
}

// appendNotes joins check-out notes under the existing check-in notes.
func appendNotes(existing, extra string) string {
	if existing == "" {
		return extra
	}
	return existing + "\n" + extra
}

// Delete hard-deletes an attendance row. Administrative override only; the
// recorder snapshot on surviving rows is the only audit trail.
func (as *AttendanceService) Delete(id uint) error {
	attendance, err := as.GetByID(id)
	if err != nil {
		return err
	}
	return as.db.Unscoped().Delete(attendance).Error
}

// GetByID loads an attendance with its assignment.
func (as *AttendanceService) GetByID(id uint) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := as.db.Preload("MemberMembership").Preload("MemberMembership.Member").
		First(&attendance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	return &attendance, nil
}

// countAttendances counts the visits consumed by an assignment. This count
// is the single source of truth for quota; there is no stored counter.
func countAttendances(tx *gorm.DB, memberMembershipID uint) (int64, error) {
	var used int64
	err := tx.Model(&models.Attendance{}).
		Where("member_membership_id = ?", memberMembershipID).
		Count(&used).Error
	return used, err
}

// hasOpenAttendance reports whether a visit for the assignment is still open.
func hasOpenAttendance(tx *gorm.DB, memberMembershipID uint) (bool, error) {
	var open int64
	err := tx.Model(&models.Attendance{}).
		Where("member_membership_id = ? AND check_out_at IS NULL", memberMembershipID).
		Count(&open).Error
	return open > 0, err
}
