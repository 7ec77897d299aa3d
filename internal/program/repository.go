package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"festly/internal/ticketing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListConferences(ctx context.Context) ([]Conference, error)
	GetConference(ctx context.Context, id uuid.UUID) (*Conference, error)
	ListUserProgram(ctx context.Context, userID uuid.UUID) ([]UserProgramItem, error)

	// Transaction protocols
	JoinProgram(ctx context.Context, userID, conferenceID uuid.UUID) error
	LeaveProgram(ctx context.Context, userID, conferenceID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListConferences(ctx context.Context) ([]Conference, error) {
	var conferences []Conference
	err := r.db.WithContext(ctx).Order("start_at ASC").Find(&conferences).Error
	return conferences, err
}

func (r *repository) GetConference(ctx context.Context, id uuid.UUID) (*Conference, error) {
	var conference Conference
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConferenceNotFound
		}
		return nil, err
	}
	return &conference, nil
}

func (r *repository) ListUserProgram(ctx context.Context, userID uuid.UUID) ([]UserProgramItem, error) {
	var items []UserProgramItem
	err := r.db.WithContext(ctx).
		Preload("Conference").
		Joins("JOIN conferences ON conferences.id = user_program_items.conference_id").
		Where("user_program_items.user_id = ?", userID).
		Order("conferences.start_at ASC").
		Find(&items).Error
	return items, err
}

// JoinProgram runs the entitlement and capacity check in one transaction:
// the conference row is locked, the cap verified, the user's valid tickets
// checked against the session date, then the join row is inserted and the
// attendee counter bumped. The unique (user, conference) index turns a
// duplicate join into ErrAlreadyInProgram.
func (r *repository) JoinProgram(ctx context.Context, userID, conferenceID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conference Conference
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", conferenceID).
			First(&conference).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConferenceNotFound
			}
			return fmt.Errorf("failed to lock conference: %w", err)
		}

		if conference.IsFull() {
			return ErrSessionFull
		}

		var tickets []ticketing.Ticket
		if err := tx.Preload("TicketType").
			Where("user_id = ? AND status = ?", userID, ticketing.TicketStatusValid).
			Find(&tickets).Error; err != nil {
			return fmt.Errorf("failed to load user tickets: %w", err)
		}

		hasAccess := false
		for i := range tickets {
			if tickets[i].TicketType != nil && tickets[i].TicketType.CoversDate(conference.StartAt) {
				hasAccess = true
				break
			}
		}
		if !hasAccess {
			return ErrNoValidTicketForDate
		}

		item := &UserProgramItem{
			UserID:       userID,
			ConferenceID: conferenceID,
		}
		if err := tx.Create(item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyInProgram
			}
			return fmt.Errorf("failed to create program item: %w", err)
		}

		if err := tx.Model(&Conference{}).
			Where("id = ?", conferenceID).
			UpdateColumn("attendees", gorm.Expr("attendees + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment attendees: %w", err)
		}

		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil && isSerializationFailure(err) {
		return ErrTransactionConflict
	}
	return err
}

// LeaveProgram removes the join row and returns the seat, flooring the
// counter at zero.
func (r *repository) LeaveProgram(ctx context.Context, userID, conferenceID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND conference_id = ?", userID, conferenceID).
			Delete(&UserProgramItem{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete program item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProgramItemNotFound
		}

		if err := tx.Model(&Conference{}).
			Where("id = ?", conferenceID).
			UpdateColumn("attendees", gorm.Expr("GREATEST(attendees - 1, 0)")).Error; err != nil {
			return fmt.Errorf("failed to decrement attendees: %w", err)
		}

		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil && isSerializationFailure(err) {
		return ErrTransactionConflict
	}
	return err
}
