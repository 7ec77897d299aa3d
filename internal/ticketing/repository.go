package ticketing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Read paths (availability is recomputed from these on every call)
	ListActiveTicketTypes(ctx context.Context) ([]TicketType, error)
	ListFestivalDays(ctx context.Context) ([]FestivalDay, error)
	GetUserValidTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	GetUserTicket(ctx context.Context, userID, ticketID uuid.UUID) (*Ticket, error)
	UserHasValidTicket(ctx context.Context, userID uuid.UUID) (bool, error)

	// Transaction protocols
	PurchaseTicket(ctx context.Context, userID, ticketTypeID uuid.UUID) (*Ticket, error)
	CancelTicket(ctx context.Context, userID, ticketID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveTicketTypes(ctx context.Context) ([]TicketType, error) {
	var types []TicketType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("valid_from ASC, price_cents ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) ListFestivalDays(ctx context.Context) ([]FestivalDay, error) {
	var days []FestivalDay
	err := r.db.WithContext(ctx).Order("date ASC").Find(&days).Error
	return days, err
}

func (r *repository) GetUserValidTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Where("user_id = ? AND status = ?", userID, TicketStatusValid).
		Find(&tickets).Error
	return tickets, err
}

func (r *repository) GetUserTicket(ctx context.Context, userID, ticketID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Where("id = ? AND user_id = ?", ticketID, userID).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) UserHasValidTicket(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("user_id = ? AND status = ?", userID, TicketStatusValid).
		Count(&count).Error
	return count > 0, err
}

// PurchaseTicket runs the full purchase protocol in one serializable
// transaction: duplicate-ticket re-check, row-locked capacity check, sales
// window check, festival day ledger recomputation, then the three writes.
// Any precondition failure rolls the whole transaction back.
func (r *repository) PurchaseTicket(ctx context.Context, userID, ticketTypeID uuid.UUID) (*Ticket, error) {
	var created *Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Re-check the one-valid-ticket rule under this transaction's
		// isolation; the service pre-checks it too, but only this check
		// (backed by the partial unique index) is authoritative.
		var count int64
		if err := tx.Model(&Ticket{}).
			Where("user_id = ? AND status = ?", userID, TicketStatusValid).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing tickets: %w", err)
		}
		if count > 0 {
			return ErrDuplicateActiveTicket
		}

		// 2. Lock the ticket type row so the read-check-write on sold_count
		// cannot race a concurrent purchase of the same type.
		var tType TicketType
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", ticketTypeID).
			First(&tType).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketTypeNotFound
			}
			return fmt.Errorf("failed to lock ticket type: %w", err)
		}

		// 3. Own capacity.
		if tType.SoldCount >= tType.Capacity {
			return ErrCapacityExhausted
		}

		// 4. Sales window.
		if err := CheckSalesWindow(&tType, time.Now().UTC()); err != nil {
			return err
		}

		// 5. Shared venue capacity: recompute the full day ledger across all
		// active types inside this transaction and verify +1 fits everywhere.
		if tType.HasValidityWindow() {
			var days []FestivalDay
			if err := tx.Find(&days).Error; err != nil {
				return fmt.Errorf("failed to load festival days: %w", err)
			}
			var activeTypes []TicketType
			if err := tx.Where("is_active = ?", true).Find(&activeTypes).Error; err != nil {
				return fmt.Errorf("failed to load active ticket types: %w", err)
			}
			if err := CheckDayCapacity(&tType, days, activeTypes); err != nil {
				return err
			}
		}

		// 6. Writes: order, ticket, counter increment.
		order := &Order{
			UserID:     userID,
			Status:     OrderStatusPaid,
			TotalCents: tType.PriceCents,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		ticket := &Ticket{
			UserID:         userID,
			TicketTypeID:   tType.ID,
			OrderID:        order.ID,
			Status:         TicketStatusValid,
			RedemptionCode: uuid.NewString(),
		}
		if err := tx.Create(ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateActiveTicket
			}
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		if err := tx.Model(&TicketType{}).
			Where("id = ?", tType.ID).
			UpdateColumn("sold_count", gorm.Expr("sold_count + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment sold count: %w", err)
		}

		ticket.TicketType = &tType
		created = ticket
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if isSerializationFailure(err) {
			return nil, ErrTransactionConflict
		}
		return nil, err
	}
	return created, nil
}

// CancelTicket flips a VALID ticket to REFUNDED and gives the unit back to
// the owning type, atomically. The ticket row is kept forever.
func (r *repository) CancelTicket(ctx context.Context, userID, ticketID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket Ticket
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ? AND status = ?", ticketID, userID, TicketStatusValid).
			First(&ticket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("failed to lock ticket: %w", err)
		}

		if err := tx.Model(&Ticket{}).
			Where("id = ?", ticket.ID).
			Update("status", TicketStatusRefunded).Error; err != nil {
			return fmt.Errorf("failed to update ticket status: %w", err)
		}

		// No floor needed: this only ever returns a unit the purchase
		// protocol previously counted.
		if err := tx.Model(&TicketType{}).
			Where("id = ?", ticket.TicketTypeID).
			UpdateColumn("sold_count", gorm.Expr("sold_count - ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to decrement sold count: %w", err)
		}

		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil && isSerializationFailure(err) {
		return ErrTransactionConflict
	}
	return err
}
