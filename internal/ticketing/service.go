package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"festly/pkg/logger"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Service interface defines the contract for the ticketing business logic.
type Service interface {
	ListTicketTypes(ctx context.Context) ([]TicketTypeAvailability, error)
	PurchaseTicket(ctx context.Context, userID, ticketTypeID uuid.UUID) (*Ticket, error)
	CancelTicket(ctx context.Context, userID, ticketID uuid.UUID) error
	ListUserValidTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	RenderTicketQR(ctx context.Context, userID, ticketID uuid.UUID, size int) ([]byte, error)
}

type service struct {
	repo      Repository
	publisher EventPublisher // nil when Kafka is not configured
	log       *logger.Logger
}

func NewService(repo Repository, publisher EventPublisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		log:       logger.GetDefault(),
	}
}

// ListTicketTypes recomputes availability from fresh rows on every call:
// the day ledger and per-type bottlenecks are derived, never cached, so the
// listing can only ever be a point-in-time snapshot, not stale by design.
func (s *service) ListTicketTypes(ctx context.Context) ([]TicketTypeAvailability, error) {
	types, err := s.repo.ListActiveTicketTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket types: %w", err)
	}
	days, err := s.repo.ListFestivalDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list festival days: %w", err)
	}

	ledger := BuildDayLedger(days, types)

	items := make([]TicketTypeAvailability, 0, len(types))
	for i := range types {
		remaining := RemainingStock(&types[i], days, ledger)
		items = append(items, TicketTypeAvailability{
			TicketType:     types[i],
			RemainingStock: remaining,
			IsSoldOut:      remaining <= 0,
		})
	}

	SortByDisplayOrder(items)
	return items, nil
}

// PurchaseTicket enforces the one-valid-ticket rule up front, then hands
// the purchase to the transactional protocol. A serialization conflict is
// retried exactly once; every other failure is terminal for this call.
func (s *service) PurchaseTicket(ctx context.Context, userID, ticketTypeID uuid.UUID) (*Ticket, error) {
	has, err := s.repo.UserHasValidTicket(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tickets: %w", err)
	}
	if has {
		return nil, ErrDuplicateActiveTicket
	}

	ticket, err := s.repo.PurchaseTicket(ctx, userID, ticketTypeID)
	if errors.Is(err, ErrTransactionConflict) {
		s.log.Warn("purchase hit a serialization conflict, retrying once",
			slog.String("user_id", userID.String()),
			slog.String("ticket_type_id", ticketTypeID.String()),
		)
		ticket, err = s.repo.PurchaseTicket(ctx, userID, ticketTypeID)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &TicketEvent{
		Type:         EventTicketPurchased,
		TicketID:     ticket.ID.String(),
		TicketTypeID: ticket.TicketTypeID.String(),
		UserID:       userID.String(),
		PriceCents:   ticket.TicketType.PriceCents,
		Currency:     ticket.TicketType.Currency,
		OccurredAt:   time.Now().UTC(),
	})

	return ticket, nil
}

func (s *service) CancelTicket(ctx context.Context, userID, ticketID uuid.UUID) error {
	err := s.repo.CancelTicket(ctx, userID, ticketID)
	if errors.Is(err, ErrTransactionConflict) {
		err = s.repo.CancelTicket(ctx, userID, ticketID)
	}
	if err != nil {
		return err
	}

	s.publish(ctx, &TicketEvent{
		Type:       EventTicketRefunded,
		TicketID:   ticketID.String(),
		UserID:     userID.String(),
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

func (s *service) ListUserValidTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	return s.repo.GetUserValidTickets(ctx, userID)
}

// RenderTicketQR renders the ticket's redemption code as a PNG. Only the
// owner of a VALID ticket can render it.
func (s *service) RenderTicketQR(ctx context.Context, userID, ticketID uuid.UUID, size int) ([]byte, error) {
	ticket, err := s.repo.GetUserTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != TicketStatusValid {
		return nil, ErrTicketNotFound
	}

	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(ticket.RedemptionCode, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// publish sends a sale audit event; failures are logged, never surfaced,
// since the sale itself has already committed.
func (s *service) publish(ctx context.Context, event *TicketEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTicketEvent(ctx, event); err != nil {
		s.log.Error("failed to publish ticket event",
			slog.String("type", event.Type),
			slog.String("ticket_id", event.TicketID),
			slog.Any("error", err),
		)
	}
}
