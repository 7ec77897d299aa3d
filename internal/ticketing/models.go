package ticketing

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

type TicketStatus string

const (
	TicketStatusValid    TicketStatus = "VALID"
	TicketStatusUsed     TicketStatus = "USED"
	TicketStatusRefunded TicketStatus = "REFUNDED"
)

// FestivalDay is a single calendar date of the festival with its shared
// attendance ceiling. Reference data, seeded once and never mutated.
type FestivalDay struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Date        time.Time `json:"date" gorm:"not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	MaxCapacity int       `json:"max_capacity" gorm:"not null;default:2000;check:max_capacity > 0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TicketType is a purchasable class of admission. SoldCount is mutated only
// by the purchase (increment) and cancellation (decrement) protocols.
type TicketType struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name         string     `json:"name" gorm:"not null;size:255"`
	Description  string     `json:"description" gorm:"type:text"`
	PriceCents   int        `json:"price_cents" gorm:"not null;check:price_cents >= 0"`
	Currency     string     `json:"currency" gorm:"not null;default:'eur';size:3"`
	Capacity     int        `json:"capacity" gorm:"not null;check:capacity > 0"`
	SoldCount    int        `json:"sold_count" gorm:"not null;default:0;check:sold_count >= 0"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	SalesStartAt *time.Time `json:"sales_start_at"`
	SalesEndAt   *time.Time `json:"sales_end_at"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidUntil   *time.Time `json:"valid_until"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// HasValidityWindow reports whether the type is restricted to a date range.
// Types with an open or missing window grant access to any date and are not
// counted against festival day capacity.
func (t *TicketType) HasValidityWindow() bool {
	return t.ValidFrom != nil && t.ValidUntil != nil
}

// OverlapsDay reports whether the validity window touches the given day.
func (t *TicketType) OverlapsDay(d Day) bool {
	if !t.HasValidityWindow() {
		return false
	}
	return !t.ValidFrom.After(d.End()) && !t.ValidUntil.Before(d.Start())
}

// CoversDate reports whether a ticket of this type grants access at the
// given instant. A windowless type covers every date.
func (t *TicketType) CoversDate(at time.Time) bool {
	if !t.HasValidityWindow() {
		return true
	}
	return !at.Before(*t.ValidFrom) && !at.After(*t.ValidUntil)
}

// IsMultiDay reports whether the validity window spans more than one day.
func (t *TicketType) IsMultiDay() bool {
	if !t.HasValidityWindow() {
		return false
	}
	return t.ValidUntil.Sub(*t.ValidFrom) > 24*time.Hour
}

// Order records one purchase transaction. Created once, never mutated.
type Order struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID     uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING_PAYMENT'"`
	TotalCents int         `json:"total_cents" gorm:"not null"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// Ticket is one held seat. Never deleted; cancellation flips the status to
// REFUNDED. The redemption code is the opaque token rendered as a QR code.
type Ticket struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID         uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	TicketTypeID   uuid.UUID    `json:"ticket_type_id" gorm:"type:uuid;not null"`
	OrderID        uuid.UUID    `json:"order_id" gorm:"type:uuid;not null"`
	Status         TicketStatus `json:"status" gorm:"type:varchar(20);not null;default:'VALID'"`
	RedemptionCode string       `json:"redemption_code" gorm:"uniqueIndex;size:64"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`

	TicketType *TicketType `json:"ticket_type,omitempty" gorm:"foreignKey:TicketTypeID"`
}

func (FestivalDay) TableName() string { return "festival_days" }
func (TicketType) TableName() string  { return "ticket_types" }
func (Order) TableName() string       { return "orders" }
func (Ticket) TableName() string      { return "tickets" }

// TicketTypeAvailability pairs a type with its computed remaining stock.
type TicketTypeAvailability struct {
	TicketType     TicketType `json:"ticket_type"`
	RemainingStock int        `json:"remaining_stock"`
	IsSoldOut      bool       `json:"is_sold_out"`
}

type TicketResponse struct {
	ID             string       `json:"id"`
	Status         TicketStatus `json:"status"`
	RedemptionCode string       `json:"redemption_code"`
	CreatedAt      time.Time    `json:"created_at"`
	TicketType     *TicketType  `json:"ticket_type,omitempty"`
}

func (t *Ticket) ToResponse() TicketResponse {
	return TicketResponse{
		ID:             t.ID.String(),
		Status:         t.Status,
		RedemptionCode: t.RedemptionCode,
		CreatedAt:      t.CreatedAt,
		TicketType:     t.TicketType,
	}
}

type PurchaseRequest struct {
	TicketTypeID string `json:"ticket_type_id" binding:"required,uuid"`
}
