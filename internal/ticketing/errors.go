package ticketing

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrTicketTypeNotFound is returned when the requested ticket type does
	// not exist.
	ErrTicketTypeNotFound = errors.New("ticket type not found")

	// ErrTicketNotFound covers both an unknown ticket id and a ticket that
	// is no longer VALID; callers cannot distinguish the two.
	ErrTicketNotFound = errors.New("ticket not found or already cancelled")

	// ErrDuplicateActiveTicket is returned when the user already holds a
	// VALID ticket.
	ErrDuplicateActiveTicket = errors.New("user already holds a valid ticket")

	// ErrCapacityExhausted is returned when the type's own stock is gone.
	ErrCapacityExhausted = errors.New("ticket type sold out")

	ErrSalesNotOpen = errors.New("sales have not started yet for this ticket")
	ErrSalesClosed  = errors.New("sales have ended for this ticket")

	// ErrTransactionConflict is returned on a serialization failure. It is
	// safe to retry the call exactly once.
	ErrTransactionConflict = errors.New("transaction conflict")
)

// VenueCapacityError reports which festival day ran out of shared venue
// capacity during a purchase attempt.
type VenueCapacityError struct {
	Day     Day
	DayName string
}

func (e *VenueCapacityError) Error() string {
	return fmt.Sprintf("venue capacity reached for %s (%s)", e.DayName, e.Day)
}

// pgSerializationFailure is the SQLSTATE Postgres reports when a
// serializable transaction must be retried.
const pgSerializationFailure = "40001"

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure
	}
	return false
}
