package program

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConferenceNotFound is returned when the session does not exist.
	ErrConferenceNotFound = errors.New("conference not found")

	// ErrSessionFull is returned when the session reached its attendance cap.
	ErrSessionFull = errors.New("conference session is full")

	// ErrNoValidTicketForDate is returned when none of the user's valid
	// tickets covers the session's start date.
	ErrNoValidTicketForDate = errors.New("no valid ticket for this date")

	// ErrAlreadyInProgram is returned when the (user, conference) pair
	// already exists; surfaced from the unique index on insert.
	ErrAlreadyInProgram = errors.New("conference already in program")

	// ErrProgramItemNotFound is returned by leave when no join row exists.
	ErrProgramItemNotFound = errors.New("program item not found")

	// ErrTransactionConflict is returned on a serialization failure and is
	// safe to retry exactly once.
	ErrTransactionConflict = errors.New("transaction conflict")
)

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001"
	}
	return false
}
