package program

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service interface defines the contract for the conference program logic.
type Service interface {
	ListConferences(ctx context.Context) ([]Conference, error)
	GetConference(ctx context.Context, id uuid.UUID) (*Conference, error)
	ListUserProgram(ctx context.Context, userID uuid.UUID) ([]Conference, error)
	JoinProgram(ctx context.Context, userID, conferenceID uuid.UUID) error
	LeaveProgram(ctx context.Context, userID, conferenceID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListConferences(ctx context.Context) ([]Conference, error) {
	return s.repo.ListConferences(ctx)
}

func (s *service) GetConference(ctx context.Context, id uuid.UUID) (*Conference, error) {
	return s.repo.GetConference(ctx, id)
}

// ListUserProgram returns the conferences the user signed up for, ordered
// by start time.
func (s *service) ListUserProgram(ctx context.Context, userID uuid.UUID) ([]Conference, error) {
	items, err := s.repo.ListUserProgram(ctx, userID)
	if err != nil {
		return nil, err
	}

	conferences := make([]Conference, 0, len(items))
	for i := range items {
		if items[i].Conference != nil {
			conferences = append(conferences, *items[i].Conference)
		}
	}
	return conferences, nil
}

// JoinProgram retries a serialization conflict exactly once; definitive
// precondition failures are returned as-is and must not be retried.
func (s *service) JoinProgram(ctx context.Context, userID, conferenceID uuid.UUID) error {
	err := s.repo.JoinProgram(ctx, userID, conferenceID)
	if errors.Is(err, ErrTransactionConflict) {
		err = s.repo.JoinProgram(ctx, userID, conferenceID)
	}
	return err
}

func (s *service) LeaveProgram(ctx context.Context, userID, conferenceID uuid.UUID) error {
	err := s.repo.LeaveProgram(ctx, userID, conferenceID)
	if errors.Is(err, ErrTransactionConflict) {
		err = s.repo.LeaveProgram(ctx, userID, conferenceID)
	}
	return err
}
