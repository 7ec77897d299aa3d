package program

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	listConferencesFn func(ctx context.Context) ([]Conference, error)
	getConferenceFn   func(ctx context.Context, id uuid.UUID) (*Conference, error)
	listUserProgramFn func(ctx context.Context, userID uuid.UUID) ([]UserProgramItem, error)
	joinProgramFn     func(ctx context.Context, userID, conferenceID uuid.UUID) error
	leaveProgramFn    func(ctx context.Context, userID, conferenceID uuid.UUID) error
}

func (m *mockRepository) ListConferences(ctx context.Context) ([]Conference, error) {
	return m.listConferencesFn(ctx)
}

func (m *mockRepository) GetConference(ctx context.Context, id uuid.UUID) (*Conference, error) {
	return m.getConferenceFn(ctx, id)
}

func (m *mockRepository) ListUserProgram(ctx context.Context, userID uuid.UUID) ([]UserProgramItem, error) {
	return m.listUserProgramFn(ctx, userID)
}

func (m *mockRepository) JoinProgram(ctx context.Context, userID, conferenceID uuid.UUID) error {
	return m.joinProgramFn(ctx, userID, conferenceID)
}

func (m *mockRepository) LeaveProgram(ctx context.Context, userID, conferenceID uuid.UUID) error {
	return m.leaveProgramFn(ctx, userID, conferenceID)
}

func TestListUserProgramFlattensConferences(t *testing.T) {
	first := &Conference{ID: uuid.New(), Title: "L'Architecture de Demain", StartAt: time.Now()}
	second := &Conference{ID: uuid.New(), Title: "Tech & Sobriété", StartAt: time.Now().Add(time.Hour)}

	repo := &mockRepository{
		listUserProgramFn: func(ctx context.Context, userID uuid.UUID) ([]UserProgramItem, error) {
			return []UserProgramItem{
				{Conference: first},
				{Conference: second},
				{Conference: nil},
			}, nil
		},
	}

	svc := NewService(repo)
	got, err := svc.ListUserProgram(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "L'Architecture de Demain", got[0].Title)
	require.Equal(t, "Tech & Sobriété", got[1].Title)
}

func TestJoinProgramRetriesConflictOnce(t *testing.T) {
	calls := 0
	repo := &mockRepository{
		joinProgramFn: func(ctx context.Context, userID, conferenceID uuid.UUID) error {
			calls++
			if calls == 1 {
				return ErrTransactionConflict
			}
			return nil
		},
	}

	svc := NewService(repo)
	require.NoError(t, svc.JoinProgram(context.Background(), uuid.New(), uuid.New()))
	require.Equal(t, 2, calls)
}

func TestJoinProgramDoesNotRetryTerminalErrors(t *testing.T) {
	terminal := []error{
		ErrConferenceNotFound,
		ErrSessionFull,
		ErrNoValidTicketForDate,
		ErrAlreadyInProgram,
	}

	for _, want := range terminal {
		calls := 0
		repo := &mockRepository{
			joinProgramFn: func(ctx context.Context, userID, conferenceID uuid.UUID) error {
				calls++
				return want
			},
		}

		svc := NewService(repo)
		err := svc.JoinProgram(context.Background(), uuid.New(), uuid.New())
		require.ErrorIs(t, err, want)
		require.Equal(t, 1, calls, "terminal error %v must not be retried", want)
	}
}

func TestLeaveProgramRetriesConflictOnce(t *testing.T) {
	calls := 0
	repo := &mockRepository{
		leaveProgramFn: func(ctx context.Context, userID, conferenceID uuid.UUID) error {
			calls++
			if calls == 1 {
				return ErrTransactionConflict
			}
			return nil
		},
	}

	svc := NewService(repo)
	require.NoError(t, svc.LeaveProgram(context.Background(), uuid.New(), uuid.New()))
	require.Equal(t, 2, calls)
}

func TestConferenceIsFull(t *testing.T) {
	cap := 2

	tests := []struct {
		name       string
		conference Conference
		want       bool
	}{
		{name: "unlimited capacity", conference: Conference{Attendees: 10000}, want: false},
		{name: "below cap", conference: Conference{MaxCapacity: &cap, Attendees: 1}, want: false},
		{name: "at cap", conference: Conference{MaxCapacity: &cap, Attendees: 2}, want: true},
		{name: "over cap", conference: Conference{MaxCapacity: &cap, Attendees: 3}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.conference.IsFull())
		})
	}
}
