package program

import (
	"time"

	"github.com/google/uuid"
)

// Conference is a scheduled session of the festival's conference program.
// Attendees is mutated only by the join/leave protocols.
type Conference struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	Theme       string     `json:"theme" gorm:"size:255"`
	StartAt     time.Time  `json:"start_at" gorm:"not null;index"`
	EndAt       time.Time  `json:"end_at" gorm:"not null"`
	Location    string     `json:"location" gorm:"size:255"`
	SpeakerName string     `json:"speaker_name" gorm:"size:255"`
	MaxCapacity *int       `json:"max_capacity"` // nil means unlimited
	Attendees   int        `json:"attendees" gorm:"not null;default:0;check:attendees >= 0"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsFull reports whether the session has reached its attendance cap.
func (c *Conference) IsFull() bool {
	return c.MaxCapacity != nil && c.Attendees >= *c.MaxCapacity
}

// UserProgramItem records a user's intent to attend a conference. The
// (user, conference) pair is unique.
type UserProgramItem struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	ConferenceID uuid.UUID `json:"conference_id" gorm:"type:uuid;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Conference *Conference `json:"conference,omitempty" gorm:"foreignKey:ConferenceID"`
}

func (Conference) TableName() string      { return "conferences" }
func (UserProgramItem) TableName() string { return "user_program_items" }
