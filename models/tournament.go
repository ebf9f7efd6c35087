package models

import "time"

// TournamentStatus matches the ENUM in the database.
type TournamentStatus string

const (
	StatusDraft      TournamentStatus = "draft"
	StatusOpen       TournamentStatus = "open"
	StatusInProgress TournamentStatus = "in_progress"
	StatusCompleted  TournamentStatus = "completed"
	StatusCancelled  TournamentStatus = "cancelled"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatDoubleElimination TournamentFormat = "double_elimination"
	FormatRoundRobin        TournamentFormat = "round_robin"
)

func (f TournamentFormat) Valid() bool {
	switch f {
	case FormatSingleElimination, FormatDoubleElimination, FormatRoundRobin:
		return true
	}
	return false
}

type Tournament struct {
	ID                   int              `json:"id" db:"id"`
	Name                 string           `json:"name" db:"name"`
	Description          *string          `json:"description,omitempty" db:"description"`
	Game                 string           `json:"game" db:"game"`
	Format               TournamentFormat `json:"format" db:"format"`
	MaxParticipants      int              `json:"max_participants" db:"max_participants"`
	Status               TournamentStatus `json:"status" db:"status"`
	OrganizerID          int              `json:"organizer_id" db:"organizer_id"`
	RegistrationDeadline time.Time        `json:"registration_deadline" db:"registration_deadline"`
	StartDate            time.Time        `json:"start_date" db:"start_date"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`

	// Optional linked data, populated by services when requested.
	Organizer *User `json:"organizer,omitempty" db:"-"`
}
