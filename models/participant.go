package models

import "time"

type Participant struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	Seed         *int      `json:"seed,omitempty" db:"seed"`
	CheckedIn    bool      `json:"checked_in" db:"checked_in"`
	JoinedAt     time.Time `json:"joined_at" db:"joined_at"`

	User *User `json:"user,omitempty" db:"-"`
}
