package services

import "github.com/openbracket/tournament-api/models"

// Ownership rule: only the organizer may mutate a tournament or
// anything owned by it. Callers must confirm the target exists before
// asking, so probing a foreign resource reports not-found rather than
// forbidden.

func authorizeTournamentMutation(userID int, tournament *models.Tournament) error {
	if tournament.OrganizerID != userID {
		return ErrForbiddenOperation
	}
	return nil
}

// Match and participant mutations inherit the rule through the parent
// tournament.
func authorizeMatchMutation(userID int, parent *models.Tournament) error {
	return authorizeTournamentMutation(userID, parent)
}
