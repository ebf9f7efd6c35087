package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openbracket/tournament-api/models"
	"github.com/openbracket/tournament-api/repositories"
)

// UpdateMatchInput is a patch over the organizer-editable match fields.
// Nothing here generates matches or advances winners; results are set
// by direct assignment from the payload.
type UpdateMatchInput struct {
	Player1ID    *int                `json:"player1_id"`
	Player2ID    *int                `json:"player2_id"`
	Player1Score *int                `json:"player1_score"`
	Player2Score *int                `json:"player2_score"`
	WinnerID     *int                `json:"winner_id"`
	Status       *models.MatchStatus `json:"status"`
	ScheduledAt  *time.Time          `json:"scheduled_at"`
	CompletedAt  *time.Time          `json:"completed_at"`
}

type MatchService interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	Update(ctx context.Context, id, currentUserID int, input UpdateMatchInput) (*models.Match, error)
}

type matchService struct {
	matchRepo       repositories.MatchRepository
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
) MatchService {
	return &matchService{
		matchRepo:       matchRepo,
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
	}
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

// Update applies a result/schedule patch to a match. Only the parent
// tournament's organizer may call it. Player and winner references are
// validated against the match's own tournament.
func (s *matchService) Update(ctx context.Context, id, currentUserID int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", match.TournamentID, err)
	}
	if err := authorizeMatchMutation(currentUserID, tournament); err != nil {
		return nil, err
	}

	applyMatchPatch(match, input)

	if err := s.validateMatch(ctx, match); err != nil {
		return nil, err
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchParticipantInvalid):
			return nil, ErrMatchPlayerNotInTournament
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

func applyMatchPatch(m *models.Match, input UpdateMatchInput) {
	if input.Player1ID != nil {
		m.Player1ID = input.Player1ID
	}
	if input.Player2ID != nil {
		m.Player2ID = input.Player2ID
	}
	if input.Player1Score != nil {
		m.Player1Score = input.Player1Score
	}
	if input.Player2Score != nil {
		m.Player2Score = input.Player2Score
	}
	if input.WinnerID != nil {
		m.WinnerID = input.WinnerID
	}
	if input.Status != nil {
		m.Status = *input.Status
	}
	if input.ScheduledAt != nil {
		m.ScheduledAt = *input.ScheduledAt
	}
	if input.CompletedAt != nil {
		m.CompletedAt = input.CompletedAt
	}
}

func (s *matchService) validateMatch(ctx context.Context, m *models.Match) error {
	if !m.Status.Valid() {
		return ErrMatchInvalidStatus
	}

	for _, playerID := range []*int{m.Player1ID, m.Player2ID} {
		if playerID == nil {
			continue
		}
		participant, err := s.participantRepo.GetByID(ctx, *playerID)
		if err != nil {
			if errors.Is(err, repositories.ErrParticipantNotFound) {
				return ErrMatchPlayerNotInTournament
			}
			return fmt.Errorf("failed to load participant %d: %w", *playerID, err)
		}
		if participant.TournamentID != m.TournamentID {
			return ErrMatchPlayerNotInTournament
		}
	}

	if m.WinnerID != nil {
		isPlayer := (m.Player1ID != nil && *m.Player1ID == *m.WinnerID) ||
			(m.Player2ID != nil && *m.Player2ID == *m.WinnerID)
		if !isPlayer {
			return ErrMatchWinnerNotAPlayer
		}
	}
	return nil
}
