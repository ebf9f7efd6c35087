package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/openbracket/tournament-api/models"
	"github.com/openbracket/tournament-api/repositories"
)

// UpdateParticipantInput is a patch over the organizer-editable fields.
type UpdateParticipantInput struct {
	Seed      *int  `json:"seed"`
	CheckedIn *bool `json:"checked_in"`
}

type ParticipantService interface {
	Join(ctx context.Context, tournamentID, userID int) (*models.Participant, error)
	Leave(ctx context.Context, tournamentID, userID int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Participant, error)
	Update(ctx context.Context, tournamentID, participantID, currentUserID int, input UpdateParticipantInput) (*models.Participant, error)
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	tournamentRepo  repositories.TournamentRepository
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	tournamentRepo repositories.TournamentRepository,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		tournamentRepo:  tournamentRepo,
	}
}

// Join registers the user for the tournament. The tournament must be
// open and under capacity, and the user must not already be in it.
// The capacity check is check-then-act; only the membership uniqueness
// is backed by a database constraint.
func (s *participantService) Join(ctx context.Context, tournamentID, userID int) (*models.Participant, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	if tournament.Status != models.StatusOpen {
		return nil, ErrRegistrationNotOpen
	}

	count, err := s.participantRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants for tournament %d: %w", tournamentID, err)
	}
	if count >= tournament.MaxParticipants {
		return nil, ErrTournamentFull
	}

	participant := &models.Participant{
		TournamentID: tournamentID,
		UserID:       userID,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrParticipantUserInvalid):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrParticipantTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to register participant: %w", err)
	}
	return participant, nil
}

func (s *participantService) Leave(ctx context.Context, tournamentID, userID int) error {
	participant, err := s.participantRepo.FindByUserAndTournament(ctx, userID, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to find registration: %w", err)
	}

	if err := s.participantRepo.Delete(ctx, participant.ID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to delete participant %d: %w", participant.ID, err)
	}
	return nil
}

func (s *participantService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Participant, error) {
	participants, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for tournament %d: %w", tournamentID, err)
	}
	return participants, nil
}

// Update lets the organizer adjust seeding and check-in for an entry.
func (s *participantService) Update(ctx context.Context, tournamentID, participantID, currentUserID int, input UpdateParticipantInput) (*models.Participant, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to load participant %d: %w", participantID, err)
	}
	if participant.TournamentID != tournamentID {
		return nil, ErrParticipantNotFound
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}
	if err := authorizeTournamentMutation(currentUserID, tournament); err != nil {
		return nil, err
	}

	if input.Seed != nil {
		if *input.Seed <= 0 {
			return nil, ErrParticipantSeedMustBePositive
		}
		participant.Seed = input.Seed
	}
	if input.CheckedIn != nil {
		participant.CheckedIn = *input.CheckedIn
	}

	if err := s.participantRepo.Update(ctx, participant); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to update participant %d: %w", participantID, err)
	}
	return participant, nil
}
