package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openbracket/tournament-api/models"
	"github.com/openbracket/tournament-api/repositories"
)

const defaultMaxParticipants = 16

type CreateTournamentInput struct {
	Name                 string                   `json:"name"`
	Description          *string                  `json:"description"`
	Game                 string                   `json:"game"`
	Format               *models.TournamentFormat `json:"format"`
	MaxParticipants      *int                     `json:"max_participants"`
	RegistrationDeadline time.Time                `json:"registration_deadline"`
	StartDate            time.Time                `json:"start_date"`
}

// UpdateTournamentInput is a patch: nil fields are left untouched.
type UpdateTournamentInput struct {
	Name                 *string                  `json:"name"`
	Description          *string                  `json:"description"`
	Game                 *string                  `json:"game"`
	Format               *models.TournamentFormat `json:"format"`
	MaxParticipants      *int                     `json:"max_participants"`
	Status               *models.TournamentStatus `json:"status"`
	RegistrationDeadline *time.Time               `json:"registration_deadline"`
	StartDate            *time.Time               `json:"start_date"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id, currentUserID int) error
}

type tournamentService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	tournament := &models.Tournament{
		Name:                 strings.TrimSpace(input.Name),
		Description:          input.Description,
		Game:                 strings.TrimSpace(input.Game),
		Format:               models.FormatSingleElimination,
		MaxParticipants:      defaultMaxParticipants,
		Status:               models.StatusDraft,
		OrganizerID:          organizerID,
		RegistrationDeadline: input.RegistrationDeadline,
		StartDate:            input.StartDate,
	}
	if input.Format != nil {
		tournament.Format = *input.Format
	}
	if input.MaxParticipants != nil {
		tournament.MaxParticipants = *input.MaxParticipants
	}

	if err := validateTournament(tournament); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentOrganizerInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// Update loads the tournament, checks ownership, applies the patch and
// persists the result. Existence is checked before authorization.
func (s *tournamentService) Update(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeTournamentMutation(currentUserID, tournament); err != nil {
		return nil, err
	}

	applyTournamentPatch(tournament, input)

	if err := validateTournament(tournament); err != nil {
		return nil, err
	}
	if input.MaxParticipants != nil {
		count, err := s.participantRepo.CountByTournament(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count participants for tournament %d: %w", id, err)
		}
		if *input.MaxParticipants < count {
			return nil, ErrTournamentCapacityBelowEnrolment
		}
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, id, currentUserID int) error {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeTournamentMutation(currentUserID, tournament); err != nil {
		return err
	}

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}

// applyTournamentPatch overwrites only the fields present in the patch.
func applyTournamentPatch(t *models.Tournament, input UpdateTournamentInput) {
	if input.Name != nil {
		t.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		t.Description = input.Description
	}
	if input.Game != nil {
		t.Game = strings.TrimSpace(*input.Game)
	}
	if input.Format != nil {
		t.Format = *input.Format
	}
	if input.MaxParticipants != nil {
		t.MaxParticipants = *input.MaxParticipants
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.RegistrationDeadline != nil {
		t.RegistrationDeadline = *input.RegistrationDeadline
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
}

// validateTournament checks field-level invariants. Status may be set
// to any valid value; there is deliberately no transition graph.
func validateTournament(t *models.Tournament) error {
	if t.Name == "" {
		return ErrTournamentNameRequired
	}
	if t.Game == "" {
		return ErrTournamentGameRequired
	}
	if !t.Format.Valid() {
		return ErrTournamentInvalidFormat
	}
	if !t.Status.Valid() {
		return ErrTournamentInvalidStatus
	}
	if t.MaxParticipants <= 0 {
		return ErrTournamentInvalidCapacity
	}
	if t.RegistrationDeadline.IsZero() || t.StartDate.IsZero() {
		return fmt.Errorf("%w: registration deadline and start date are required", ErrValidationFailed)
	}
	if t.RegistrationDeadline.After(t.StartDate) {
		return fmt.Errorf("%w: deadline %s is after start %s", ErrTournamentInvalidDates,
			t.RegistrationDeadline.Format(time.RFC3339), t.StartDate.Format(time.RFC3339))
	}
	return nil
}
