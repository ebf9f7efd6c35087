package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openbracket/tournament-api/models"
)

type matchFixture struct {
	svc        MatchService
	tournament *models.Tournament
	player1    *models.Participant
	player2    *models.Participant
	match      *models.Match
	matchRepo  *fakeMatchRepo
	partRepo   *fakeParticipantRepo
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()
	ctx := context.Background()

	tournamentRepo := newFakeTournamentRepo()
	participantRepo := newFakeParticipantRepo()
	matchRepo := newFakeMatchRepo()

	tournament := seedTournament(t, tournamentRepo, 1, 16, models.StatusInProgress)

	player1 := &models.Participant{TournamentID: tournament.ID, UserID: 10}
	player2 := &models.Participant{TournamentID: tournament.ID, UserID: 11}
	for _, p := range []*models.Participant{player1, player2} {
		if err := participantRepo.Create(ctx, p); err != nil {
			t.Fatalf("seeding participant: %v", err)
		}
	}

	match := &models.Match{
		TournamentID: tournament.ID,
		Round:        1,
		MatchNumber:  1,
		Player1ID:    &player1.ID,
		Player2ID:    &player2.ID,
		Status:       models.MatchStatusPending,
		ScheduledAt:  time.Now().Add(time.Hour),
	}
	if err := matchRepo.Create(ctx, match); err != nil {
		t.Fatalf("seeding match: %v", err)
	}

	return &matchFixture{
		svc:        NewMatchService(matchRepo, tournamentRepo, participantRepo),
		tournament: tournament,
		player1:    player1,
		player2:    player2,
		match:      match,
		matchRepo:  matchRepo,
		partRepo:   participantRepo,
	}
}

func TestUpdateMatchResult(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	score1, score2 := 2, 1
	status := models.MatchStatusCompleted
	completedAt := time.Now()

	updated, err := f.svc.Update(ctx, f.match.ID, 1, UpdateMatchInput{
		Player1Score: &score1,
		Player2Score: &score2,
		WinnerID:     &f.player1.ID,
		Status:       &status,
		CompletedAt:  &completedAt,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.WinnerID == nil || *updated.WinnerID != f.player1.ID {
		t.Fatalf("got winner %v, want %d", updated.WinnerID, f.player1.ID)
	}
	if updated.Status != models.MatchStatusCompleted {
		t.Fatalf("got status %q, want %q", updated.Status, models.MatchStatusCompleted)
	}
	if updated.Player1Score == nil || *updated.Player1Score != 2 {
		t.Fatalf("got player1 score %v, want 2", updated.Player1Score)
	}
}

func TestUpdateMatchAuthorization(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	status := models.MatchStatusInProgress
	if _, err := f.svc.Update(ctx, f.match.ID, 99, UpdateMatchInput{Status: &status}); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("non-organizer update: got %v, want ErrForbiddenOperation", err)
	}

	if _, err := f.svc.Update(ctx, 999, 1, UpdateMatchInput{Status: &status}); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("missing match: got %v, want ErrMatchNotFound", err)
	}
}

func TestUpdateMatchWinnerMustBeAPlayer(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	outsider := &models.Participant{TournamentID: f.tournament.ID, UserID: 42}
	if err := f.partRepo.Create(ctx, outsider); err != nil {
		t.Fatalf("seeding participant: %v", err)
	}

	if _, err := f.svc.Update(ctx, f.match.ID, 1, UpdateMatchInput{WinnerID: &outsider.ID}); !errors.Is(err, ErrMatchWinnerNotAPlayer) {
		t.Fatalf("winner outside the pairing: got %v, want ErrMatchWinnerNotAPlayer", err)
	}
}

func TestUpdateMatchPlayerMustBelongToTournament(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	foreign := &models.Participant{TournamentID: f.tournament.ID + 100, UserID: 42}
	if err := f.partRepo.Create(ctx, foreign); err != nil {
		t.Fatalf("seeding participant: %v", err)
	}

	if _, err := f.svc.Update(ctx, f.match.ID, 1, UpdateMatchInput{Player1ID: &foreign.ID}); !errors.Is(err, ErrMatchPlayerNotInTournament) {
		t.Fatalf("player from another tournament: got %v, want ErrMatchPlayerNotInTournament", err)
	}

	unknown := 9999
	if _, err := f.svc.Update(ctx, f.match.ID, 1, UpdateMatchInput{Player1ID: &unknown}); !errors.Is(err, ErrMatchPlayerNotInTournament) {
		t.Fatalf("unknown participant id: got %v, want ErrMatchPlayerNotInTournament", err)
	}
}

func TestUpdateMatchInvalidStatus(t *testing.T) {
	f := newMatchFixture(t)

	bad := models.MatchStatus("abandoned")
	if _, err := f.svc.Update(context.Background(), f.match.ID, 1, UpdateMatchInput{Status: &bad}); !errors.Is(err, ErrMatchInvalidStatus) {
		t.Fatalf("invalid status: got %v, want ErrMatchInvalidStatus", err)
	}
}

func TestListMatchesByTournament(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	second := &models.Match{
		TournamentID: f.tournament.ID,
		Round:        1,
		MatchNumber:  2,
		Status:       models.MatchStatusPending,
		ScheduledAt:  time.Now().Add(2 * time.Hour),
	}
	if err := f.matchRepo.Create(ctx, second); err != nil {
		t.Fatalf("seeding match: %v", err)
	}

	matches, err := f.svc.ListByTournament(ctx, f.tournament.ID)
	if err != nil {
		t.Fatalf("ListByTournament returned error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
}
