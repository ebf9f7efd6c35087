package services

import (
	"context"
	"fmt"

	"github.com/openbracket/tournament-api/models"
	"github.com/openbracket/tournament-api/repositories"
	"golang.org/x/sync/errgroup"
)

type Stats struct {
	UsersTotal       int `json:"users_total"`
	TournamentsTotal int `json:"tournaments_total"`
	OpenTournaments  int `json:"open_tournaments"`
	MatchesTotal     int `json:"matches_total"`
}

type StatsService interface {
	GetStats(ctx context.Context) (Stats, error)
}

type statsService struct {
	userRepo       repositories.UserRepository
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
}

func NewStatsService(
	userRepo repositories.UserRepository,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
) StatsService {
	return &statsService{
		userRepo:       userRepo,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
	}
}

// GetStats fans the four count queries out concurrently; each one is
// independent and read-only.
func (s *statsService) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	open := models.StatusOpen

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.UsersTotal, err = s.userRepo.Count(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TournamentsTotal, err = s.tournamentRepo.Count(ctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.OpenTournaments, err = s.tournamentRepo.Count(ctx, &open)
		return err
	})
	g.Go(func() error {
		var err error
		stats.MatchesTotal, err = s.matchRepo.Count(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("failed to collect stats: %w", err)
	}
	return stats, nil
}
