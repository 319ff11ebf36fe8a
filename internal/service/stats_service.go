package service

import (
	"context"

	"tictactoe_arena/internal/domain"
	"tictactoe_arena/internal/repository"
)

// StatsService persists match outcomes and serves leaderboard reads. It is
// the engine's only bridge to Postgres; the engine itself never blocks on it.
type StatsService struct {
	players     *repository.PlayerRepository
	leaderboard *repository.LeaderboardRepository
}

func NewStatsService(players *repository.PlayerRepository, leaderboard *repository.LeaderboardRepository) *StatsService {
	return &StatsService{players: players, leaderboard: leaderboard}
}

// RecordOutcome upserts both participants and applies the win/loss/draw
// counters in one pass.
func (s *StatsService) RecordOutcome(ctx context.Context, outcome domain.MatchOutcome) error {
	for i, id := range outcome.PlayerIDs {
		name := ""
		if i < len(outcome.PlayerNames) {
			name = outcome.PlayerNames[i]
		}
		if err := s.players.UpsertSeen(ctx, id, name); err != nil {
			return err
		}
		if err := s.leaderboard.EnsureEntry(ctx, id, name); err != nil {
			return err
		}
	}
	return s.leaderboard.RecordOutcome(ctx, outcome)
}

// Leaderboard returns the top entries ordered by wins.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.leaderboard.Snapshot(ctx, limit)
}

// TotalPlayers counts everyone ever seen.
func (s *StatsService) TotalPlayers(ctx context.Context) (int, error) {
	return s.players.TotalPlayers(ctx)
}
