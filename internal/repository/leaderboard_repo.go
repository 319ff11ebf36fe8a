package repository

import (
	"context"

	"tictactoe_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LeaderboardRepository struct {
	db *pgxpool.Pool
}

func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// EnsureEntry seeds a zero row for a player so they show up on the board
// before their first finished match.
func (r *LeaderboardRepository) EnsureEntry(ctx context.Context, userID, displayName string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO leaderboard (user_id, display_name)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id)
		 DO UPDATE SET display_name = $2`,
		userID, displayName,
	)
	return err
}

// RecordOutcome applies one finished match to both participants' records.
func (r *LeaderboardRepository) RecordOutcome(ctx context.Context, outcome domain.MatchOutcome) error {
	if outcome.Result == domain.MatchResultDraw {
		for i, id := range outcome.PlayerIDs {
			name := ""
			if i < len(outcome.PlayerNames) {
				name = outcome.PlayerNames[i]
			}
			if err := r.bump(ctx, id, name, 0, 0, 1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := r.bump(ctx, outcome.WinnerID, outcome.WinnerName, 1, 0, 0); err != nil {
		return err
	}
	return r.bump(ctx, outcome.LoserID, outcome.LoserName, 0, 1, 0)
}

func (r *LeaderboardRepository) bump(ctx context.Context, userID, displayName string, wins, losses, draws int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO leaderboard (user_id, display_name, wins, losses, draws)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id)
		 DO UPDATE SET
		     display_name = $2,
		     wins   = leaderboard.wins   + $3,
		     losses = leaderboard.losses + $4,
		     draws  = leaderboard.draws  + $5,
		     updated_at = now()`,
		userID, displayName, wins, losses, draws,
	)
	return err
}

// Snapshot returns the ordered leaderboard: wins desc, draws desc, losses asc.
func (r *LeaderboardRepository) Snapshot(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, COALESCE(display_name, ''), wins, losses, draws, updated_at
		 FROM leaderboard
		 ORDER BY wins DESC, draws DESC, losses ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Wins, &e.Losses, &e.Draws, &e.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
