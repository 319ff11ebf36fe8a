package repository

import (
	"context"

	"tictactoe_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// UpsertSeen records that a user was seen with the given display name,
// creating the player row on first contact.
func (r *PlayerRepository) UpsertSeen(ctx context.Context, userID, displayName string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO players (user_id, display_name)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id)
		 DO UPDATE SET display_name = $2, last_seen = now()`,
		userID, displayName,
	)
	return err
}

func (r *PlayerRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, COALESCE(display_name, ''), first_seen, last_seen
		 FROM players
		 WHERE user_id = $1`,
		userID,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.DisplayName, &u.FirstSeen, &u.LastSeen); err != nil {
		return nil, err
	}
	return &u, nil
}

// TotalPlayers returns how many distinct players have ever authenticated.
func (r *PlayerRepository) TotalPlayers(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&total)
	return total, err
}
