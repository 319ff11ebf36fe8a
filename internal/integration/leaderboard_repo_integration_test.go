package integration

import (
	"context"
	"os"
	"testing"

	"tictactoe_arena/internal/domain"
	"tictactoe_arena/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestLeaderboardRepository_RecordOutcome(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer db.Close()

	applyMigrations(t, db)

	ctx := context.Background()
	players := repository.NewPlayerRepository(db)
	leaderboard := repository.NewLeaderboardRepository(db)

	// unique ids keep reruns against a shared database independent
	winner := "it:" + uuid.NewString()
	loser := "it:" + uuid.NewString()

	for _, p := range []struct{ id, name string }{{winner, "Winner"}, {loser, "Loser"}} {
		if err := players.UpsertSeen(ctx, p.id, p.name); err != nil {
			t.Fatalf("upsert %s: %v", p.id, err)
		}
		if err := leaderboard.EnsureEntry(ctx, p.id, p.name); err != nil {
			t.Fatalf("ensure entry %s: %v", p.id, err)
		}
	}

	err = leaderboard.RecordOutcome(ctx, domain.MatchOutcome{
		MatchID:     uuid.NewString(),
		Result:      domain.MatchResultWin,
		WinnerID:    winner,
		WinnerName:  "Winner",
		LoserID:     loser,
		LoserName:   "Loser",
		PlayerIDs:   []string{winner, loser},
		PlayerNames: []string{"Winner", "Loser"},
	})
	if err != nil {
		t.Fatalf("record win: %v", err)
	}

	err = leaderboard.RecordOutcome(ctx, domain.MatchOutcome{
		MatchID:     uuid.NewString(),
		Result:      domain.MatchResultDraw,
		PlayerIDs:   []string{winner, loser},
		PlayerNames: []string{"Winner", "Loser"},
	})
	if err != nil {
		t.Fatalf("record draw: %v", err)
	}

	entries, err := leaderboard.Snapshot(ctx, 1000)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	byID := make(map[string]domain.LeaderboardEntry, len(entries))
	for _, e := range entries {
		byID[e.UserID] = e
	}

	w, ok := byID[winner]
	if !ok {
		t.Fatal("winner missing from snapshot")
	}
	if w.Wins != 1 || w.Losses != 0 || w.Draws != 1 {
		t.Errorf("winner = %d/%d/%d, want 1/0/1", w.Wins, w.Losses, w.Draws)
	}

	l, ok := byID[loser]
	if !ok {
		t.Fatal("loser missing from snapshot")
	}
	if l.Wins != 0 || l.Losses != 1 || l.Draws != 1 {
		t.Errorf("loser = %d/%d/%d, want 0/1/1", l.Wins, l.Losses, l.Draws)
	}

	user, err := players.GetByID(ctx, winner)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if user.DisplayName != "Winner" {
		t.Errorf("DisplayName = %q, want Winner", user.DisplayName)
	}
}
