package refdata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadPostgres reads the reference tables from Postgres once and returns a
// Registry built from them. The connection is closed before returning; the
// service never touches the database again.
func LoadPostgres(ctx context.Context, databaseURL string) (*Registry, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to reference database: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping reference database: %w", err)
	}

	players, err := loadPlayers(ctx, pool)
	if err != nil {
		return nil, err
	}
	venues, venueTypes, err := loadVenues(ctx, pool)
	if err != nil {
		return nil, err
	}

	// Bowler groups are a fixed enumeration, not a table.
	embedded, err := Embedded()
	if err != nil {
		return nil, err
	}
	return build(players, venues, venueTypes, embedded.BowlerGroups())
}

func loadPlayers(ctx context.Context, pool *pgxpool.Pool) ([]Player, error) {
	rows, err := pool.Query(ctx, `
		SELECT player_id, display_name, avatar_url, default_strike_rate
		FROM ref_players
		ORDER BY display_name`)
	if err != nil {
		return nil, fmt.Errorf("query ref_players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Avatar, &p.DefaultStrikeRate); err != nil {
			return nil, fmt.Errorf("scan ref_players: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func loadVenues(ctx context.Context, pool *pgxpool.Pool) ([]Venue, []string, error) {
	rows, err := pool.Query(ctx, `
		SELECT venue_name, venue_type
		FROM ref_venues
		ORDER BY venue_name`)
	if err != nil {
		return nil, nil, fmt.Errorf("query ref_venues: %w", err)
	}
	defer rows.Close()

	var venues []Venue
	seen := make(map[string]bool)
	var types []string
	for rows.Next() {
		var v Venue
		if err := rows.Scan(&v.Name, &v.Type); err != nil {
			return nil, nil, fmt.Errorf("scan ref_venues: %w", err)
		}
		venues = append(venues, v)
		if !seen[v.Type] {
			seen[v.Type] = true
			types = append(types, v.Type)
		}
	}
	return venues, types, rows.Err()
}
