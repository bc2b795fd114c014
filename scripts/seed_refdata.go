// seed_refdata.go — standalone script to load the embedded reference tables
// into Postgres so a deployment can serve curated data instead.
//
// Usage:
//
//	go run scripts/seed_refdata.go -db postgres://localhost/strikeplan
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchside/strikeplan/internal/refdata"
)

func main() {
	dbURL := flag.String("db", "", "Postgres connection URL")
	dryRun := flag.Bool("dry-run", false, "print rows without inserting")
	flag.Parse()

	registry, err := refdata.Embedded()
	if err != nil {
		log.Fatalf("load embedded reference data: %v", err)
	}

	if *dryRun {
		for _, p := range registry.Players() {
			fmt.Printf("player %-16s %-20s sr=%.1f\n", p.ID, p.Name, p.DefaultStrikeRate)
		}
		for _, v := range registry.Venues() {
			fmt.Printf("venue  %-40s %s\n", v.Name, v.Type)
		}
		return
	}

	if *dbURL == "" {
		log.Fatal("-db is required (or use -dry-run)")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ref_players (
			player_id           TEXT PRIMARY KEY,
			display_name        TEXT NOT NULL,
			avatar_url          TEXT NOT NULL DEFAULT '',
			default_strike_rate DOUBLE PRECISION NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS ref_venues (
			venue_name TEXT PRIMARY KEY,
			venue_type TEXT NOT NULL
		)`)
	if err != nil {
		log.Fatalf("create tables: %v", err)
	}

	var inserted int
	for _, p := range registry.Players() {
		_, err := pool.Exec(ctx, `
			INSERT INTO ref_players (player_id, display_name, avatar_url, default_strike_rate)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (player_id) DO UPDATE
			SET display_name = $2, avatar_url = $3, default_strike_rate = $4`,
			p.ID, p.Name, p.Avatar, p.DefaultStrikeRate)
		if err != nil {
			log.Fatalf("insert player %s: %v", p.ID, err)
		}
		inserted++
	}
	for _, v := range registry.Venues() {
		_, err := pool.Exec(ctx, `
			INSERT INTO ref_venues (venue_name, venue_type)
			VALUES ($1, $2)
			ON CONFLICT (venue_name) DO UPDATE SET venue_type = $2`,
			v.Name, v.Type)
		if err != nil {
			log.Fatalf("insert venue %s: %v", v.Name, err)
		}
		inserted++
	}

	fmt.Printf("seeded %d reference rows\n", inserted)
}
