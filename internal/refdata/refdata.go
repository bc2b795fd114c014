// Package refdata serves the static reference tables the dashboard and the
// feature pipeline consume: venue classifications, bowler groups, and the
// player registry. The tables ship embedded in the binary; a Postgres source
// can replace them at startup. Either way they are read-only afterwards.
package refdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/venues.yaml
var venuesYAML []byte

//go:embed data/players.yaml
var playersYAML []byte

// Player is one entry of the player registry.
type Player struct {
	ID                string  `json:"id" yaml:"id"`
	Name              string  `json:"name" yaml:"name"`
	Avatar            string  `json:"avatar" yaml:"avatar"`
	DefaultStrikeRate float64 `json:"default_sr" yaml:"default_sr"`
}

// Venue maps a ground to its pace/spin classification.
type Venue struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Registry holds the reference tables for the process lifetime.
type Registry struct {
	players      []Player
	playersByID  map[string]Player
	venues       []Venue
	venueTypeOf  map[string]string
	venueTypes   []string
	bowlerGroups []string
}

type venuesFile struct {
	VenueTypes   []string `yaml:"venue_types"`
	BowlerGroups []string `yaml:"bowler_groups"`
	Venues       []Venue  `yaml:"venues"`
}

type playersFile struct {
	Players []Player `yaml:"players"`
}

// Embedded builds a Registry from the data files compiled into the binary.
func Embedded() (*Registry, error) {
	var vf venuesFile
	if err := yaml.Unmarshal(venuesYAML, &vf); err != nil {
		return nil, fmt.Errorf("parse embedded venues: %w", err)
	}
	var pf playersFile
	if err := yaml.Unmarshal(playersYAML, &pf); err != nil {
		return nil, fmt.Errorf("parse embedded players: %w", err)
	}
	return build(pf.Players, vf.Venues, vf.VenueTypes, vf.BowlerGroups)
}

func build(players []Player, venues []Venue, venueTypes, bowlerGroups []string) (*Registry, error) {
	r := &Registry{
		players:      players,
		playersByID:  make(map[string]Player, len(players)),
		venues:       venues,
		venueTypeOf:  make(map[string]string, len(venues)),
		venueTypes:   venueTypes,
		bowlerGroups: bowlerGroups,
	}
	for _, p := range players {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("player entry missing id or name: %+v", p)
		}
		if _, dup := r.playersByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate player id %q", p.ID)
		}
		r.playersByID[p.ID] = p
	}
	for _, v := range venues {
		r.venueTypeOf[v.Name] = v.Type
	}
	return r, nil
}

// Players returns the registry in file order.
func (r *Registry) Players() []Player { return r.players }

// Player looks a player up by id.
func (r *Registry) Player(id string) (Player, bool) {
	p, ok := r.playersByID[id]
	return p, ok
}

// Venues returns the classified venue list.
func (r *Registry) Venues() []Venue { return r.venues }

// VenueType returns the classification for a ground, defaulting to Neutral
// for grounds the reference data does not cover.
func (r *Registry) VenueType(venue string) string {
	if t, ok := r.venueTypeOf[venue]; ok {
		return t
	}
	return "Neutral"
}

// VenueTypes returns the venue classification enumeration.
func (r *Registry) VenueTypes() []string { return r.venueTypes }

// BowlerGroups returns the bowler group enumeration.
func (r *Registry) BowlerGroups() []string { return r.bowlerGroups }
