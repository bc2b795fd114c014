package api

import (
	"net/http"

	"github.com/pitchside/strikeplan/internal/refdata"
)

// ReferenceHandler serves the read-only lookup tables the dashboard needs to
// populate its form controls.
type ReferenceHandler struct {
	registry *refdata.Registry
}

func NewReferenceHandler(r *refdata.Registry) *ReferenceHandler {
	return &ReferenceHandler{registry: r}
}

// Players handles GET /api/reference/players
func (h *ReferenceHandler) Players(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"players": h.registry.Players()})
}

// Venues handles GET /api/reference/venues
func (h *ReferenceHandler) Venues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"venues":      h.registry.Venues(),
		"venue_types": h.registry.VenueTypes(),
	})
}

// BowlerGroups handles GET /api/reference/bowler-groups
func (h *ReferenceHandler) BowlerGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"bowler_groups": h.registry.BowlerGroups()})
}
