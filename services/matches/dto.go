package matches

import "github.com/nvbf/league-manager/pkg/league"

// CreateMatchRequest is a match plus the player events to record with it.
type CreateMatchRequest struct {
	league.Match
	Events *league.EventBatch `json:"events"`
}

// UpdateMatchRequest patches a match. A non-nil Events replaces every event
// recorded for the match.
type UpdateMatchRequest struct {
	league.MatchUpdate
	Events *league.EventBatch `json:"events"`
}
