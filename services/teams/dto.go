package teams

import "github.com/nvbf/league-manager/pkg/league"

// TeamDetail is a team with its squad.
type TeamDetail struct {
	league.Team
	Players []league.Player `json:"players"`
	Manager *league.Player  `json:"manager"`
}

type setManagerRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}
