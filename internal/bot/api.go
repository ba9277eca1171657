package bot

import "catalyst/internal/domain"

// Brain is the interface all bot strategies implement: given the authoritative
// game state and the seat the bot occupies, produce the next action.
type Brain interface {
	CalculateMove(game *domain.Game, role domain.Role) (domain.Action, error)
}
