package bot

import "catalyst/internal/domain"

// Agent is an autonomous bot player occupying one seat of a match.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent for its next action in the given game.
func (a *Agent) Play(game *domain.Game) (domain.Action, error) {
	role, ok := game.RoleOf(a.ID)
	if !ok {
		return domain.Action{}, domain.ErrUnknownPlayer
	}
	return a.Strategy.CalculateMove(game, role)
}
