package bot

import "fmt"

// BotLevel selects a strategy tier.
type BotLevel int

const (
	BotLevelBalanced BotLevel = iota
	BotLevelChaser
)

// NewBrain creates a strategy for the given level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelBalanced:
		return &BalancedBot{}, nil
	case BotLevelChaser:
		return &ChaserBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a pooled bot identity.
func NewAgent(userID string) (*Agent, error) {
	identity, ok := identityFor(userID)
	if !ok {
		return nil, fmt.Errorf("no bot identity for user id %q", userID)
	}
	brain, err := NewBrain(identity.Level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.Username, Strategy: brain}, nil
}
