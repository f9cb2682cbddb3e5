package bot

import "fmt"

// BotLevel selects the strength of a bot brain.
type BotLevel int

const (
	BotLevelBasic BotLevel = iota
	BotLevelAdvanced
)

// NewBrain creates a brain for the given level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelBasic, BotLevelAdvanced:
		return &RuleBrain{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a bot user ID using its configured
// difficulty, defaulting to the basic brain.
func NewAgent(userID string) (*Agent, error) {
	level := BotLevelBasic
	if cfg, ok := GetBotConfig(userID); ok && cfg.Difficulty == "hard" {
		level = BotLevelAdvanced
	}

	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:    userID,
		Name:  GetBotDisplayName(userID),
		Brain: brain,
	}, nil
}
