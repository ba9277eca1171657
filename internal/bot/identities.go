package bot

import (
	"encoding/json"
	"os"
	"strings"
)

// botIDPrefix marks seat user ids occupied by bots.
const botIDPrefix = "bot-"

// Identity is a pooled bot persona.
type Identity struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Level    BotLevel `json:"level"`
}

var identities = defaultIdentities()

func defaultIdentities() []Identity {
	return []Identity{
		{UserID: "bot-lumen", Username: "Lumen", Level: BotLevelBalanced},
		{UserID: "bot-zephyr", Username: "Zéphyr", Level: BotLevelChaser},
		{UserID: "bot-ondine", Username: "Ondine", Level: BotLevelBalanced},
		{UserID: "bot-braise", Username: "Braise", Level: BotLevelChaser},
	}
}

// LoadIdentities replaces the built-in persona pool from a JSON data file.
// Missing files leave the defaults in place.
func LoadIdentities(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var loaded []Identity
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if len(loaded) > 0 {
		identities = loaded
	}
	return nil
}

// IsBot reports whether a seat user id belongs to a bot.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, botIDPrefix)
}

// GetBotIdentity returns a persona for the given seat index, cycling the pool.
func GetBotIdentity(seat int) Identity {
	if seat < 0 {
		seat = -seat
	}
	return identities[seat%len(identities)]
}

// GetBotUsername resolves a bot user id to its display name, or "" for
// unknown or human ids.
func GetBotUsername(userID string) string {
	for _, id := range identities {
		if id.UserID == userID {
			return id.Username
		}
	}
	return ""
}

func identityFor(userID string) (Identity, bool) {
	for _, id := range identities {
		if id.UserID == userID {
			return id, true
		}
	}
	return Identity{}, false
}
