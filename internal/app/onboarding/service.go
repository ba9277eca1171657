package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"catalyst/internal/ports"
)

// Service handles post-auth onboarding for new users: every fresh account
// gets a friendly display name so match snapshots never show raw ids.
type Service struct {
	accounts ports.AccountPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service. rng may be nil to use a
// time-seeded default.
func NewService(accounts ports.AccountPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{accounts: accounts, rng: rng}
}

// OnboardNewUser assigns a generated display name to a newly created account
// and returns it.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (string, error) {
	if s.accounts == nil {
		return "", fmt.Errorf("onboarding service not configured")
	}

	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		return "", fmt.Errorf("failed to update profile: %w", err)
	}
	return displayName, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Vif", "Calme", "Rusé", "Hardi", "Clair", "Agile", "Franc", "Tenace"}
	nouns := []string{"Photon", "Cyclone", "Torrent", "Lichen", "Magma", "Zénith", "Quartz", "Mistral"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
