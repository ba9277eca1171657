package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type mockAccounts struct {
	updates map[string]string
	fail    error
}

func (m *mockAccounts) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	if m.fail != nil {
		return m.fail
	}
	if m.updates == nil {
		m.updates = make(map[string]string)
	}
	m.updates[userID] = displayName
	return nil
}

func TestOnboardNewUser(t *testing.T) {
	accounts := &mockAccounts{}
	service := NewService(accounts, rand.New(rand.NewSource(11)))

	name, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser() error: %v", err)
	}
	if name == "" {
		t.Fatal("OnboardNewUser() returned an empty name")
	}
	if accounts.updates["user-1"] != name {
		t.Errorf("profile display name = %q, want %q", accounts.updates["user-1"], name)
	}
}

func TestOnboardNewUser_Deterministic(t *testing.T) {
	first := NewService(&mockAccounts{}, rand.New(rand.NewSource(11)))
	second := NewService(&mockAccounts{}, rand.New(rand.NewSource(11)))

	a, _ := first.OnboardNewUser(context.Background(), "user-1")
	b, _ := second.OnboardNewUser(context.Background(), "user-1")
	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
}

func TestOnboardNewUser_ProfileError(t *testing.T) {
	cause := errors.New("storage down")
	service := NewService(&mockAccounts{fail: cause}, rand.New(rand.NewSource(11)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); !errors.Is(err, cause) {
		t.Errorf("OnboardNewUser() = %v, want wrapped %v", err, cause)
	}
}

func TestOnboardNewUser_Unconfigured(t *testing.T) {
	service := NewService(nil, nil)
	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Error("OnboardNewUser() without accounts succeeded, want error")
	}
}
