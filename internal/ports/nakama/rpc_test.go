package nakama

import "testing"

func TestNewRoomCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := newRoomCode()
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, r := range code {
			if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				t.Fatalf("code %q contains %q", code, r)
			}
		}
		seen[code] = true
	}
	// 100 draws from a 36^6 space should never all collide.
	if len(seen) < 2 {
		t.Error("room codes are not varying")
	}
}
