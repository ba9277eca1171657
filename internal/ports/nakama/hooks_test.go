package nakama

import (
	"testing"

	"github.com/form3tech-oss/jwt-go"
)

func sessionToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExtractUserIDFromToken(t *testing.T) {
	token := sessionToken(t, jwt.MapClaims{"uid": "user-42", "usn": "Answer"})

	uid, err := extractUserIDFromToken(token)
	if err != nil {
		t.Fatalf("extractUserIDFromToken() error: %v", err)
	}
	if uid != "user-42" {
		t.Errorf("uid = %q, want user-42", uid)
	}
}

func TestExtractUserIDFromToken_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "Garbage", token: "not-a-token"},
		{name: "MissingUID", token: sessionToken(t, jwt.MapClaims{"usn": "NoID"})},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := extractUserIDFromToken(test.token); err == nil {
				t.Error("extractUserIDFromToken() succeeded, want error")
			}
		})
	}
}
