package domain

import "testing"

func TestIsSituationCompleted(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		placed   []string
		want     bool
	}{
		{
			name:     "ExactMatch",
			required: []string{"a", "b", "c", "d", "e"},
			placed:   []string{"e", "d", "c", "b", "a"},
			want:     true,
		},
		{
			name:     "DuplicatesMatchedCountForCount",
			required: []string{"a", "a", "b", "c", "d"},
			placed:   []string{"a", "b", "a", "d", "c"},
			want:     true,
		},
		{
			name:     "DuplicateShortfall",
			required: []string{"a", "a", "b", "c", "d"},
			placed:   []string{"a", "b", "b", "c", "d"},
			want:     false,
		},
		{
			name:     "WrongCard",
			required: []string{"a", "b", "c", "d", "e"},
			placed:   []string{"a", "b", "c", "d", "x"},
			want:     false,
		},
		{
			name:     "TooFew",
			required: []string{"a", "b", "c", "d", "e"},
			placed:   []string{"a", "b", "c", "d"},
			want:     false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			slot := &PlayedSituationCard{
				SituationCard:  testSituation("sit", 10, test.required...),
				PlacedEnergies: testEnergies(test.placed...),
			}
			if got := IsSituationCompleted(slot); got != test.want {
				t.Errorf("IsSituationCompleted() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestIsSituationCompleted_NilSlot(t *testing.T) {
	if IsSituationCompleted(nil) {
		t.Error("IsSituationCompleted(nil) = true, want false")
	}
}

func TestCalculatePlayerScore(t *testing.T) {
	completed := &PlayedSituationCard{
		SituationCard:  testSituation("done", 10, "a", "b", "c", "d", "e"),
		PlacedEnergies: testEnergies("a", "b", "c", "d", "e"),
	}
	open := &PlayedSituationCard{
		SituationCard: testSituation("open", 15, "a", "b", "c", "d", "e"),
	}

	tests := []struct {
		name    string
		private *PlayedSituationCard
		common  *PlayedSituationCard
		want    int
	}{
		{name: "BothOpen", private: open, common: open, want: 30},
		{name: "PrivateCompleted", private: completed, common: open, want: 15},
		{name: "BothCompleted", private: completed, common: completed, want: 0},
		{name: "EmptyPrivateSlot", private: nil, common: open, want: 15},
		{name: "NoCommon", private: open, common: nil, want: 15},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			player := &PlayerState{PrivateSituation: test.private}
			if got := CalculatePlayerScore(player, test.common); got != test.want {
				t.Errorf("CalculatePlayerScore() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestDetermineWinner(t *testing.T) {
	open := func(quota int) *PlayedSituationCard {
		return &PlayedSituationCard{SituationCard: testSituation("open", quota, "a", "b", "c", "d", "e")}
	}

	tests := []struct {
		name         string
		p1Quota      int
		p2Quota      int
		firstToScore Role
		want         Winner
	}{
		{name: "LowerScoreWins", p1Quota: 10, p2Quota: 20, want: WinnerPlayer1},
		{name: "LowerScoreWinsOther", p1Quota: 25, p2Quota: 10, want: WinnerPlayer2},
		{name: "TieFirstScorerLoses", p1Quota: 10, p2Quota: 10, firstToScore: RolePlayer1, want: WinnerPlayer2},
		{name: "TieFirstScorerLosesOther", p1Quota: 10, p2Quota: 10, firstToScore: RolePlayer2, want: WinnerPlayer1},
		{name: "TieNoScoringIsDraw", p1Quota: 10, p2Quota: 10, want: WinnerDraw},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := &Game{
				Player1:            &PlayerState{PrivateSituation: open(test.p1Quota)},
				Player2:            &PlayerState{PrivateSituation: open(test.p2Quota)},
				FirstPlayerToScore: test.firstToScore,
			}
			result := DetermineWinner(g)
			if result.Winner != test.want {
				t.Errorf("DetermineWinner() = %s, want %s", result.Winner, test.want)
			}
			if result.Player1Score != test.p1Quota || result.Player2Score != test.p2Quota {
				t.Errorf("scores = %d/%d, want %d/%d", result.Player1Score, result.Player2Score, test.p1Quota, test.p2Quota)
			}
		})
	}
}
