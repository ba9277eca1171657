package domain

// IsSituationCompleted reports whether the placed energies are a multiset
// match for the situation's 5 required energies. Duplicated requirements must
// be matched count-for-count; order never matters.
func IsSituationCompleted(situation *PlayedSituationCard) bool {
	if situation == nil || len(situation.PlacedEnergies) != RequiredEnergyCount {
		return false
	}

	required := make(map[string]int, RequiredEnergyCount)
	for _, e := range situation.SituationCard.RequiredEnergies {
		required[e.ID]++
	}
	for _, e := range situation.PlacedEnergies {
		count, ok := required[e.ID]
		if !ok || count == 0 {
			return false
		}
		required[e.ID] = count - 1
	}
	return true
}

// CalculatePlayerScore totals the quota penalties a player carries at match
// end: their private situation and the common situation each add their quota
// when left incomplete. Pure function over immutable inputs.
func CalculatePlayerScore(player *PlayerState, common *PlayedSituationCard) int {
	score := 0
	if player.PrivateSituation != nil && !IsSituationCompleted(player.PrivateSituation) {
		score += player.PrivateSituation.SituationCard.Quota
	}
	if common != nil && !IsSituationCompleted(common) {
		score += common.SituationCard.Quota
	}
	return score
}

// DetermineWinner computes the end-of-match result. Lower score wins; on a
// tie the player who first received points loses, and a tie with no scoring
// event at all is a true draw.
func DetermineWinner(g *Game) Result {
	p1 := CalculatePlayerScore(g.Player1, g.CommonSituation)
	p2 := CalculatePlayerScore(g.Player2, g.CommonSituation)

	result := Result{Player1Score: p1, Player2Score: p2}
	switch {
	case p1 < p2:
		result.Winner = WinnerPlayer1
	case p2 < p1:
		result.Winner = WinnerPlayer2
	case g.FirstPlayerToScore == RolePlayer1:
		result.Winner = WinnerPlayer2
	case g.FirstPlayerToScore == RolePlayer2:
		result.Winner = WinnerPlayer1
	default:
		result.Winner = WinnerDraw
	}
	return result
}
