package app

import (
	"errors"
	"math/rand"
	"time"

	"catalyst/internal/domain"
)

// Defaults for match options when the caller leaves them zero.
const (
	DefaultMaxTurns          = 20
	DefaultSituationHandSize = 3

	// minEnergyDeckSize keeps the energy draw pile from starving early.
	minEnergyDeckSize = 10
)

var (
	ErrInsufficientCatalog = errors.New("catalog too small to deal a match")
	ErrNoActiveGame        = errors.New("no active game")
)

// Options tune per-match rules.
type Options struct {
	MaxTurns          int
	SituationHandSize int
}

// PlayerInfo identifies a seated participant.
type PlayerInfo struct {
	UserID   string
	Username string
}

// Service contains the Catalyst match use-cases operating on domain state.
// It is the single mutator of a room's Game; callers must apply actions for
// one room strictly sequentially.
type Service struct {
	rng     *rand.Rand
	opts    Options
	effects *domain.EffectRegistry
}

// NewService constructs a Service with the provided rng or a time-seeded
// default, and with the built-in effect semantics.
func NewService(rng *rand.Rand, opts Options) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if opts.SituationHandSize <= 0 {
		opts.SituationHandSize = DefaultSituationHandSize
	}
	return &Service{
		rng:     rng,
		opts:    opts,
		effects: domain.NewEffectRegistry(),
	}
}

// Effects exposes the effect registry so hosts can install special handlers.
func (s *Service) Effects() *domain.EffectRegistry {
	return s.effects
}

// StartMatch deals a fresh game: one private situation per player, one common
// situation, a hand of situation cards each, empty energy hands, and shuffled
// decks. The first player is chosen at random.
func (s *Service) StartMatch(roomID string, p1, p2 PlayerInfo, situations []domain.SituationCardWithEnergies, energies []domain.Energy) (*domain.Game, []Event, error) {
	needSituations := 2*(1+s.opts.SituationHandSize) + 1
	if len(situations) < needSituations || len(energies) < minEnergyDeckSize {
		return nil, nil, ErrInsufficientCatalog
	}

	situationDeck := domain.NewDeck(situations, false, s.rng)
	situationDeck.Shuffle()
	energyDeck := domain.NewDeck(energies, true, s.rng)
	energyDeck.Shuffle()

	game := &domain.Game{
		RoomID:        roomID,
		Player1:       &domain.PlayerState{UserID: p1.UserID, Username: p1.Username},
		Player2:       &domain.PlayerState{UserID: p2.UserID, Username: p2.Username},
		SituationDeck: situationDeck,
		EnergyDeck:    energyDeck,
		CurrentTurn:   1,
		MaxTurns:      s.opts.MaxTurns,
		Phase:         domain.PhaseSetup,
		CreatedAt:     time.Now(),
	}

	for _, role := range []domain.Role{domain.RolePlayer1, domain.RolePlayer2} {
		player := game.Player(role)

		private, err := situationDeck.Draw()
		if err != nil {
			return nil, nil, err
		}
		player.PrivateSituation = &domain.PlayedSituationCard{SituationCard: private, PlayedBy: role}

		for i := 0; i < s.opts.SituationHandSize; i++ {
			card, err := situationDeck.Draw()
			if err != nil {
				return nil, nil, err
			}
			player.HandSituationCards = append(player.HandSituationCards, card)
		}
	}

	common, err := situationDeck.Draw()
	if err != nil {
		return nil, nil, err
	}
	game.CommonSituation = &domain.PlayedSituationCard{SituationCard: common}

	if s.rng.Intn(2) == 0 {
		game.CurrentPlayer = domain.RolePlayer1
	} else {
		game.CurrentPlayer = domain.RolePlayer2
	}
	game.Phase = domain.PhaseDrawingEnergy
	game.StartedAt = time.Now()

	events := []Event{{
		Kind:    EventMatchStarted,
		Payload: MatchStartedPayload{RoomID: roomID, FirstPlayer: game.CurrentPlayer},
	}}
	return game, events, nil
}

// HandleAction validates and applies one game action for the given user,
// returning the events describing what happened. Rejected actions leave the
// game unchanged.
func (s *Service) HandleAction(game *domain.Game, userID string, action domain.Action) ([]Event, error) {
	if game == nil {
		return nil, ErrNoActiveGame
	}
	if err := domain.ValidateAction(game, userID, action); err != nil {
		return nil, err
	}

	actor, _ := game.RoleOf(userID)
	switch action.Type {
	case domain.ActionDrawEnergy:
		return s.applyDraw(game, actor, action.Draw)
	case domain.ActionPlaceEnergy:
		return s.applyPlace(game, actor, action.Place)
	case domain.ActionDiscardEnergy:
		return s.applyDiscard(game, actor, action.Discard)
	case domain.ActionApplyEffect:
		return s.applyEffect(game, actor, action.Effect)
	case domain.ActionReplaceSituation:
		return s.applyReplace(game, actor, action.Replace)
	default:
		return nil, domain.ErrUnknownAction
	}
}

func (s *Service) applyDraw(game *domain.Game, actor domain.Role, payload *domain.DrawEnergyPayload) ([]Event, error) {
	var card domain.Energy
	var err error
	if payload.FromDiscard {
		card, err = game.EnergyDeck.DrawFromDiscard()
	} else {
		card, err = game.EnergyDeck.Draw()
	}
	if err != nil {
		return nil, err
	}
	if err := game.Player(actor).AddEnergy(card); err != nil {
		// Validation guarantees room in the hand; put the card back on error.
		game.EnergyDeck.Discard(card)
		return nil, err
	}

	game.Phase = domain.PhasePlacingEnergy
	return []Event{{
		Kind:    EventEnergyDrawn,
		Payload: EnergyDrawnPayload{Player: actor, FromDiscard: payload.FromDiscard, Energy: card},
	}}, nil
}

func (s *Service) applyPlace(game *domain.Game, actor domain.Role, payload *domain.PlaceEnergyPayload) ([]Event, error) {
	card, err := game.Player(actor).RemoveEnergyAt(payload.EnergyCardIndex)
	if err != nil {
		return nil, err
	}
	target := game.SituationFor(actor, payload.TargetSituation)
	target.PlacedEnergies = append(target.PlacedEnergies, card)

	events := []Event{{
		Kind:    EventEnergyPlaced,
		Payload: EnergyPlacedPayload{Player: actor, Target: payload.TargetSituation, Energy: card},
	}}

	if domain.IsSituationCompleted(target) {
		completed := &domain.CompletedSituation{
			Type: game.CompletedTypeFor(actor, payload.TargetSituation),
			Card: target.SituationCard,
		}
		game.Completed = completed
		game.Phase = domain.PhaseWaitingEffect
		events = append(events, Event{
			Kind:    EventSituationCompleted,
			Payload: SituationCompletedPayload{Type: completed.Type, Card: completed.Card},
		})
		return events, nil
	}

	return append(events, s.endTurn(game)...), nil
}

func (s *Service) applyDiscard(game *domain.Game, actor domain.Role, payload *domain.DiscardEnergyPayload) ([]Event, error) {
	card, err := game.Player(actor).RemoveEnergyAt(payload.EnergyCardIndex)
	if err != nil {
		return nil, err
	}
	game.EnergyDeck.Discard(card)

	events := []Event{{
		Kind:    EventEnergyDiscarded,
		Payload: EnergyDiscardedPayload{Player: actor, Energy: card},
	}}
	return append(events, s.endTurn(game)...), nil
}

func (s *Service) applyEffect(game *domain.Game, actor domain.Role, payload *domain.ApplyEffectPayload) ([]Event, error) {
	completed := game.Completed
	s.effects.Apply(completed.Card.Effect, actor, payload.TargetPlayer, game)

	events := []Event{{
		Kind:    EventEffectApplied,
		Payload: EffectAppliedPayload{Source: actor, Target: payload.TargetPlayer, Effect: completed.Card.Effect},
	}}

	owner := domain.OwnerOfSlot(completed.Type)
	replaceable := completed.Type == domain.CompletedCommon || owner == actor
	if replaceable && len(game.Player(actor).HandSituationCards) > 0 {
		game.Phase = domain.PhaseWaitingReplacement
		return events, nil
	}

	// Either the completed slot belongs to the opponent, or the acting player
	// has no situation card left to refill it with. The slot stays empty.
	s.clearCompletedSlot(game)
	game.Completed = nil
	return append(events, s.endTurn(game)...), nil
}

func (s *Service) applyReplace(game *domain.Game, actor domain.Role, payload *domain.ReplaceSituationPayload) ([]Event, error) {
	newCard, err := game.Player(actor).RemoveSituationAt(payload.NewSituationCardIndex)
	if err != nil {
		return nil, err
	}

	completedType := game.Completed.Type
	s.clearCompletedSlot(game)
	game.Completed = nil

	played := &domain.PlayedSituationCard{SituationCard: newCard, PlayedBy: actor}
	if completedType == domain.CompletedCommon {
		game.CommonSituation = played
	} else {
		game.Player(actor).PrivateSituation = played
	}

	events := []Event{{
		Kind:    EventSituationReplaced,
		Payload: SituationReplacedPayload{Type: completedType, NewCard: newCard},
	}}
	return append(events, s.endTurn(game)...), nil
}

// clearCompletedSlot empties the slot recorded in game.Completed, moving its
// placed energies to the energy discard and the card to the situation discard.
func (s *Service) clearCompletedSlot(game *domain.Game) {
	var slot *domain.PlayedSituationCard
	switch game.Completed.Type {
	case domain.CompletedCommon:
		slot = game.CommonSituation
		game.CommonSituation = nil
	case domain.CompletedPlayer1Private:
		slot = game.Player1.PrivateSituation
		game.Player1.PrivateSituation = nil
	case domain.CompletedPlayer2Private:
		slot = game.Player2.PrivateSituation
		game.Player2.PrivateSituation = nil
	}
	if slot == nil {
		return
	}
	for _, e := range slot.PlacedEnergies {
		game.EnergyDeck.Discard(e)
	}
	game.SituationDeck.Discard(slot.SituationCard)
}

// endTurn hands the match to the other player. The turn counter increments
// once per player cycle; crossing MaxTurns finishes the match. A player whose
// energy hand is already full skips the drawing phase.
func (s *Service) endTurn(game *domain.Game) []Event {
	game.CurrentPlayer = game.CurrentPlayer.Opponent()
	game.CurrentTurn++
	if game.CurrentTurn > game.MaxTurns {
		return s.finish(game, domain.ReasonVictory, nil)
	}

	game.Phase = domain.PhaseDrawingEnergy
	if len(game.Player(game.CurrentPlayer).HandEnergyCards) >= domain.EnergyHandLimit {
		game.Phase = domain.PhasePlacingEnergy
	}

	return []Event{{
		Kind: EventTurnChanged,
		Payload: TurnChangedPayload{
			Turn:          game.CurrentTurn,
			CurrentPlayer: game.CurrentPlayer,
			Phase:         game.Phase,
		},
	}}
}

// finish ends the match. forcedWinner overrides score-based resolution for
// surrender and disconnect outcomes.
func (s *Service) finish(game *domain.Game, reason domain.EndReason, forcedWinner *domain.Winner) []Event {
	result := domain.DetermineWinner(game)
	result.Reason = reason
	if forcedWinner != nil {
		result.Winner = *forcedWinner
	}

	game.Result = &result
	game.Phase = domain.PhaseGameOver
	game.Completed = nil
	game.FinishedAt = time.Now()

	return []Event{{
		Kind:    EventGameOver,
		Payload: GameOverPayload{Result: result},
	}}
}

// Surrender short-circuits the phase machine straight to game over, awarding
// the match to the opponent. It is valid in any phase and for either player.
func (s *Service) Surrender(game *domain.Game, userID string) ([]Event, error) {
	return s.forfeit(game, userID, domain.ReasonSurrender)
}

// Disconnect ends the match when a participant drops, awarding the match to
// the remaining player.
func (s *Service) Disconnect(game *domain.Game, userID string) ([]Event, error) {
	return s.forfeit(game, userID, domain.ReasonDisconnect)
}

func (s *Service) forfeit(game *domain.Game, userID string, reason domain.EndReason) ([]Event, error) {
	if game == nil {
		return nil, ErrNoActiveGame
	}
	if game.IsOver() {
		return nil, domain.ErrMatchOver
	}
	role, ok := game.RoleOf(userID)
	if !ok {
		return nil, domain.ErrUnknownPlayer
	}

	winner := domain.WinnerPlayer1
	if role == domain.RolePlayer1 {
		winner = domain.WinnerPlayer2
	}
	return s.finish(game, reason, &winner), nil
}

// ResolveTimeout plays a conservative action on behalf of a stalled current
// player so a silent client cannot freeze the match: draw from the deck,
// discard the first hand energy, apply the pending effect to the opponent, or
// replace with the first hand situation card.
func (s *Service) ResolveTimeout(game *domain.Game) ([]Event, error) {
	if game == nil {
		return nil, ErrNoActiveGame
	}
	if game.IsOver() {
		return nil, domain.ErrMatchOver
	}

	actor := game.CurrentPlayer
	userID := game.Player(actor).UserID

	switch game.Phase {
	case domain.PhaseDrawingEnergy:
		events, err := s.HandleAction(game, userID, domain.Action{
			Type: domain.ActionDrawEnergy,
			Draw: &domain.DrawEnergyPayload{},
		})
		if err == nil {
			return events, nil
		}
		// Nothing to draw: move on to placement rather than stalling.
		game.Phase = domain.PhasePlacingEnergy
		if len(game.Player(actor).HandEnergyCards) == 0 {
			return s.endTurn(game), nil
		}
		return s.ResolveTimeout(game)

	case domain.PhasePlacingEnergy:
		if len(game.Player(actor).HandEnergyCards) == 0 {
			return s.endTurn(game), nil
		}
		return s.HandleAction(game, userID, domain.Action{
			Type:    domain.ActionDiscardEnergy,
			Discard: &domain.DiscardEnergyPayload{EnergyCardIndex: 0},
		})

	case domain.PhaseWaitingEffect:
		return s.HandleAction(game, userID, domain.Action{
			Type:   domain.ActionApplyEffect,
			Effect: &domain.ApplyEffectPayload{TargetPlayer: actor.Opponent()},
		})

	case domain.PhaseWaitingReplacement:
		target := domain.TargetMyPrivate
		if game.Completed != nil && game.Completed.Type == domain.CompletedCommon {
			target = domain.TargetCommon
		}
		return s.HandleAction(game, userID, domain.Action{
			Type:    domain.ActionReplaceSituation,
			Replace: &domain.ReplaceSituationPayload{SituationType: target, NewSituationCardIndex: 0},
		})

	default:
		return nil, domain.ErrWrongPhase
	}
}
