package nakama

import (
	"time"

	"catalyst/internal/app"
	"catalyst/internal/domain"
)

// Wire DTOs mirror the browser client's protocol types field for field, so a
// snapshot broadcast renders identically for both participants.

type EnergyDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Quota      int    `json:"quota"`
	FrontImage string `json:"frontImage"`
	BackImage  string `json:"backImage"`
	Picto      string `json:"picto"`
}

type EffectDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Points      int    `json:"points"`
	Slug        string `json:"slug"`
}

type SituationCardDTO struct {
	ID         string `json:"id"`
	EffectID   string `json:"effectId"`
	BackImage  string `json:"backImage"`
	FrontImage string `json:"frontImage"`
}

type SituationWithEnergiesDTO struct {
	Card             SituationCardDTO `json:"card"`
	Effect           EffectDTO        `json:"effect"`
	RequiredEnergies []EnergyDTO      `json:"requiredEnergies"`
	Quota            int              `json:"quota"`
}

type PlayedSituationDTO struct {
	SituationCard  SituationWithEnergiesDTO `json:"situationCard"`
	PlacedEnergies []EnergyDTO              `json:"placedEnergies"`
	PlayedBy       string                   `json:"playedBy"`
}

type PlayerStateDTO struct {
	UserID               string                     `json:"userId"`
	Username             string                     `json:"username"`
	HandSituationCards   []SituationWithEnergiesDTO `json:"handSituationCards"`
	HandEnergyCards      []EnergyDTO                `json:"handEnergieCards"`
	Points               int                        `json:"points"`
	FirstToReceivePoints bool                       `json:"firstToReceivePoints"`
	PrivateSituationCard *PlayedSituationDTO        `json:"privateSituationCard"`
}

type CompletedSituationDTO struct {
	Type string                   `json:"type"`
	Card SituationWithEnergiesDTO `json:"card"`
}

type GameStateDTO struct {
	RoomID              string                     `json:"roomId"`
	Player1             PlayerStateDTO             `json:"player1"`
	Player2             PlayerStateDTO             `json:"player2"`
	CommonSituationCard *PlayedSituationDTO        `json:"commonSituationCard"`
	SituationDeck       []SituationWithEnergiesDTO `json:"situationDeck"`
	EnergyDeck          []EnergyDTO                `json:"energieDeck"`
	SituationDiscard    []SituationWithEnergiesDTO `json:"situationDiscard"`
	EnergyDiscard       []EnergyDTO                `json:"energieDiscard"`
	CurrentTurn         int                        `json:"currentTurn"`
	MaxTurns            int                        `json:"maxTurns"`
	CurrentPlayer       string                     `json:"currentPlayer"`
	Phase               string                     `json:"phase"`
	FirstPlayerToScore  string                     `json:"firstPlayerToScore,omitempty"`
	CompletedSituation  *CompletedSituationDTO     `json:"completedSituation,omitempty"`
	CreatedAt           time.Time                  `json:"createdAt"`
	StartedAt           *time.Time                 `json:"startedAt,omitempty"`
	FinishedAt          *time.Time                 `json:"finishedAt,omitempty"`
}

type GameEventDTO struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ActionResultDTO is broadcast to both participants after each processed action.
type ActionResultDTO struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	GameState *GameStateDTO  `json:"gameState,omitempty"`
	Events    []GameEventDTO `json:"events,omitempty"`
}

type OpponentDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// MatchStartDTO is sent to each participant individually at deal time.
type MatchStartDTO struct {
	RoomID    string       `json:"roomId"`
	YourTurn  bool         `json:"yourTurn"`
	Opponent  OpponentDTO  `json:"opponent"`
	IsPrivate bool         `json:"isPrivate"`
	GameState GameStateDTO `json:"gameState"`
}

type MatchEndDTO struct {
	Winner       string `json:"winner"` // player1 | player2 | draw
	Reason       string `json:"reason"` // victory | surrender | disconnect
	Player1Score int    `json:"player1Score"`
	Player2Score int    `json:"player2Score"`
}

type ErrorDTO struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type PlayerJoinedDTO struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Seat     int    `json:"seat"`
}

func energyToDTO(e domain.Energy) EnergyDTO {
	return EnergyDTO{
		ID:         e.ID,
		Name:       e.Name,
		Color:      e.Color,
		Quota:      e.Quota,
		FrontImage: e.FrontImage,
		BackImage:  e.BackImage,
		Picto:      e.Picto,
	}
}

func energiesToDTO(energies []domain.Energy) []EnergyDTO {
	out := make([]EnergyDTO, 0, len(energies))
	for _, e := range energies {
		out = append(out, energyToDTO(e))
	}
	return out
}

func situationToDTO(s domain.SituationCardWithEnergies) SituationWithEnergiesDTO {
	return SituationWithEnergiesDTO{
		Card: SituationCardDTO{
			ID:         s.Card.ID,
			EffectID:   s.Card.EffectID,
			BackImage:  s.Card.BackImage,
			FrontImage: s.Card.FrontImage,
		},
		Effect: EffectDTO{
			ID:          s.Effect.ID,
			Name:        s.Effect.Name,
			Description: s.Effect.Description,
			Type:        s.Effect.Type,
			Points:      s.Effect.Points,
			Slug:        s.Effect.Slug,
		},
		RequiredEnergies: energiesToDTO(s.RequiredEnergies),
		Quota:            s.Quota,
	}
}

func situationsToDTO(situations []domain.SituationCardWithEnergies) []SituationWithEnergiesDTO {
	out := make([]SituationWithEnergiesDTO, 0, len(situations))
	for _, s := range situations {
		out = append(out, situationToDTO(s))
	}
	return out
}

func playedToDTO(p *domain.PlayedSituationCard) *PlayedSituationDTO {
	if p == nil {
		return nil
	}
	return &PlayedSituationDTO{
		SituationCard:  situationToDTO(p.SituationCard),
		PlacedEnergies: energiesToDTO(p.PlacedEnergies),
		PlayedBy:       string(p.PlayedBy),
	}
}

func playerToDTO(p *domain.PlayerState) PlayerStateDTO {
	return PlayerStateDTO{
		UserID:               p.UserID,
		Username:             p.Username,
		HandSituationCards:   situationsToDTO(p.HandSituationCards),
		HandEnergyCards:      energiesToDTO(p.HandEnergyCards),
		Points:               p.Points,
		FirstToReceivePoints: p.FirstToReceivePoints,
		PrivateSituationCard: playedToDTO(p.PrivateSituation),
	}
}

// gameToDTO builds the full snapshot broadcast after every processed action.
func gameToDTO(g *domain.Game) *GameStateDTO {
	if g == nil {
		return nil
	}

	dto := &GameStateDTO{
		RoomID:              g.RoomID,
		Player1:             playerToDTO(g.Player1),
		Player2:             playerToDTO(g.Player2),
		CommonSituationCard: playedToDTO(g.CommonSituation),
		SituationDeck:       situationsToDTO(g.SituationDeck.Cards()),
		EnergyDeck:          energiesToDTO(g.EnergyDeck.Cards()),
		SituationDiscard:    situationsToDTO(g.SituationDeck.DiscardPile()),
		EnergyDiscard:       energiesToDTO(g.EnergyDeck.DiscardPile()),
		CurrentTurn:         g.CurrentTurn,
		MaxTurns:            g.MaxTurns,
		CurrentPlayer:       string(g.CurrentPlayer),
		Phase:               string(g.Phase),
		FirstPlayerToScore:  string(g.FirstPlayerToScore),
		CreatedAt:           g.CreatedAt,
	}
	if g.Completed != nil {
		dto.CompletedSituation = &CompletedSituationDTO{
			Type: string(g.Completed.Type),
			Card: situationToDTO(g.Completed.Card),
		}
	}
	if !g.StartedAt.IsZero() {
		started := g.StartedAt
		dto.StartedAt = &started
	}
	if !g.FinishedAt.IsZero() {
		finished := g.FinishedAt
		dto.FinishedAt = &finished
	}
	return dto
}

func eventsToDTO(events []app.Event) []GameEventDTO {
	out := make([]GameEventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, GameEventDTO{Type: string(ev.Kind), Data: ev.Payload})
	}
	return out
}

// errorCode maps engine errors to stable protocol codes.
func errorCode(err error) string {
	switch err {
	case domain.ErrNotYourTurn:
		return "not_your_turn"
	case domain.ErrWrongPhase:
		return "wrong_phase"
	case domain.ErrInvalidCardIndex:
		return "invalid_card_index"
	case domain.ErrSlotFull:
		return "slot_full"
	case domain.ErrNoTargetSituation:
		return "no_target_situation"
	case domain.ErrHandFull:
		return "hand_full"
	case domain.ErrEmptyDeckAndDiscard:
		return "empty_deck_and_discard"
	case domain.ErrEmptyDiscard:
		return "empty_discard"
	case domain.ErrInvalidReplacementTarget:
		return "invalid_replacement_target"
	case domain.ErrInvalidEffectTarget:
		return "invalid_effect_target"
	case domain.ErrUnknownAction:
		return "unknown_action"
	case domain.ErrUnknownPlayer:
		return "unknown_player"
	case domain.ErrMatchOver:
		return "match_over"
	default:
		return "internal"
	}
}
