package domain

import "math/rand"

// Deck owns a draw pile and a discard pile for one kind of card.
// When recycling is enabled, drawing from an empty pile reshuffles the
// discard into a fresh draw pile before failing.
type Deck[C any] struct {
	cards   []C
	discard []C
	recycle bool
	rng     *rand.Rand
}

// NewDeck builds a deck from the given cards. The discard pile starts empty.
func NewDeck[C any](cards []C, recycle bool, rng *rand.Rand) *Deck[C] {
	return &Deck[C]{
		cards:   append([]C(nil), cards...),
		recycle: recycle,
		rng:     rng,
	}
}

// Shuffle randomizes the draw pile in place.
func (d *Deck[C]) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card of the draw pile.
// Fails with ErrEmptyDeckAndDiscard when both piles are exhausted.
func (d *Deck[C]) Draw() (C, error) {
	if len(d.cards) == 0 && d.recycle && len(d.discard) > 0 {
		d.cards = d.discard
		d.discard = nil
		d.Shuffle()
	}
	if len(d.cards) == 0 {
		var zero C
		return zero, ErrEmptyDeckAndDiscard
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// DrawFromDiscard removes and returns the most recently discarded card.
func (d *Deck[C]) DrawFromDiscard() (C, error) {
	if len(d.discard) == 0 {
		var zero C
		return zero, ErrEmptyDiscard
	}
	top := d.discard[len(d.discard)-1]
	d.discard = d.discard[:len(d.discard)-1]
	return top, nil
}

// Discard places a card on top of the discard pile.
func (d *Deck[C]) Discard(c C) {
	d.discard = append(d.discard, c)
}

// Len returns the number of cards left in the draw pile.
func (d *Deck[C]) Len() int { return len(d.cards) }

// DiscardLen returns the number of cards in the discard pile.
func (d *Deck[C]) DiscardLen() int { return len(d.discard) }

// Cards returns a copy of the draw pile, top card last.
func (d *Deck[C]) Cards() []C { return append([]C(nil), d.cards...) }

// DiscardPile returns a copy of the discard pile, top card last.
func (d *Deck[C]) DiscardPile() []C { return append([]C(nil), d.discard...) }
