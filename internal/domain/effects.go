package domain

// EffectFunc applies one catalog effect to the game. source is the seat that
// completed the situation, target the seat chosen to receive the consequence.
type EffectFunc func(effect Effect, source, target Role, g *Game)

// EffectRegistry dispatches effect application by catalog type, with
// per-slug overrides for "special" effects.
type EffectRegistry struct {
	bySlug map[string]EffectFunc
}

// NewEffectRegistry returns a registry with the built-in point semantics and
// no special overrides.
func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{bySlug: make(map[string]EffectFunc)}
}

// RegisterSlug installs a handler for special effects carrying the given slug.
func (r *EffectRegistry) RegisterSlug(slug string, fn EffectFunc) {
	r.bySlug[slug] = fn
}

// Apply runs the effect against the chosen target. points and bonus credit
// the effect's points, malus debits them; special effects dispatch on slug
// and fall back to the points behavior when no handler is registered.
func (r *EffectRegistry) Apply(effect Effect, source, target Role, g *Game) {
	if effect.Type == EffectTypeSpecial {
		if fn, ok := r.bySlug[effect.Slug]; ok {
			fn(effect, source, target, g)
			return
		}
	}

	delta := effect.Points
	if effect.Type == EffectTypeMalus {
		delta = -delta
	}
	creditPoints(g, target, delta)
}

// creditPoints mutates the target's point total and records the match's first
// scoring event, which drives the tie-break at the end of the match.
func creditPoints(g *Game, target Role, delta int) {
	if delta == 0 {
		return
	}
	player := g.Player(target)
	player.AddPoints(delta)
	if g.FirstPlayerToScore == RoleNone {
		g.FirstPlayerToScore = target
		player.FirstToReceivePoints = true
	}
}
