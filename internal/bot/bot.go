// Package bot implements the built-in Skyjo opponent. It never touches
// game state directly: it looks at a committed state and names the next
// action to feed through the coordinator, exactly like a human client.
package bot

import (
	"math/rand"
	"time"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/config"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/game"
)

// Kind is the action a bot wants to take next.
type Kind string

const (
	RevealInitial    Kind = "reveal_initial"
	DrawPile         Kind = "draw_pile"
	DrawDiscard      Kind = "draw_discard"
	Replace          Kind = "replace_card"
	DiscardAndReveal Kind = "discard_and_reveal"
	DiscardDrawn     Kind = "discard_drawn"
	RevealHidden     Kind = "reveal_hidden"
)

// Step is one bot decision. CardIndex is set for slot-targeting kinds,
// CardIndices for the initial reveal.
type Step struct {
	Kind        Kind
	CardIndex   int
	CardIndices [2]int
}

// NextStep picks the bot's next action for the given seat, or reports
// false when the seat has nothing to do in the current state.
func NextStep(s *game.GameState, playerIndex int, w config.BotWeights, rng *rand.Rand) (Step, bool) {
	if playerIndex < 0 || playerIndex >= len(s.Players) {
		return Step{}, false
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	p := &s.Players[playerIndex]

	if s.Phase == game.PhaseInitialReveal {
		if p.RevealedCount() >= game.InitialReveals {
			return Step{}, false
		}
		hidden := hiddenIndices(p)
		i := rng.Intn(len(hidden))
		j := rng.Intn(len(hidden) - 1)
		if j >= i {
			j++
		}
		return Step{Kind: RevealInitial, CardIndices: [2]int{hidden[i], hidden[j]}}, true
	}

	if s.Phase != game.PhasePlaying && s.Phase != game.PhaseFinalRound {
		return Step{}, false
	}
	if s.CurrentPlayerIndex != playerIndex {
		return Step{}, false
	}

	switch s.TurnPhase {
	case game.TurnDraw:
		if len(s.DiscardPile) > 0 && worstSlot(p) >= 0 {
			top := s.DiscardPile[len(s.DiscardPile)-1]
			if top.Value <= w.TakeDiscardMax || completesColumn(p, top.Value) >= 0 {
				return Step{Kind: DrawDiscard}, true
			}
		}
		return Step{Kind: DrawPile}, true

	case game.TurnReplaceOrDiscard:
		if idx, ok := placeTarget(p, s.DrawnCard.Value, w); ok {
			return Step{Kind: Replace, CardIndex: idx}, true
		}
		if hidden := hiddenIndices(p); len(hidden) > 0 {
			return Step{Kind: DiscardAndReveal, CardIndex: hidden[rng.Intn(len(hidden))]}, true
		}
		return Step{Kind: DiscardDrawn}, true

	case game.TurnMustReplace:
		if idx, ok := placeTarget(p, s.DrawnCard.Value, w); ok {
			return Step{Kind: Replace, CardIndex: idx}, true
		}
		// Nothing attractive: dump the card onto the worst slot.
		if idx := worstSlot(p); idx >= 0 {
			return Step{Kind: Replace, CardIndex: idx}, true
		}
		return Step{}, false

	case game.TurnMustReveal:
		hidden := hiddenIndices(p)
		if len(hidden) == 0 {
			return Step{}, false
		}
		return Step{Kind: RevealHidden, CardIndex: hidden[rng.Intn(len(hidden))]}, true
	}
	return Step{}, false
}

// placeTarget finds the slot the drawn card should land on, if any:
// first a column it completes, then the worst revealed card it improves
// by the configured margin, then a hidden slot when the card is worth
// keeping.
func placeTarget(p *game.Player, value int, w config.BotWeights) (int, bool) {
	if idx := completesColumn(p, value); idx >= 0 {
		return idx, true
	}
	if idx := worstRevealed(p); idx >= 0 && p.Hand[idx].Value-value >= w.ReplaceMargin {
		return idx, true
	}
	if value <= w.KeepMax {
		if hidden := hiddenIndices(p); len(hidden) > 0 {
			return hidden[0], true
		}
	}
	return -1, false
}

// completesColumn returns the index of a slot whose replacement with a
// card of the given value would clear its column, or -1.
func completesColumn(p *game.Player, value int) int {
	for col := 0; col < game.HandColumns; col++ {
		base := col * game.HandRows
		matches := 0
		target := -1
		for row := 0; row < game.HandRows; row++ {
			c := p.Hand[base+row]
			if c == nil {
				target = -2 // cleared column, never a target
				break
			}
			if c.Revealed && c.Value == value {
				matches++
			} else {
				target = base + row
			}
		}
		if matches == game.HandRows-1 && target >= 0 {
			return target
		}
	}
	return -1
}

func worstRevealed(p *game.Player) int {
	idx := -1
	for i, c := range p.Hand {
		if c == nil || !c.Revealed {
			continue
		}
		if idx == -1 || c.Value > p.Hand[idx].Value {
			idx = i
		}
	}
	return idx
}

func worstSlot(p *game.Player) int {
	if idx := worstRevealed(p); idx >= 0 {
		return idx
	}
	for i, c := range p.Hand {
		if c != nil {
			return i
		}
	}
	return -1
}

func hiddenIndices(p *game.Player) []int {
	var out []int
	for i, c := range p.Hand {
		if c != nil && !c.Revealed {
			out = append(out, i)
		}
	}
	return out
}
