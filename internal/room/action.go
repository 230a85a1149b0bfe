package room

import "github.com/Nyaru01/Skyjo-V2-sub000/internal/game"

// ActionType enumerates every game action a client can send. Dispatch is
// an exhaustive switch in the Manager, so a new action that lacks a
// handler fails loudly instead of silently falling through a string map.
type ActionType string

const (
	ActionRevealInitial    ActionType = "reveal_initial"
	ActionDrawPile         ActionType = "draw_pile"
	ActionDrawDiscard      ActionType = "draw_discard"
	ActionReplaceCard      ActionType = "replace_card"
	ActionDiscardAndReveal ActionType = "discard_and_reveal"
	ActionDiscardDrawn     ActionType = "discard_drawn"
	ActionRevealHidden     ActionType = "reveal_hidden"
	ActionUndoDrawDiscard  ActionType = "undo_draw_discard"
)

// Action is one game action as received from a client.
type Action struct {
	Type        ActionType `json:"type"`
	CardIndex   int        `json:"cardIndex"`
	CardIndices []int      `json:"cardIndices"`
}

// LastAction describes what just happened, for client-side animation:
// who acted, the action kind, the slot involved and any card that moved
// to the discard pile.
type LastAction struct {
	Type      ActionType `json:"type"`
	PlayerID  string     `json:"playerId"`
	CardIndex int        `json:"cardIndex,omitempty"`
	Card      *game.Card `json:"card,omitempty"`
}
