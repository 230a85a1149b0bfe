package game

const (
	// HandSize is the number of slots in a player's 3x4 grid.
	HandSize = 12
	// HandColumns is the number of columns in the grid; a slot at
	// (column, row) lives at index column*HandRows + row.
	HandColumns = 4
	// HandRows is the number of rows in the grid.
	HandRows = 3
	// InitialReveals is how many cards each player flips before play.
	InitialReveals = 2
	// MinPlayers and MaxPlayers bound the seat count of a round.
	MinPlayers = 2
	MaxPlayers = 8
)

// Phase is the lifecycle stage of a round. It only ever moves forward.
type Phase string

const (
	PhaseInitialReveal Phase = "initial_reveal"
	PhasePlaying       Phase = "playing"
	PhaseFinalRound    Phase = "final_round"
	PhaseFinished      Phase = "finished"
)

// TurnPhase is the sub-state within a single player's turn.
type TurnPhase string

const (
	TurnDraw             TurnPhase = "draw"
	TurnReplaceOrDiscard TurnPhase = "replace_or_discard"
	TurnMustReplace      TurnPhase = "must_replace"
	TurnMustReveal       TurnPhase = "must_reveal"
)

// Player holds one player's cards for the current round. A nil hand slot
// marks a cleared column; once nil, a slot stays nil for the round.
type Player struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Hand        []*Card `json:"hand"`
	HasFinished bool    `json:"hasFinished"`
}

// RevealedSum is the raw sum of this player's face-up cards.
func (p *Player) RevealedSum() int {
	sum := 0
	for _, c := range p.Hand {
		if c != nil && c.Revealed {
			sum += c.Value
		}
	}
	return sum
}

// RevealedCount returns the number of face-up cards in the hand.
func (p *Player) RevealedCount() int {
	n := 0
	for _, c := range p.Hand {
		if c != nil && c.Revealed {
			n++
		}
	}
	return n
}

// HiddenCount returns the number of face-down cards in the hand.
func (p *Player) HiddenCount() int {
	n := 0
	for _, c := range p.Hand {
		if c != nil && !c.Revealed {
			n++
		}
	}
	return n
}

// AllRevealed reports whether every remaining slot is face-up.
func (p *Player) AllRevealed() bool {
	return p.HiddenCount() == 0
}

// GameState is one round of Skyjo. Transition functions never mutate a
// state in place; they deep-copy and return the successor, so a stored
// state can be read concurrently without locking.
//
// The top of both piles is the last element of the slice.
type GameState struct {
	Players              []Player  `json:"players"`
	DrawPile             []Card    `json:"drawPile"`
	DiscardPile          []Card    `json:"discardPile"`
	CurrentPlayerIndex   int       `json:"currentPlayerIndex"`
	Phase                Phase     `json:"phase"`
	TurnPhase            TurnPhase `json:"turnPhase"`
	DrawnCard            *Card     `json:"drawnCard,omitempty"`
	FinishingPlayerIndex int       `json:"finishingPlayerIndex"`
	RoundNumber          int       `json:"roundNumber"`
}

// CurrentPlayer returns the player whose turn it is.
func (s *GameState) CurrentPlayer() *Player {
	return &s.Players[s.CurrentPlayerIndex]
}

// CardCount totals every card tracked by the state: piles, non-nil hand
// slots and the card in flight. Always DeckSize for a reachable state.
func (s *GameState) CardCount() int {
	n := len(s.DrawPile) + len(s.DiscardPile)
	for i := range s.Players {
		for _, c := range s.Players[i].Hand {
			if c != nil {
				n++
			}
		}
	}
	if s.DrawnCard != nil {
		n++
	}
	return n
}

// clone deep-copies the state so a transition can build its successor
// without touching the input.
func (s *GameState) clone() *GameState {
	n := &GameState{
		Players:              make([]Player, len(s.Players)),
		DrawPile:             append([]Card(nil), s.DrawPile...),
		DiscardPile:          append([]Card(nil), s.DiscardPile...),
		CurrentPlayerIndex:   s.CurrentPlayerIndex,
		Phase:                s.Phase,
		TurnPhase:            s.TurnPhase,
		FinishingPlayerIndex: s.FinishingPlayerIndex,
		RoundNumber:          s.RoundNumber,
	}
	for i, p := range s.Players {
		hand := make([]*Card, len(p.Hand))
		for j, c := range p.Hand {
			if c != nil {
				cc := *c
				hand[j] = &cc
			}
		}
		n.Players[i] = Player{ID: p.ID, Name: p.Name, Hand: hand, HasFinished: p.HasFinished}
	}
	if s.DrawnCard != nil {
		dc := *s.DrawnCard
		n.DrawnCard = &dc
	}
	return n
}
