package game

import (
	"errors"
	"math/rand"
	"time"
)

// PlayerInfo identifies a seated player when a round is dealt.
type PlayerInfo struct {
	ID   string
	Name string
}

func newRng() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewGame deals a fresh round for the given players: 12 face-down cards
// each, one face-up card on the discard pile, the rest as the draw pile.
// A nil rng falls back to a time-seeded source.
func NewGame(players []PlayerInfo, roundNumber int, rng *rand.Rand) (*GameState, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, errors.New("player count out of range")
	}
	hands, drawPile, err := Deal(NewDeck(), len(players), rng)
	if err != nil {
		return nil, err
	}
	s := &GameState{
		Players:              make([]Player, len(players)),
		DrawPile:             drawPile,
		CurrentPlayerIndex:   0,
		Phase:                PhaseInitialReveal,
		TurnPhase:            TurnDraw,
		FinishingPlayerIndex: -1,
		RoundNumber:          roundNumber,
	}
	for i, info := range players {
		hand := make([]*Card, HandSize)
		for j := range hands[i] {
			c := hands[i][j]
			hand[j] = &c
		}
		s.Players[i] = Player{ID: info.ID, Name: info.Name, Hand: hand}
	}
	// Flip the starting discard card.
	top := s.DrawPile[len(s.DrawPile)-1]
	s.DrawPile = s.DrawPile[:len(s.DrawPile)-1]
	top.Revealed = true
	s.DiscardPile = []Card{top}
	return s, nil
}

// RevealInitialCards flips a player's two opening cards. Once every
// player has revealed two, play begins with the player showing the
// highest face-up sum (ties go to the lowest index).
func RevealInitialCards(s *GameState, playerIndex int, cardIndices [2]int) (*GameState, error) {
	if s.Phase != PhaseInitialReveal {
		return nil, violationf("initial reveal is over")
	}
	if playerIndex < 0 || playerIndex >= len(s.Players) {
		return nil, violationf("player index out of range")
	}
	if cardIndices[0] == cardIndices[1] {
		return nil, violationf("must reveal two different cards")
	}
	p := &s.Players[playerIndex]
	if p.RevealedCount() >= InitialReveals {
		return nil, violationf("initial cards already revealed")
	}
	for _, idx := range cardIndices {
		if idx < 0 || idx >= HandSize {
			return nil, violationf("card index out of range")
		}
		if p.Hand[idx] == nil || p.Hand[idx].Revealed {
			return nil, violationf("card %d is not hidden", idx)
		}
	}

	n := s.clone()
	for _, idx := range cardIndices {
		n.Players[playerIndex].Hand[idx].Revealed = true
	}

	for i := range n.Players {
		if n.Players[i].RevealedCount() < InitialReveals {
			return n, nil
		}
	}
	// Everyone is ready: the worst visible total starts.
	n.Phase = PhasePlaying
	n.TurnPhase = TurnDraw
	best := 0
	for i := range n.Players {
		if n.Players[i].RevealedSum() > n.Players[best].RevealedSum() {
			best = i
		}
	}
	n.CurrentPlayerIndex = best
	return n, nil
}

// DrawFromPile pops the top of the draw pile into the player's hand as
// the drawn card. An empty draw pile is first rebuilt by reshuffling the
// discard pile minus its top card.
func DrawFromPile(s *GameState) (*GameState, error) {
	if err := requirePlayable(s, TurnDraw); err != nil {
		return nil, err
	}
	n := s.clone()
	if len(n.DrawPile) == 0 {
		if len(n.DiscardPile) <= 1 {
			return nil, violationf("no cards left to draw")
		}
		top := n.DiscardPile[len(n.DiscardPile)-1]
		n.DrawPile = Shuffle(n.DiscardPile[:len(n.DiscardPile)-1], newRng())
		n.DiscardPile = []Card{top}
	}
	drawn := n.DrawPile[len(n.DrawPile)-1]
	n.DrawPile = n.DrawPile[:len(n.DrawPile)-1]
	drawn.Revealed = true
	n.DrawnCard = &drawn
	n.TurnPhase = TurnReplaceOrDiscard
	return n, nil
}

// DrawFromDiscard takes the discard top. Taking a known card commits the
// player to playing it, so the turn moves to must_replace.
func DrawFromDiscard(s *GameState) (*GameState, error) {
	if err := requirePlayable(s, TurnDraw); err != nil {
		return nil, err
	}
	if len(s.DiscardPile) == 0 {
		return nil, violationf("discard pile is empty")
	}
	n := s.clone()
	drawn := n.DiscardPile[len(n.DiscardPile)-1]
	n.DiscardPile = n.DiscardPile[:len(n.DiscardPile)-1]
	n.DrawnCard = &drawn
	n.TurnPhase = TurnMustReplace
	return n, nil
}

// ReplaceCard swaps the drawn card into the given hand slot; the ousted
// card goes face-up onto the discard pile.
func ReplaceCard(s *GameState, cardIndex int) (*GameState, error) {
	if s.TurnPhase != TurnReplaceOrDiscard && s.TurnPhase != TurnMustReplace {
		return nil, violationf("no drawn card to place")
	}
	if cardIndex < 0 || cardIndex >= HandSize {
		return nil, violationf("card index out of range")
	}
	if s.CurrentPlayer().Hand[cardIndex] == nil {
		return nil, violationf("that column was cleared")
	}
	n := s.clone()
	p := n.CurrentPlayer()
	ousted := *p.Hand[cardIndex]
	ousted.Revealed = true
	n.DiscardPile = append(n.DiscardPile, ousted)
	placed := *n.DrawnCard
	p.Hand[cardIndex] = &placed
	n.DrawnCard = nil
	n.TurnPhase = TurnDraw
	return n, nil
}

// DiscardAndReveal throws away a card drawn from the pile and flips a
// hidden slot instead. Not available for a card taken from the discard.
func DiscardAndReveal(s *GameState, cardIndex int) (*GameState, error) {
	if s.TurnPhase != TurnReplaceOrDiscard {
		return nil, violationf("cannot discard that card")
	}
	if cardIndex < 0 || cardIndex >= HandSize {
		return nil, violationf("card index out of range")
	}
	slot := s.CurrentPlayer().Hand[cardIndex]
	if slot == nil || slot.Revealed {
		return nil, violationf("card %d is not hidden", cardIndex)
	}
	n := s.clone()
	n.DiscardPile = append(n.DiscardPile, *n.DrawnCard)
	n.DrawnCard = nil
	n.CurrentPlayer().Hand[cardIndex].Revealed = true
	n.TurnPhase = TurnDraw
	return n, nil
}

// DiscardDrawn throws away a card drawn from the pile without choosing a
// slot yet; the player must then reveal one hidden card before the turn
// ends. A player with nothing left to flip (fully cleared or fully
// revealed hand) completes the turn immediately.
func DiscardDrawn(s *GameState) (*GameState, error) {
	if s.TurnPhase != TurnReplaceOrDiscard {
		return nil, violationf("cannot discard that card")
	}
	n := s.clone()
	n.DiscardPile = append(n.DiscardPile, *n.DrawnCard)
	n.DrawnCard = nil
	if n.CurrentPlayer().HiddenCount() == 0 {
		n.TurnPhase = TurnDraw
	} else {
		n.TurnPhase = TurnMustReveal
	}
	return n, nil
}

// RevealHiddenCard flips one hidden slot, completing a discard-drawn turn.
func RevealHiddenCard(s *GameState, cardIndex int) (*GameState, error) {
	if s.TurnPhase != TurnMustReveal {
		return nil, violationf("no reveal is pending")
	}
	if cardIndex < 0 || cardIndex >= HandSize {
		return nil, violationf("card index out of range")
	}
	slot := s.CurrentPlayer().Hand[cardIndex]
	if slot == nil || slot.Revealed {
		return nil, violationf("card %d is not hidden", cardIndex)
	}
	n := s.clone()
	n.CurrentPlayer().Hand[cardIndex].Revealed = true
	n.TurnPhase = TurnDraw
	return n, nil
}

// UndoDrawDiscard puts a discard-taken card back on the discard pile, for
// a player changing their mind before committing a replacement.
func UndoDrawDiscard(s *GameState) (*GameState, error) {
	if s.TurnPhase != TurnMustReplace {
		return nil, violationf("nothing to undo")
	}
	n := s.clone()
	n.DiscardPile = append(n.DiscardPile, *n.DrawnCard)
	n.DrawnCard = nil
	n.TurnPhase = TurnDraw
	return n, nil
}

// ClearColumns removes every column whose three slots are face-up and
// value-equal, for all players. Cleared cards go to the discard pile so
// the deck stays fully accounted for. Idempotent.
func ClearColumns(s *GameState) *GameState {
	n := s.clone()
	for i := range n.Players {
		hand := n.Players[i].Hand
		for col := 0; col < HandColumns; col++ {
			base := col * HandRows
			a, b, c := hand[base], hand[base+1], hand[base+2]
			if a == nil || b == nil || c == nil {
				continue
			}
			if !a.Revealed || !b.Revealed || !c.Revealed {
				continue
			}
			if a.Value != b.Value || b.Value != c.Value {
				continue
			}
			n.DiscardPile = append(n.DiscardPile, *a, *b, *c)
			hand[base], hand[base+1], hand[base+2] = nil, nil, nil
		}
	}
	return n
}

// EndTurn closes out the acting player's turn: columns are cleared, a
// fully revealed hand triggers the final round, and play advances to the
// next seat. When the turn order comes back around to the finisher the
// round is over and every remaining card is flipped face-up.
func EndTurn(s *GameState) (*GameState, error) {
	if s.Phase != PhasePlaying && s.Phase != PhaseFinalRound {
		return nil, violationf("round is not in play")
	}
	if s.DrawnCard != nil {
		return nil, violationf("turn is not complete")
	}
	n := ClearColumns(s)
	actor := n.CurrentPlayerIndex
	if n.Phase == PhasePlaying && n.Players[actor].AllRevealed() {
		n.Phase = PhaseFinalRound
		n.FinishingPlayerIndex = actor
		n.Players[actor].HasFinished = true
	}
	next := (actor + 1) % len(n.Players)
	if n.Phase == PhaseFinalRound && next == n.FinishingPlayerIndex {
		n.Phase = PhaseFinished
		for i := range n.Players {
			for _, c := range n.Players[i].Hand {
				if c != nil {
					c.Revealed = true
				}
			}
		}
		return n, nil
	}
	n.CurrentPlayerIndex = next
	n.TurnPhase = TurnDraw
	return n, nil
}

func requirePlayable(s *GameState, tp TurnPhase) error {
	if s.Phase != PhasePlaying && s.Phase != PhaseFinalRound {
		return violationf("round is not in play")
	}
	if s.TurnPhase != tp {
		return violationf("not the moment to draw")
	}
	return nil
}
