package game

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
)

func testCard(value int, revealed bool) *Card {
	return &Card{ID: uuid.NewString(), Value: value, Color: ColorFor(value), Revealed: revealed}
}

// handOf builds a 12-slot hand from values; all cards start hidden.
func handOf(values ...int) []*Card {
	if len(values) != HandSize {
		panic("handOf needs 12 values")
	}
	hand := make([]*Card, HandSize)
	for i, v := range values {
		hand[i] = testCard(v, false)
	}
	return hand
}

func testPlayers(n int) []PlayerInfo {
	infos := make([]PlayerInfo, n)
	for i := range infos {
		infos[i] = PlayerInfo{ID: uuid.NewString(), Name: "p" + string(rune('0'+i))}
	}
	return infos
}

func mustReveal(t *testing.T, s *GameState, player int, idx [2]int) *GameState {
	t.Helper()
	n, err := RevealInitialCards(s, player, idx)
	if err != nil {
		t.Fatalf("RevealInitialCards(%d, %v) failed: %v", player, idx, err)
	}
	return n
}

func TestNewGameSetup(t *testing.T) {
	s, err := NewGame(testPlayers(3), 1, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if s.Phase != PhaseInitialReveal || s.TurnPhase != TurnDraw {
		t.Fatalf("phase = %s/%s, want %s/%s", s.Phase, s.TurnPhase, PhaseInitialReveal, TurnDraw)
	}
	if len(s.DiscardPile) != 1 || !s.DiscardPile[0].Revealed {
		t.Fatalf("discard pile should hold one face-up card, got %+v", s.DiscardPile)
	}
	if s.FinishingPlayerIndex != -1 {
		t.Fatalf("finishing index = %d, want -1", s.FinishingPlayerIndex)
	}
	if got := s.CardCount(); got != DeckSize {
		t.Fatalf("card count = %d, want %d", got, DeckSize)
	}
}

func TestNewGamePlayerCountBounds(t *testing.T) {
	if _, err := NewGame(testPlayers(1), 1, nil); err == nil {
		t.Fatal("accepted a 1-player round")
	}
	if _, err := NewGame(testPlayers(9), 1, nil); err == nil {
		t.Fatal("accepted a 9-player round")
	}
}

func TestInitialRevealStartsPlay(t *testing.T) {
	s, err := NewGame(testPlayers(2), 1, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	s = mustReveal(t, s, 0, [2]int{0, 1})
	if s.Phase != PhaseInitialReveal {
		t.Fatalf("phase advanced to %s before every player revealed", s.Phase)
	}
	s = mustReveal(t, s, 1, [2]int{4, 5})
	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want %s", s.Phase, PhasePlaying)
	}

	// Highest revealed sum starts; tie goes to the lowest index.
	want := 0
	if s.Players[1].RevealedSum() > s.Players[0].RevealedSum() {
		want = 1
	}
	if s.CurrentPlayerIndex != want {
		t.Fatalf("starting player = %d, want %d (sums %d vs %d)",
			s.CurrentPlayerIndex, want, s.Players[0].RevealedSum(), s.Players[1].RevealedSum())
	}
}

func TestInitialRevealRejections(t *testing.T) {
	s, err := NewGame(testPlayers(2), 1, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	tests := []struct {
		name    string
		player  int
		indices [2]int
	}{
		{"same index twice", 0, [2]int{3, 3}},
		{"index out of range", 0, [2]int{0, HandSize}},
		{"negative index", 0, [2]int{-1, 2}},
		{"player out of range", 5, [2]int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RevealInitialCards(s, tt.player, tt.indices); !IsRuleViolation(err) {
				t.Fatalf("err = %v, want rule violation", err)
			}
		})
	}

	s = mustReveal(t, s, 0, [2]int{0, 1})
	if _, err := RevealInitialCards(s, 0, [2]int{2, 3}); !IsRuleViolation(err) {
		t.Fatalf("second reveal for the same player: err = %v, want rule violation", err)
	}
}

func TestDrawFromPile(t *testing.T) {
	s := playingState(t, 2)
	before := len(s.DrawPile)

	n, err := DrawFromPile(s)
	if err != nil {
		t.Fatalf("DrawFromPile failed: %v", err)
	}
	if n.DrawnCard == nil || !n.DrawnCard.Revealed {
		t.Fatalf("drawn card = %+v, want a revealed card", n.DrawnCard)
	}
	if len(n.DrawPile) != before-1 {
		t.Fatalf("draw pile = %d, want %d", len(n.DrawPile), before-1)
	}
	if n.TurnPhase != TurnReplaceOrDiscard {
		t.Fatalf("turn phase = %s, want %s", n.TurnPhase, TurnReplaceOrDiscard)
	}
	// The input state must be untouched.
	if s.DrawnCard != nil || len(s.DrawPile) != before || s.TurnPhase != TurnDraw {
		t.Fatal("DrawFromPile mutated its input")
	}
}

func TestDrawFromEmptyPileReshufflesDiscard(t *testing.T) {
	s := playingState(t, 2)
	// Empty the draw pile into the discard pile, keeping a recognizable top.
	s.DiscardPile = append(s.DiscardPile, s.DrawPile...)
	s.DrawPile = nil
	for i := range s.DiscardPile {
		s.DiscardPile[i].Revealed = true
	}
	top := s.DiscardPile[len(s.DiscardPile)-1]
	restSize := len(s.DiscardPile) - 1

	n, err := DrawFromPile(s)
	if err != nil {
		t.Fatalf("DrawFromPile failed: %v", err)
	}
	if len(n.DiscardPile) != 1 || n.DiscardPile[0].ID != top.ID {
		t.Fatalf("discard pile = %d cards with top %s, want just %s",
			len(n.DiscardPile), n.DiscardPile[len(n.DiscardPile)-1].ID, top.ID)
	}
	if len(n.DrawPile) != restSize-1 {
		t.Fatalf("draw pile = %d, want %d", len(n.DrawPile), restSize-1)
	}
	if n.DrawnCard == nil || n.DrawnCard.ID == top.ID {
		t.Fatalf("drawn card %+v should come from the reshuffled rest", n.DrawnCard)
	}
	if got := n.CardCount(); got != DeckSize {
		t.Fatalf("card count = %d, want %d", got, DeckSize)
	}
}

func TestDrawFromDiscardForcesReplace(t *testing.T) {
	s := playingState(t, 2)
	top := s.DiscardPile[len(s.DiscardPile)-1]

	n, err := DrawFromDiscard(s)
	if err != nil {
		t.Fatalf("DrawFromDiscard failed: %v", err)
	}
	if n.DrawnCard == nil || n.DrawnCard.ID != top.ID {
		t.Fatalf("drawn card %+v, want discard top %s", n.DrawnCard, top.ID)
	}
	if n.TurnPhase != TurnMustReplace {
		t.Fatalf("turn phase = %s, want %s", n.TurnPhase, TurnMustReplace)
	}

	// Discarding the taken card right back is only legal via undo.
	if _, err := DiscardDrawn(n); !IsRuleViolation(err) {
		t.Fatalf("DiscardDrawn after discard take: err = %v, want rule violation", err)
	}
	u, err := UndoDrawDiscard(n)
	if err != nil {
		t.Fatalf("UndoDrawDiscard failed: %v", err)
	}
	if u.TurnPhase != TurnDraw || u.DrawnCard != nil {
		t.Fatalf("undo left phase %s / drawn %+v", u.TurnPhase, u.DrawnCard)
	}
	if got := u.DiscardPile[len(u.DiscardPile)-1].ID; got != top.ID {
		t.Fatalf("discard top after undo = %s, want %s", got, top.ID)
	}
}

func TestDrawFromEmptyDiscard(t *testing.T) {
	s := playingState(t, 2)
	s.DiscardPile = nil
	if _, err := DrawFromDiscard(s); !IsRuleViolation(err) {
		t.Fatalf("err = %v, want rule violation", err)
	}
}

func TestReplaceCard(t *testing.T) {
	s := playingState(t, 2)
	s, err := DrawFromPile(s)
	if err != nil {
		t.Fatalf("DrawFromPile failed: %v", err)
	}
	drawn := *s.DrawnCard
	ousted := *s.CurrentPlayer().Hand[5]

	n, err := ReplaceCard(s, 5)
	if err != nil {
		t.Fatalf("ReplaceCard failed: %v", err)
	}
	slot := n.CurrentPlayer().Hand[5]
	if slot.ID != drawn.ID || !slot.Revealed {
		t.Fatalf("slot 5 = %+v, want revealed %s", slot, drawn.ID)
	}
	top := n.DiscardPile[len(n.DiscardPile)-1]
	if top.ID != ousted.ID || !top.Revealed {
		t.Fatalf("discard top = %+v, want revealed %s", top, ousted.ID)
	}
	if n.DrawnCard != nil || n.TurnPhase != TurnDraw {
		t.Fatalf("after replace: drawn %+v phase %s", n.DrawnCard, n.TurnPhase)
	}
	if got := n.CardCount(); got != DeckSize {
		t.Fatalf("card count = %d, want %d", got, DeckSize)
	}
}

func TestDiscardAndReveal(t *testing.T) {
	s := playingState(t, 2)
	s, err := DrawFromPile(s)
	if err != nil {
		t.Fatalf("DrawFromPile failed: %v", err)
	}
	drawn := *s.DrawnCard

	// Target must be hidden.
	revealedIdx := -1
	hiddenIdx := -1
	for i, c := range s.CurrentPlayer().Hand {
		if c == nil {
			continue
		}
		if c.Revealed && revealedIdx == -1 {
			revealedIdx = i
		}
		if !c.Revealed && hiddenIdx == -1 {
			hiddenIdx = i
		}
	}
	if revealedIdx != -1 {
		if _, err := DiscardAndReveal(s, revealedIdx); !IsRuleViolation(err) {
			t.Fatalf("reveal of face-up card: err = %v, want rule violation", err)
		}
	}

	n, err := DiscardAndReveal(s, hiddenIdx)
	if err != nil {
		t.Fatalf("DiscardAndReveal failed: %v", err)
	}
	if top := n.DiscardPile[len(n.DiscardPile)-1]; top.ID != drawn.ID {
		t.Fatalf("discard top = %s, want drawn %s", top.ID, drawn.ID)
	}
	if !n.CurrentPlayer().Hand[hiddenIdx].Revealed {
		t.Fatalf("slot %d still hidden", hiddenIdx)
	}
	if n.TurnPhase != TurnDraw || n.DrawnCard != nil {
		t.Fatalf("after discard: drawn %+v phase %s", n.DrawnCard, n.TurnPhase)
	}
}

func TestDiscardDrawnThenRevealHidden(t *testing.T) {
	s := playingState(t, 2)
	s, err := DrawFromPile(s)
	if err != nil {
		t.Fatalf("DrawFromPile failed: %v", err)
	}

	n, err := DiscardDrawn(s)
	if err != nil {
		t.Fatalf("DiscardDrawn failed: %v", err)
	}
	if n.TurnPhase != TurnMustReveal {
		t.Fatalf("turn phase = %s, want %s", n.TurnPhase, TurnMustReveal)
	}
	// Drawing again while a reveal is pending is illegal.
	if _, err := DrawFromPile(n); !IsRuleViolation(err) {
		t.Fatalf("draw during pending reveal: err = %v, want rule violation", err)
	}

	hiddenIdx := -1
	for i, c := range n.CurrentPlayer().Hand {
		if c != nil && !c.Revealed {
			hiddenIdx = i
			break
		}
	}
	r, err := RevealHiddenCard(n, hiddenIdx)
	if err != nil {
		t.Fatalf("RevealHiddenCard failed: %v", err)
	}
	if !r.CurrentPlayer().Hand[hiddenIdx].Revealed || r.TurnPhase != TurnDraw {
		t.Fatalf("after reveal: slot revealed=%v phase=%s",
			r.CurrentPlayer().Hand[hiddenIdx].Revealed, r.TurnPhase)
	}
}

func TestClearColumns(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(hand []*Card)
		wantClear bool
	}{
		{
			name: "three equal revealed",
			mutate: func(hand []*Card) {
				for i := 0; i < HandRows; i++ {
					hand[i] = testCard(7, true)
				}
			},
			wantClear: true,
		},
		{
			name: "one still hidden",
			mutate: func(hand []*Card) {
				hand[0] = testCard(7, true)
				hand[1] = testCard(7, true)
				hand[2] = testCard(7, false)
			},
			wantClear: false,
		},
		{
			name: "values differ",
			mutate: func(hand []*Card) {
				hand[0] = testCard(7, true)
				hand[1] = testCard(7, true)
				hand[2] = testCard(8, true)
			},
			wantClear: false,
		},
		{
			name: "slot already cleared",
			mutate: func(hand []*Card) {
				hand[0] = nil
				hand[1] = testCard(7, true)
				hand[2] = testCard(7, true)
			},
			wantClear: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := playingState(t, 2)
			tt.mutate(s.Players[0].Hand)
			discardBefore := len(s.DiscardPile)

			n := ClearColumns(s)
			cleared := n.Players[0].Hand[0] == nil && n.Players[0].Hand[1] == nil && n.Players[0].Hand[2] == nil
			if cleared != tt.wantClear {
				t.Fatalf("cleared = %v, want %v", cleared, tt.wantClear)
			}
			if tt.wantClear {
				if len(n.DiscardPile) != discardBefore+HandRows {
					t.Fatalf("discard pile = %d, want %d", len(n.DiscardPile), discardBefore+HandRows)
				}
			}
		})
	}
}

func TestEndTurnFinisherAndFinalRound(t *testing.T) {
	s := playingState(t, 3)
	s.CurrentPlayerIndex = 0
	for _, c := range s.Players[0].Hand {
		c.Revealed = true
	}

	n, err := EndTurn(s)
	if err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}
	if n.Phase != PhaseFinalRound || n.FinishingPlayerIndex != 0 {
		t.Fatalf("phase = %s finishing = %d, want %s / 0", n.Phase, n.FinishingPlayerIndex, PhaseFinalRound)
	}
	if !n.Players[0].HasFinished {
		t.Fatal("finisher flag not set")
	}
	if n.CurrentPlayerIndex != 1 {
		t.Fatalf("current player = %d, want 1", n.CurrentPlayerIndex)
	}

	// Players 1 and 2 take their last turns; the round closes when the
	// order returns to the finisher.
	n, err = EndTurn(n)
	if err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}
	if n.Phase != PhaseFinalRound || n.CurrentPlayerIndex != 2 {
		t.Fatalf("phase = %s current = %d, want %s / 2", n.Phase, n.CurrentPlayerIndex, PhaseFinalRound)
	}
	n, err = EndTurn(n)
	if err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}
	if n.Phase != PhaseFinished {
		t.Fatalf("phase = %s, want %s", n.Phase, PhaseFinished)
	}
	for i := range n.Players {
		for j, c := range n.Players[i].Hand {
			if c != nil && !c.Revealed {
				t.Fatalf("player %d slot %d still hidden after the round ended", i, j)
			}
		}
	}
}

func TestEndTurnRejectsPendingDrawnCard(t *testing.T) {
	s := playingState(t, 2)
	s, err := DrawFromPile(s)
	if err != nil {
		t.Fatalf("DrawFromPile failed: %v", err)
	}
	if _, err := EndTurn(s); !IsRuleViolation(err) {
		t.Fatalf("err = %v, want rule violation", err)
	}
}

// TestFullRoundConservation plays scripted rounds to completion and
// checks the 150-card invariant and phase monotonicity on every state.
func TestFullRoundConservation(t *testing.T) {
	order := map[Phase]int{PhaseInitialReveal: 0, PhasePlaying: 1, PhaseFinalRound: 2, PhaseFinished: 3}

	s, err := NewGame(testPlayers(3), 1, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	check := func(prev, next *GameState) {
		t.Helper()
		if got := next.CardCount(); got != DeckSize {
			t.Fatalf("card count = %d, want %d (phase %s)", got, DeckSize, next.Phase)
		}
		if order[next.Phase] < order[prev.Phase] {
			t.Fatalf("phase went backward: %s -> %s", prev.Phase, next.Phase)
		}
	}

	for i := range s.Players {
		n := mustReveal(t, s, i, [2]int{0, 3})
		check(s, n)
		s = n
	}

	for steps := 0; s.Phase != PhaseFinished; steps++ {
		if steps > 500 {
			t.Fatal("round did not finish within 500 turns")
		}
		n, err := DrawFromPile(s)
		if err != nil {
			t.Fatalf("DrawFromPile failed on step %d: %v", steps, err)
		}
		check(s, n)
		s = n

		// Replace the first hidden slot, or any remaining slot.
		idx := -1
		for i, c := range s.CurrentPlayer().Hand {
			if c != nil && !c.Revealed {
				idx = i
				break
			}
		}
		if idx == -1 {
			for i, c := range s.CurrentPlayer().Hand {
				if c != nil {
					idx = i
					break
				}
			}
		}
		n, err = ReplaceCard(s, idx)
		if err != nil {
			t.Fatalf("ReplaceCard(%d) failed on step %d: %v", idx, steps, err)
		}
		check(s, n)
		s = n

		n, err = EndTurn(s)
		if err != nil {
			t.Fatalf("EndTurn failed on step %d: %v", steps, err)
		}
		check(s, n)
		s = n
	}

	rows := FinalScores(s)
	if len(rows) != 3 {
		t.Fatalf("score rows = %d, want 3", len(rows))
	}
	finishers := 0
	for i, r := range rows {
		if r.IsFinisher {
			finishers++
		}
		if i > 0 && rows[i-1].FinalScore > r.FinalScore {
			t.Fatalf("scores not ascending: %d before %d", rows[i-1].FinalScore, r.FinalScore)
		}
	}
	if finishers != 1 {
		t.Fatalf("finishers = %d, want exactly 1", finishers)
	}
}

// playingState deals a deterministic round and walks it into the playing
// phase with two cards revealed per player.
func playingState(t *testing.T, players int) *GameState {
	t.Helper()
	s, err := NewGame(testPlayers(players), 1, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	for i := 0; i < players; i++ {
		s = mustReveal(t, s, i, [2]int{0, 1})
	}
	if s.Phase != PhasePlaying {
		t.Fatalf("setup: phase = %s, want %s", s.Phase, PhasePlaying)
	}
	return s
}
