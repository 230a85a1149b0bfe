package game

import "testing"

func TestHandScore(t *testing.T) {
	hand := handOf(-2, 0, 5, 12, 1, 1, 3, -1, 0, 4, 9, 2)
	if got := HandScore(hand); got != 34 {
		t.Fatalf("HandScore = %d, want 34", got)
	}

	hand[0], hand[1], hand[2] = nil, nil, nil // cleared column counts as zero
	if got := HandScore(hand); got != 31 {
		t.Fatalf("HandScore with cleared column = %d, want 31", got)
	}
}

// scoredState builds a finished round where every hand sums to the given
// value, with player 0 as finisher.
func scoredState(rawScores ...int) *GameState {
	s := &GameState{
		Phase:                PhaseFinished,
		FinishingPlayerIndex: 0,
	}
	for i, raw := range rawScores {
		hand := make([]*Card, HandSize)
		hand[0] = testCard(raw, true)
		for j := 1; j < HandSize; j++ {
			hand[j] = testCard(0, true)
		}
		s.Players = append(s.Players, Player{
			ID:          "p" + string(rune('0'+i)),
			Name:        "player",
			Hand:        hand,
			HasFinished: i == 0,
		})
	}
	return s
}

func TestFinisherPenalty(t *testing.T) {
	tests := []struct {
		name          string
		finisher      int
		bestOther     int
		wantFinal     int
		wantPenalized bool
	}{
		{"beaten finisher doubles", 14, 10, 28, true},
		{"tied finisher doubles", 10, 10, 20, true},
		{"winning finisher keeps score", 5, 10, 5, false},
		{"negative score never doubles", -3, 10, -3, false},
		{"zero never doubles even when beaten", 0, -2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := FinalScores(scoredState(tt.finisher, tt.bestOther))
			var finisher *ScoreRow
			for i := range rows {
				if rows[i].IsFinisher {
					finisher = &rows[i]
				}
			}
			if finisher == nil {
				t.Fatal("no finisher row")
			}
			if finisher.FinalScore != tt.wantFinal || finisher.Penalized != tt.wantPenalized {
				t.Fatalf("finisher = %+v, want final %d penalized %v",
					finisher, tt.wantFinal, tt.wantPenalized)
			}
		})
	}
}

func TestFinalScoresSortedAscendingStable(t *testing.T) {
	// Finisher (player 0) goes out at -4: no penalty, negative is never
	// doubled. Players 2 and 3 tie at 3 and must keep seat order.
	rows := FinalScores(scoredState(-4, 20, 3, 3))
	for i := 1; i < len(rows); i++ {
		if rows[i-1].FinalScore > rows[i].FinalScore {
			t.Fatalf("rows not ascending at %d: %d > %d", i, rows[i-1].FinalScore, rows[i].FinalScore)
		}
	}
	if rows[0].RawScore != -4 || !rows[0].IsFinisher || rows[0].Penalized {
		t.Fatalf("round winner = %+v, want unpenalized finisher at -4", rows[0])
	}
	var tied []string
	for _, r := range rows {
		if r.FinalScore == 3 {
			tied = append(tied, r.PlayerID)
		}
	}
	if len(tied) != 2 || tied[0] != "p2" || tied[1] != "p3" {
		t.Fatalf("tie order = %v, want [p2 p3]", tied)
	}
}
