package game

import "sort"

// ScoreRow is one player's result for a finished round.
type ScoreRow struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	RawScore   int    `json:"rawScore"`
	FinalScore int    `json:"finalScore"`
	IsFinisher bool   `json:"isFinisher"`
	Penalized  bool   `json:"penalized"`
}

// HandScore sums the values of the remaining slots, face-up or not.
// Cleared columns count as zero.
func HandScore(hand []*Card) int {
	sum := 0
	for _, c := range hand {
		if c != nil {
			sum += c.Value
		}
	}
	return sum
}

// FinalScores ranks a finished round, lowest final score first (stable
// for ties). The finisher's score is doubled when it is positive and not
// strictly below every other player's raw score; going out is only
// rewarded when it actually wins the round.
func FinalScores(s *GameState) []ScoreRow {
	rows := make([]ScoreRow, len(s.Players))
	for i := range s.Players {
		p := &s.Players[i]
		raw := HandScore(p.Hand)
		rows[i] = ScoreRow{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			RawScore:   raw,
			FinalScore: raw,
			IsFinisher: i == s.FinishingPlayerIndex,
		}
	}
	if f := s.FinishingPlayerIndex; f >= 0 && len(rows) > 1 {
		bestOther := 0
		first := true
		for i, r := range rows {
			if i == f {
				continue
			}
			if first || r.RawScore < bestOther {
				bestOther = r.RawScore
				first = false
			}
		}
		if rows[f].RawScore >= bestOther && rows[f].RawScore > 0 {
			rows[f].FinalScore = rows[f].RawScore * 2
			rows[f].Penalized = true
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinalScore < rows[j].FinalScore
	})
	return rows
}
