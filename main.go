package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Nyaru01/Skyjo-V2-sub000/internal/bot"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/config"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/game"
)

// Terminal demo: one round of Skyjo against the bot.
func main() {
	st, err := game.NewGame([]game.PlayerInfo{
		{ID: "you", Name: "You"},
		{ID: "cpu", Name: "CPU"},
	}, 1, nil)
	if err != nil {
		fmt.Println("deal failed:", err)
		os.Exit(1)
	}

	weights := config.BotWeights{TakeDiscardMax: 4, KeepMax: 5, ReplaceMargin: 2}
	reader := bufio.NewReader(os.Stdin)

	for st.Phase == game.PhaseInitialReveal {
		for i := range st.Players {
			if st.Players[i].RevealedCount() >= game.InitialReveals {
				continue
			}
			if st.Players[i].ID == "cpu" {
				st = botMove(st, i, weights)
				continue
			}
			printHand(&st.Players[i])
			fmt.Println("Pick two cards to reveal (e.g.: 0 4)")
			for {
				a, b, ok := readTwo(reader)
				if !ok {
					fmt.Println("Need two slot numbers. Try again.")
					continue
				}
				next, err := game.RevealInitialCards(st, i, [2]int{a, b})
				if err != nil {
					fmt.Println("Invalid:", err)
					continue
				}
				st = next
				break
			}
		}
	}

	for st.Phase == game.PhasePlaying || st.Phase == game.PhaseFinalRound {
		cur := st.CurrentPlayer()
		fmt.Printf("\nTurn: %s\n", cur.Name)
		if cur.ID == "cpu" {
			st = botMove(st, st.CurrentPlayerIndex, weights)
			continue
		}
		printHand(cur)
		st = humanTurn(reader, st)
	}

	fmt.Println("\nRound over!")
	for _, row := range game.FinalScores(st) {
		mark := ""
		if row.IsFinisher {
			mark = " (finished first)"
		}
		if row.Penalized {
			mark += " (doubled)"
		}
		fmt.Printf("%-8s %3d%s\n", row.PlayerName, row.FinalScore, mark)
	}
}

func humanTurn(reader *bufio.Reader, st *game.GameState) *game.GameState {
	for {
		switch st.TurnPhase {
		case game.TurnDraw:
			top := "empty"
			if len(st.DiscardPile) > 0 {
				top = strconv.Itoa(st.DiscardPile[len(st.DiscardPile)-1].Value)
			}
			fmt.Printf("d = draw pile, t = take discard (top: %s)\n", top)
			cmd, _ := readCommand(reader)
			var next *game.GameState
			var err error
			switch cmd {
			case "d":
				next, err = game.DrawFromPile(st)
			case "t":
				next, err = game.DrawFromDiscard(st)
			default:
				fmt.Println("Unknown command.")
				continue
			}
			if err != nil {
				fmt.Println("Invalid:", err)
				continue
			}
			st = next

		case game.TurnReplaceOrDiscard, game.TurnMustReplace:
			fmt.Printf("Drawn card: %d\n", st.DrawnCard.Value)
			if st.TurnPhase == game.TurnMustReplace {
				fmt.Println("r <slot> = replace, u = put it back")
			} else {
				fmt.Println("r <slot> = replace, f <slot> = discard it and flip a hidden card")
			}
			cmd, arg := readCommand(reader)
			var next *game.GameState
			var err error
			switch cmd {
			case "r":
				next, err = game.ReplaceCard(st, arg)
			case "f":
				if st.TurnPhase == game.TurnMustReplace {
					fmt.Println("A discard pile card must be placed.")
					continue
				}
				next, err = game.DiscardAndReveal(st, arg)
			case "u":
				if st.TurnPhase != game.TurnMustReplace {
					fmt.Println("Nothing to undo.")
					continue
				}
				next, err = game.UndoDrawDiscard(st)
			default:
				fmt.Println("Unknown command.")
				continue
			}
			if err != nil {
				fmt.Println("Invalid:", err)
				continue
			}
			if cmd == "u" {
				st = next
				continue
			}
			return endTurn(next)

		default:
			// Not reachable through the commands above.
			return st
		}
	}
}

func botMove(st *game.GameState, idx int, w config.BotWeights) *game.GameState {
	step, ok := bot.NextStep(st, idx, w, nil)
	if !ok {
		return st
	}
	var next *game.GameState
	var err error
	switch step.Kind {
	case bot.RevealInitial:
		next, err = game.RevealInitialCards(st, idx, step.CardIndices)
		fmt.Printf("CPU reveals slots %d and %d\n", step.CardIndices[0], step.CardIndices[1])
	case bot.DrawPile:
		next, err = game.DrawFromPile(st)
		fmt.Println("CPU draws from the pile")
	case bot.DrawDiscard:
		next, err = game.DrawFromDiscard(st)
		fmt.Println("CPU takes the discard")
	case bot.Replace:
		next, err = game.ReplaceCard(st, step.CardIndex)
		fmt.Printf("CPU places it on slot %d\n", step.CardIndex)
	case bot.DiscardAndReveal:
		next, err = game.DiscardAndReveal(st, step.CardIndex)
		fmt.Printf("CPU discards and flips slot %d\n", step.CardIndex)
	case bot.DiscardDrawn:
		next, err = game.DiscardDrawn(st)
		fmt.Println("CPU discards the drawn card")
	case bot.RevealHidden:
		next, err = game.RevealHiddenCard(st, step.CardIndex)
		fmt.Printf("CPU flips slot %d\n", step.CardIndex)
	default:
		return st
	}
	if err != nil {
		fmt.Println("CPU move failed:", err)
		return st
	}
	switch step.Kind {
	case bot.Replace, bot.DiscardAndReveal, bot.RevealHidden:
		return endTurn(next)
	case bot.DiscardDrawn:
		if next.TurnPhase == game.TurnDraw {
			return endTurn(next)
		}
	}
	return next
}

func endTurn(st *game.GameState) *game.GameState {
	next, err := game.EndTurn(st)
	if err != nil {
		fmt.Println("end turn failed:", err)
		return st
	}
	return next
}

func printHand(p *game.Player) {
	fmt.Printf("%s's cards:\n", p.Name)
	for r := 0; r < game.HandRows; r++ {
		for c := 0; c < game.HandColumns; c++ {
			idx := c*game.HandRows + r
			card := p.Hand[idx]
			switch {
			case card == nil:
				fmt.Printf("%2d: -- ", idx)
			case !card.Revealed:
				fmt.Printf("%2d: ## ", idx)
			default:
				fmt.Printf("%2d:%3d ", idx, card.Value)
			}
		}
		fmt.Println()
	}
}

func readCommand(reader *bufio.Reader) (string, int) {
	fmt.Print("> ")
	line, _ := reader.ReadString('\n')
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", 0
	}
	arg := 0
	if len(parts) > 1 {
		arg, _ = strconv.Atoi(parts[1])
	}
	return parts[0], arg
}

func readTwo(reader *bufio.Reader) (int, int, bool) {
	fmt.Print("> ")
	line, _ := reader.ReadString('\n')
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, err1 := strconv.Atoi(parts[0])
	b, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return a, b, true
}
