package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"holdem-rooms/internal/game"
)

const (
	humanID = "you"
	botID   = "cpu"
)

// Local heads-up game against the bot, played in the terminal.
func main() {
	t := game.NewTable("local", game.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))))
	if _, _, err := t.Join(humanID, humanID, "You"); err != nil {
		pterm.Error.Println(err)
		return
	}
	t.SeatBot(botID)

	pterm.DefaultHeader.WithFullWidth().Println("Texas Hold'em")
	for {
		if err := t.StartHand(); err != nil {
			pterm.Error.Println(err)
			return
		}
		pterm.Info.Printfln("Hand #%d", t.Hand)
		playHand(t)

		for _, p := range t.Players {
			if p.Chips == 0 {
				pterm.Info.Printfln("%s is out of chips. Game over.", p.Name)
				return
			}
		}
		again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Deal another hand?").WithDefaultValue(true).Show()
		if !again {
			return
		}
	}
}

func playHand(t *game.Table) {
	for {
		if res := bettingRound(t); res != nil {
			render(t, resultPanel(res))
			return
		}
		res, err := t.NextStage()
		if err != nil {
			pterm.Error.Printfln("Hand aborted: %s", err)
			t.Reset()
			return
		}
		if res != nil {
			render(t, resultPanel(res))
			_, _ = t.NextStage()
			return
		}
		pterm.Info.Printfln("%s", t.Stage)
	}
}

// bettingRound runs actions until every player still able to act has acted
// and matched the table bet. It returns a result if the hand ended by fold-out.
func bettingRound(t *game.Table) *game.GameResult {
	acted := 0
	for !settled(t, acted) {
		cur := t.Current()
		if cur == nil {
			return nil
		}

		var (
			res *game.GameResult
			err error
		)
		if cur.IsBot {
			d := game.DecideBot(t, cur, game.DefaultBotRaiseStep)
			res, err = t.Act(cur.ID, d.Action, d.Amount)
			if err == nil {
				pterm.Info.Println(d.Notice)
			}
		} else {
			render(t)
			a, amount := askAction(t, cur)
			res, err = t.Act(cur.ID, a, amount)
		}
		if err != nil {
			pterm.Error.Printfln("Invalid action: %s", err)
			continue
		}
		if res != nil {
			return res
		}
		acted++
	}
	return nil
}

func settled(t *game.Table, acted int) bool {
	live := 0
	for _, p := range t.Players {
		if !p.CanAct() {
			continue
		}
		live++
		if p.RoundBet != t.TableBet {
			return false
		}
	}
	return acted >= live
}

func askAction(t *game.Table, p *game.Player) (game.Action, int) {
	options := []string{string(game.ActionCheck), string(game.ActionRaise), string(game.ActionFold)}
	if need := t.TableBet - p.RoundBet; need > 0 {
		options[0] = fmt.Sprintf("%s %d", game.ActionCall, min(need, p.Chips))
	}
	choice, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Select your next action").WithOptions(options).Show()
	a := game.Action(strings.Fields(choice)[0])
	if a != game.ActionRaise {
		return a, 0
	}
	raw, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText(fmt.Sprintf("Raise to (more than %d, at most %d)", t.TableBet, p.Chips+p.RoundBet)).Show()
	amount, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return a, 0
	}
	return a, amount
}

func render(t *game.Table, extra ...pterm.Panel) {
	var others []pterm.Panel
	var me pterm.Panel
	for _, p := range t.Players {
		if p.ID == humanID {
			me = pterm.Panel{Data: playerBox(t, p, true)}
			continue
		}
		others = append(others, pterm.Panel{Data: playerBox(t, p, false)})
	}
	board := pterm.Panel{Data: boardBox(t)}
	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		others,
		{board},
		append([]pterm.Panel{me}, extra...),
	}).Render()
}

func playerBox(t *game.Table, p *game.Player, mine bool) string {
	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	status := pterm.LightGreen("Active")
	switch {
	case p.Folded:
		status = pterm.LightRed("Folded")
	case p.AllIn:
		status = pterm.LightYellow("All-in")
	}
	cards := "?? ??"
	if mine || (t.Stage == game.StageShowdown && !p.Folded) {
		cards = pterm.BgGreen.Sprint(joinCards(p.Hole))
	}
	return box.WithTitle(p.Name).WithTitleTopLeft().
		Sprintf("%s\nBet: %d\nChips: %d\n%s", status, p.RoundBet, p.Chips, cards)
}

func boardBox(t *game.Table) string {
	board := joinCards(t.Board)
	if board == "" {
		board = "-"
	}
	return pterm.DefaultBox.WithTitle(string(t.Stage)).WithTitleTopCenter().
		Sprintf("%s\nPot: %d  Bet: %d", board, t.Pot, t.TableBet)
}

func resultPanel(res *game.GameResult) pterm.Panel {
	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	msg := pterm.Sprintf("%s won %d with %s", pterm.LightCyan(res.WinnerName), res.Pot, res.WinningHand)
	return pterm.Panel{Data: box.WithTitle(pterm.LightGreen("|RESULT|")).WithTitleTopCenter().Sprint(msg)}
}

func joinCards(cards []game.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
