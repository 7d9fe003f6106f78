package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/go-solver/internal/autoplay"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

var (
	tileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Padding(0, 1)

	tileStyles = map[game.Mark]lipgloss.Style{
		game.MarkHit:     tileStyle.Background(lipgloss.Color("#538D4E")),
		game.MarkPresent: tileStyle.Background(lipgloss.Color("#B59F3B")),
		game.MarkMiss:    tileStyle.Background(lipgloss.Color("#3A3A3C")),
	}

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	wonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#90EE90"))

	lostStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
)

// renderRound draws one guess as a row of tiles followed by the number of
// candidates left.
func renderRound(r autoplay.Round) string {
	tiles := make([]string, 0, len(r.Guess))
	for i, c := range strings.ToUpper(r.Guess) {
		mark := game.MarkMiss
		if i < len(r.Marks) {
			mark = r.Marks[i]
		}
		tiles = append(tiles, tileStyles[mark].Render(string(c)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
	return row + "  " + countStyle.Render(fmt.Sprintf("%d left", r.Candidates))
}

func renderSummary(res autoplay.Result) string {
	switch res.Status {
	case game.StatusWon:
		return wonStyle.Render(fmt.Sprintf("Solved %s in %d", strings.ToUpper(res.Answer), len(res.Rounds)))
	case game.StatusLost:
		return lostStyle.Render(fmt.Sprintf("Out of rows; answer was %s", strings.ToUpper(res.Answer)))
	default:
		return lostStyle.Render(fmt.Sprintf("Stopped after %d rounds; answer was %s", len(res.Rounds), strings.ToUpper(res.Answer)))
	}
}
