package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered game mode with its best score and round count.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

var listHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Stats are optional; without a database the columns show "-".
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "BEST", "ROUNDS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, g := range games {
		best, rounds := "-", "-"
		if st := stats[g.ID]; st != nil {
			best, rounds = strconv.Itoa(st.HighScore), strconv.Itoa(st.GamesCount)
		}
		t.Row(g.ID, g.Title, best, rounds)
	}

	fmt.Println(t)
	fmt.Println("Run 'skyclaim play <id>' to play.")
}
