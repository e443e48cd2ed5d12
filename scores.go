package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Print the best results stored in the leaderboard database.

Entries are ranked by accuracy, then by the number of items recycled.
Rounds without a single sorting attempt are listed last.

Examples:
  earthday scores
  earthday scores --limit 20
  earthday scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of entries to show")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func runScores(cmd *cobra.Command, args []string) error {
	setupLogging(flagVerbose)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := leaderboard.Open(cfg.Leaderboard.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Top(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}
	fmt.Fprintln(out, renderScores(entries, term.IsTerminal(int(os.Stdout.Fd()))))
	return nil
}

// renderScores 把排行记录渲染成表格；styled 为 false 时只用 ASCII 边框，不带颜色
func renderScores(entries []leaderboard.Entry, styled bool) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		date := ""
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Format("2006-01-02 15:04")
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.User.Name,
			e.User.Gender,
			strconv.Itoa(e.Score.Right),
			strconv.Itoa(e.Score.Wrong),
			e.Score.PercentLabel(),
			date,
		}
	}

	t := table.New().
		Headers("Rank", "Name", "Gender", "Recycled", "Missed", "Accuracy", "Date").
		Rows(rows...)

	if !styled {
		return t.Border(lipgloss.ASCIIBorder()).String()
	}
	return t.
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
