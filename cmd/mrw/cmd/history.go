package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/internal/calculator"
	"github.com/msto63/mRW/internal/store"
	"github.com/msto63/mRW/internal/tui/historyviewer"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Zeigt den gespeicherten Verlauf an",
	RunE:  runHistory,
}

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"viewer"},
	Short:   "Startet den interaktiven Verlaufsbrowser",
	Long: `Startet den interaktiven Verlaufsbrowser.

Tastenkuerzel:
  f           Filter nach Operation wechseln
  0           Filter zuruecksetzen
  r           Verlauf neu laden
  g / G       Zum Anfang / Ende springen
  PgUp/PgDn   Scrollen
  q / Ctrl+C  Beenden`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(browseCmd)
}

func openHistory() (store.Gateway, int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, 0, fmt.Errorf("config: %w", err)
	}
	gw, err := store.Open(cfg.HistoryPath())
	if err != nil {
		return nil, 0, err
	}
	return gw, cfg.Calculator.Precision, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	gw, precision, err := openHistory()
	if err != nil {
		return err
	}

	entries, err := gw.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No calculations in history")
		return nil
	}

	fmt.Fprintln(out, "Calculation History:")
	for i, c := range entries {
		fmt.Fprintf(out, "%d. %s\n", i+1, c.Format(precision))
	}
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	gw, precision, err := openHistory()
	if err != nil {
		return err
	}

	return historyviewer.Run(historyviewer.Config{
		Load: func() ([]calculator.Calculation, error) {
			entries, err := gw.Load()
			if errors.Is(err, os.ErrNotExist) {
				return nil, nil
			}
			return entries, err
		},
		Precision: precision,
		Source:    gw.Path(),
	})
}
