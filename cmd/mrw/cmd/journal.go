package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/internal/calculator"
	"github.com/msto63/mRW/internal/journal"
)

var (
	journalLimit   int
	journalKind    string
	journalSession string
	journalStats   bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Zeigt das Ereignisjournal an",
	Long: `Zeigt die zuletzt aufgezeichneten Verlaufsereignisse aus dem
SQLite-Journal an.

Ereignisarten: calculated, cleared, undone, redone, loaded

Beispiele:
  mrw journal --limit 50
  mrw journal --kind undone
  mrw journal --stats`,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)

	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Maximale Anzahl Einträge")
	journalCmd.Flags().StringVar(&journalKind, "kind", "", "Nur Ereignisse dieser Art")
	journalCmd.Flags().StringVar(&journalSession, "session", "", "Nur Ereignisse dieser Sitzung")
	journalCmd.Flags().BoolVar(&journalStats, "stats", false, "Statistik statt Einträgen anzeigen")
}

func runJournal(cmd *cobra.Command, args []string) error {
	if journalKind != "" {
		if _, ok := calculator.ParseEventKind(journalKind); !ok {
			return calculator.InvalidInput("unknown event kind: '%s'", journalKind)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	j, err := journal.Open(journal.Config{Path: cfg.JournalPath()})
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if journalStats {
		stats, err := j.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Ereignisse: %d in %d Sitzungen\n", stats.Total, stats.Sessions)
		kinds := make([]string, 0, len(stats.ByKind))
		for k := range stats.ByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(out, "  %-11s %d\n", k, stats.ByKind[k])
		}
		if !stats.Last.IsZero() {
			fmt.Fprintf(out, "Letztes Ereignis: %s\n", stats.Last.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	entries, err := j.Query(ctx, journal.Filter{
		Kind:      journalKind,
		SessionID: journalSession,
		Limit:     journalLimit,
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Keine Ereignisse gefunden")
		return nil
	}

	precision := cfg.Calculator.Precision
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-10s  %-8.8s  len=%d",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Kind, e.SessionID, e.HistoryLen)
		if e.Operator != "" {
			line += fmt.Sprintf("  %s(%s, %s) = %s", e.Operator,
				mathx.Format(e.OperandA, precision),
				mathx.Format(e.OperandB, precision),
				mathx.Format(e.Result, precision))
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
