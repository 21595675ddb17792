package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/internal/repl"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mrw",
	Short: "meinRECHENWERK - Interaktiver Rechner",
	Long: `meinRECHENWERK ist ein interaktiver Rechner mit Verlauf,
Undo/Redo und automatischer Speicherung.

Ohne Unterbefehl startet die interaktive Sitzung.

Operationen:
  add, subtract, multiply, divide, power, modulo,
  intdivide, absolutediff, root, percent

Befehle in der Sitzung:
  history, clear, undo, redo, save, load, help, exit`,
	SilenceUsage: true,
	RunE:         runREPL,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $MRW_CONFIG oder ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug-Logging aktivieren")
}

func runREPL(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr(), appOptions{})
	if err != nil {
		printError("Initialisierung fehlgeschlagen", err)
		return err
	}
	defer a.Close()

	session := repl.New(a.calc, cmd.InOrStdin(), cmd.OutOrStdout(), repl.Config{
		Precision:  a.cfg.Calculator.Precision,
		CancelWord: a.cfg.Calculator.CancelWord,
		AutoSave:   a.cfg.Calculator.AutoSave,
		Styles:     repl.DefaultStyles(),
	}, a.logger)

	return session.Run(context.Background())
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
