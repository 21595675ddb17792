package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/internal/calculator"
)

var calcRecord bool

var calcCmd = &cobra.Command{
	Use:   "calc <operation> <a> <b>",
	Short: "Führt eine einzelne Berechnung aus",
	Long: `Führt eine einzelne Berechnung aus und gibt das Ergebnis aus.

Mit --record wird die Berechnung im Verlauf gespeichert.

Beispiele:
  mrw calc add 2 3
  mrw calc divide 1 3 --record
  mrw calc root -- -8 3`,
	Args: cobra.ExactArgs(3),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().BoolVar(&calcRecord, "record", false, "Berechnung im Verlauf speichern")
}

func runCalc(cmd *cobra.Command, args []string) error {
	a, err := parseOperand(args[1])
	if err != nil {
		return err
	}
	b, err := parseOperand(args[2])
	if err != nil {
		return err
	}

	var (
		result    calculator.Calculation
		precision int
	)

	if calcRecord {
		app, err := newApp(cmd.ErrOrStderr(), appOptions{oneShot: true})
		if err != nil {
			return err
		}
		defer app.Close()

		result, err = app.calc.Calculate(args[0], a, b)
		if err != nil {
			return err
		}
		if err := app.calc.Save(); err != nil {
			return err
		}
		precision = app.cfg.Calculator.Precision
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		registry := calculator.NewRegistry(calculator.WithMaxInput(cfg.Calculator.MaxInputValue))
		result, err = registry.Compute(args[0], a, b)
		if err != nil {
			return err
		}
		precision = cfg.Calculator.Precision
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Result: %s\n", mathx.Format(result.Result, precision))
	return nil
}

func parseOperand(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, calculator.InvalidInput("invalid number: '%s'", raw)
	}
	return v, nil
}
