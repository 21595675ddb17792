// ============================================================================
// meinRECHENWERK (mRW) - Interaktiver Rechner
// ============================================================================
//
// Package:     repl
// Description: Interactive calculator session: command dispatch, operand
//              prompts with cancel support, and the user facing messages
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	mrwlog "github.com/msto63/mRW/foundation/core/log"
	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/internal/calculator"
)

// DefaultCancelWord aborts operand entry.
const DefaultCancelWord = "cancel"

// Config configures a Session.
type Config struct {
	// Precision is the number of decimal places printed for numbers.
	Precision int

	// CancelWord aborts an operation while its operands are entered.
	CancelWord string

	// AutoSave saves the history on exit.
	AutoSave bool

	// Styles decorates the output. Defaults to plain text.
	Styles Styles
}

// Session runs the read-eval-print loop over a Calculator.
type Session struct {
	calc    *calculator.Calculator
	scanner *bufio.Scanner
	out     io.Writer
	cfg     Config
	logger  *mrwlog.Logger

	commands map[string]command
}

type command struct {
	help string
	run  func(s *Session, args []string) bool
}

var (
	errCancelled  = errors.New("operation cancelled")
	errTerminated = errors.New("input terminated")
)

// New creates a session reading commands from in and writing to out.
func New(calc *calculator.Calculator, in io.Reader, out io.Writer, cfg Config, logger *mrwlog.Logger) *Session {
	if cfg.CancelWord == "" {
		cfg.CancelWord = DefaultCancelWord
	}
	if cfg.Precision < 0 {
		cfg.Precision = calculator.DefaultPrecision
	}
	if logger == nil {
		logger = mrwlog.Nop()
	}

	s := &Session{
		calc:    calc,
		scanner: bufio.NewScanner(in),
		out:     out,
		cfg:     cfg,
		logger:  logger,
	}
	s.commands = map[string]command{
		"history": {"Show calculation history", (*Session).showHistory},
		"clear":   {"Clear calculation history", (*Session).clearHistory},
		"undo":    {"Undo the last calculation", (*Session).undo},
		"redo":    {"Redo the last undone calculation", (*Session).redo},
		"save":    {"Save calculation history to file", (*Session).save},
		"load":    {"Load calculation history from file", (*Session).load},
		"help":    {"Show this help", (*Session).help},
		"exit":    {"Exit the calculator", (*Session).exit},
	}
	calc.OnListenerFailure(s.listenerFailed)
	return s
}

// listenerFailed tells the user that a background listener, such as the
// auto-save, did not run; the command itself has already succeeded.
func (s *Session) listenerFailed(listener string, event calculator.Event, err error) {
	s.println(s.cfg.Styles.render(s.cfg.Styles.Warning,
		fmt.Sprintf("Warning: %s failed after %s: %v", listener, event.Kind, err)))
}

// Run processes commands until exit, end of input or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.println(s.cfg.Styles.render(s.cfg.Styles.Banner, "Calculator started. Type 'help' for commands."))
	s.logger.Info("session started")

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("session interrupted")
			return err
		}

		line, err := s.readLine("Enter command: ")
		if err != nil {
			s.println("Input terminated. Exiting...")
			s.logger.Info("session ended", mrwlog.Fields{"reason": "eof"})
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name := strings.ToLower(fields[0])
		if !s.Execute(name, fields[1:]) {
			s.logger.Info("session ended", mrwlog.Fields{"reason": "exit"})
			return nil
		}
	}
}

// Execute runs one command and reports whether the session should continue.
// Operators may carry their operands inline ("add 2 3"); missing operands
// are prompted for.
func (s *Session) Execute(name string, args []string) bool {
	s.logger.Debug("command received", mrwlog.Fields{"command": name, "args": len(args)})

	if cmd, ok := s.commands[name]; ok {
		return cmd.run(s, args)
	}
	if calculator.IsOperator(name) {
		return s.calculate(name, args)
	}

	s.printf("Unknown command: '%s'. Type 'help' for available commands.\n", name)
	return true
}

func (s *Session) calculate(name string, args []string) bool {
	if len(args) > 2 {
		err := calculator.InvalidInput("%s takes two operands, got %d", name, len(args))
		s.printError("Error: " + err.Error())
		return true
	}

	a, err := s.operand(args, 0, "Enter first number")
	if err == nil {
		var b float64
		b, err = s.operand(args, 1, "Enter second number")
		if err == nil {
			calc, cerr := s.calc.Calculate(name, a, b)
			if cerr != nil {
				s.logger.LogError(cerr)
				s.printError("Error: " + cerr.Error())
				return true
			}
			s.println(s.cfg.Styles.render(s.cfg.Styles.Result, "Result: "+s.format(calc.Result)))
			return true
		}
	}

	switch {
	case errors.Is(err, errTerminated):
		s.println("Input terminated. Exiting...")
		return false
	case errors.Is(err, errCancelled):
		s.println(s.cfg.Styles.render(s.cfg.Styles.Warning, "Operation cancelled"))
	default:
		s.printError("Error: " + err.Error())
	}
	return true
}

// operand returns args[i] when present, otherwise prompts for it.
func (s *Session) operand(args []string, i int, prompt string) (float64, error) {
	var raw string
	if i < len(args) {
		raw = args[i]
	} else {
		line, err := s.readLine(fmt.Sprintf("%s (or '%s' to abort): ", prompt, s.cfg.CancelWord))
		if err != nil {
			return 0, errTerminated
		}
		raw = strings.TrimSpace(line)
	}

	if strings.EqualFold(raw, s.cfg.CancelWord) {
		return 0, errCancelled
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, calculator.InvalidInput("invalid number: '%s'", raw)
	}
	if err := s.calc.Registry().ValidateOperand(v); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *Session) showHistory(_ []string) bool {
	history := s.calc.History()
	if len(history) == 0 {
		s.println("No calculations in history")
		return true
	}

	s.println(s.cfg.Styles.render(s.cfg.Styles.Header, "Calculation History:"))
	for i, c := range history {
		s.printf("%d. %s\n", i+1, c.Format(s.cfg.Precision))
	}
	return true
}

func (s *Session) clearHistory(_ []string) bool {
	s.calc.Clear()
	s.println(s.cfg.Styles.render(s.cfg.Styles.Success, "History cleared"))
	return true
}

func (s *Session) undo(_ []string) bool {
	if err := s.calc.Undo(); err != nil {
		s.println(s.cfg.Styles.render(s.cfg.Styles.Warning, "Nothing to undo"))
		return true
	}
	s.println(s.cfg.Styles.render(s.cfg.Styles.Success, "Operation undone"))
	return true
}

func (s *Session) redo(_ []string) bool {
	if err := s.calc.Redo(); err != nil {
		s.println(s.cfg.Styles.render(s.cfg.Styles.Warning, "Nothing to redo"))
		return true
	}
	s.println(s.cfg.Styles.render(s.cfg.Styles.Success, "Operation redone"))
	return true
}

func (s *Session) save(_ []string) bool {
	if err := s.calc.Save(); err != nil {
		s.logger.LogError(err)
		s.printError("Error saving history: " + err.Error())
		return true
	}
	s.println(s.cfg.Styles.render(s.cfg.Styles.Success, "History saved successfully"))
	return true
}

func (s *Session) load(_ []string) bool {
	if err := s.calc.Load(); err != nil {
		s.logger.LogError(err)
		s.printError("Error loading history: " + err.Error())
		return true
	}
	s.println(s.cfg.Styles.render(s.cfg.Styles.Success, "History loaded successfully"))
	return true
}

func (s *Session) help(_ []string) bool {
	st := s.cfg.Styles
	s.println(st.render(st.Header, "Available commands:"))
	for _, op := range calculator.Operators() {
		s.printf("  %-13s %s\n", op, st.render(st.Muted, calculator.Describe(op)))
	}

	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.printf("  %-13s %s\n", name, st.render(st.Muted, s.commands[name].help))
	}
	s.printf("Enter '%s' at a number prompt to abort the operation.\n", s.cfg.CancelWord)
	return true
}

func (s *Session) exit(_ []string) bool {
	if s.cfg.AutoSave {
		if err := s.calc.Save(); err != nil {
			s.logger.LogError(err)
			s.printError("Error saving history: " + err.Error())
		} else {
			s.println("History saved successfully.")
		}
	}
	s.println("Goodbye!")
	return false
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, s.cfg.Styles.render(s.cfg.Styles.Prompt, prompt))
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *Session) format(v float64) string {
	return mathx.Format(v, s.cfg.Precision)
}

func (s *Session) printError(text string) {
	s.println(s.cfg.Styles.render(s.cfg.Styles.Error, text))
}

func (s *Session) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
