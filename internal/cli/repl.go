package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
)

// lineReader is the part of *readline.Instance the REPL needs.
type lineReader interface {
	Readline() (string, error)
}

func newREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator; each line is a run of keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "calc> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdout:          cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf("starting readline: %w", err)
			}
			defer rl.Close()

			return runREPL(rl, cmd.OutOrStdout(), calculator.NewEngine())
		},
	}
}

// runREPL feeds lines from rl into e until "quit", "exit" or EOF. A line with
// an unknown key is rejected as a whole.
func runREPL(rl lineReader, out io.Writer, e *calculator.Engine) error {
	observability.Logger.Debug("repl started")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "?", "state":
			printSnapshot(out, e.Snapshot())
			continue
		}

		keys, err := calculator.ParseKeys(calculator.Tokenize(line))
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		var display string
		for _, k := range keys {
			display = e.Press(k)
		}
		observability.Logger.Debug("keys pressed", zap.Int("keys", len(keys)), zap.String("display", display))
		fmt.Fprintln(out, display)
	}
}

func printSnapshot(out io.Writer, snap calculator.Snapshot) {
	op := snap.Operator.String()
	if op == "" {
		op = "none"
	}
	fmt.Fprintf(out, "display=%s operator=%s pending=%t awaiting=%t\n",
		snap.Display, op, snap.HasPrevious, snap.AwaitingOperand)
}
