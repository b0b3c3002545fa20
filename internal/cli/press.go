package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"go-chi-calculator/internal/calculator"
)

func newPressCommand() *cobra.Command {
	var showSteps bool

	cmd := &cobra.Command{
		Use:   "press KEYS...",
		Short: "Press keys on a cleared calculator and print the display",
		Example: `  calc press 5 + 3 =
  calc press "2+3+4="
  calc press --steps 6 / 0 =`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := calculator.ParseKeys(calculator.Tokenize(strings.Join(args, " ")))
			if err != nil {
				return err
			}

			final, steps := calculator.Replay(keys)
			if showSteps {
				renderSteps(cmd.OutOrStdout(), steps)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), final.Display())
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSteps, "steps", false, "print the display after every key")
	return cmd
}

// renderSteps writes a key/display table.
func renderSteps(w io.Writer, steps []calculator.Step) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Key", "Display"})
	for i, s := range steps {
		t.AppendRow(table.Row{i + 1, s.Key, s.Display})
	}
	t.Render()
}
