package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-chi-calculator/internal/calculator"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPressCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"separate args", []string{"press", "5", "+", "3", "="}, "8\n"},
		{"single run", []string{"press", "2+3+4="}, "9\n"},
		{"error display", []string{"press", "6/0="}, "Error\n"},
		{"negate", []string{"press", "9", "+/-"}, "-9\n"},
		{"leading decimal", []string{"press", ".5"}, "0.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPressCommand_UnknownKey(t *testing.T) {
	_, err := execute(t, "press", "2", "^", "2")
	require.ErrorIs(t, err, calculator.ErrUnknownKey)
}

func TestPressCommand_Steps(t *testing.T) {
	out, err := execute(t, "press", "--steps", "5", "0", "%")
	require.NoError(t, err)

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "DISPLAY")
	assert.Contains(t, out, "50")
	assert.Contains(t, out, "0.5")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "calc "+Version+"\n", out)
}

// fakeReader replays canned lines, then reports EOF.
type fakeReader struct {
	lines []string
}

func (f *fakeReader) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func TestRunREPL(t *testing.T) {
	var out bytes.Buffer
	rl := &fakeReader{lines: []string{"5 +", "3", "=", "", "2 sqrt", "state", "AC"}}

	require.NoError(t, runREPL(rl, &out, calculator.NewEngine()))

	assert.Equal(t, "5\n3\n8\n"+
		"error: key 1: unknown key: \"sqrt\"\n"+
		"display=8 operator=none pending=false awaiting=true\n"+
		"0\n", out.String())
}

func TestRunREPL_ExitAndInterrupt(t *testing.T) {
	var out bytes.Buffer
	e := calculator.NewEngine()

	require.NoError(t, runREPL(&fakeReader{lines: []string{"7", "exit", "9"}}, &out, e))
	assert.Equal(t, "7", e.Display(), "lines after exit are not read")

	require.NoError(t, runREPL(&fakeReader{lines: []string{"^C", "1"}}, &out, e))
	assert.Equal(t, "7", e.Display(), "interrupt on an empty line ends the session")
}
