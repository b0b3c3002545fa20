package calculator

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_Events(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, "0", e.Display())
	assert.Equal(t, "5", e.InputDigit(5))
	assert.Equal(t, "5", e.ApplyOperator(OpAdd))
	assert.Equal(t, "3", e.InputDigit(3))
	assert.Equal(t, "8", e.Equals())
	assert.Equal(t, "-8", e.ToggleSign())
	assert.Equal(t, "-0.08", e.Percent())
	assert.Equal(t, "-0.08", e.InputDecimal(), "numeral already has a point")
	assert.Equal(t, "0", e.Clear())
}

func TestEngine_PressAndSnapshot(t *testing.T) {
	e := NewEngine()
	for _, tok := range Tokenize("6/0=") {
		k, err := ParseKey(tok)
		assert.NoError(t, err)
		e.Press(k)
	}

	snap := e.Snapshot()
	assert.Equal(t, ErrorDisplay, snap.Display)
	assert.Equal(t, OpNone, snap.Operator)
	assert.True(t, snap.AwaitingOperand)

	assert.Equal(t, "4", e.InputDigit(4))
}

func TestEngine_ConcurrentEvents(t *testing.T) {
	e := NewEngine()
	e.InputDigit(1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.InputDigit(0)
			_ = e.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, "1"+strings.Repeat("0", 50), e.Display())
}
