package calculator

import (
	"errors"
	"fmt"
)

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for the binary operation endpoints.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
	Display   string  `json:"display"`
}

// KeysRequest carries keypad input either as explicit tokens or as one
// free-form line. Keys wins when both are set.
type KeysRequest struct {
	Keys  []string `json:"keys,omitempty"`
	Input string   `json:"input,omitempty"`
}

// MaxKeysPerRequest bounds the keys one request may press.
const MaxKeysPerRequest = 1024

var (
	errNoKeys = errors.New("no keys provided")

	// ErrTooManyKeys is returned for batches above MaxKeysPerRequest.
	ErrTooManyKeys = errors.New("too many keys")
)

// ParseRequest resolves the request into parsed keys.
func (r KeysRequest) ParseRequest() ([]Key, error) {
	tokens := r.Keys
	if len(tokens) == 0 {
		tokens = Tokenize(r.Input)
	}
	if len(tokens) == 0 {
		return nil, errNoKeys
	}
	if len(tokens) > MaxKeysPerRequest {
		return nil, fmt.Errorf("%w: %d keys, at most %d", ErrTooManyKeys, len(tokens), MaxKeysPerRequest)
	}

	keys, err := ParseKeys(tokens)
	if err != nil {
		return nil, fmt.Errorf("parsing keys: %w", err)
	}
	return keys, nil
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Display string `json:"display"`
	Steps   []Step `json:"steps"`
}

// SessionResponse describes a session's calculator.
type SessionResponse struct {
	ID              string `json:"id"`
	Display         string `json:"display"`
	Operator        string `json:"operator,omitempty"`
	AwaitingOperand bool   `json:"awaiting_operand"`
	HasPending      bool   `json:"has_pending"`
}

func newSessionResponse(id string, snap Snapshot) SessionResponse {
	return SessionResponse{
		ID:              id,
		Display:         snap.Display,
		Operator:        snap.Operator.String(),
		AwaitingOperand: snap.AwaitingOperand,
		HasPending:      snap.HasPrevious,
	}
}
