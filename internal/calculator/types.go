package calculator

import (
	"math"
	"strconv"

	"go-chi-accumulator/internal/accumulator"
)

// Number is a float64 that survives JSON encoding when it is not finite.
// An accumulator legitimately reaches NaN (multiply by 0, then undo) or
// ±Inf (overflow); those are written as the strings "NaN", "+Inf" and
// "-Inf". Finite values are plain JSON numbers.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// CreateRequest is the optional JSON body for POST /accumulators.
type CreateRequest struct {
	Initial float64 `json:"initial"`
}

// OperandRequest is the JSON body for add, subtract, multiply and divide.
type OperandRequest struct {
	Value float64 `json:"value"`
}

// StateResponse describes an accumulator's current value and history depth.
type StateResponse struct {
	ID        string `json:"id"`
	Value     Number `json:"value"`
	UndoDepth int    `json:"undo_depth"`
	RedoDepth int    `json:"redo_depth"`
}

// OperationResponse is returned by the arithmetic, undo and redo endpoints.
type OperationResponse struct {
	ID        string  `json:"id"`
	Operation string  `json:"operation"`
	Operand   *Number `json:"operand,omitempty"` // nil for undo/redo
	Applied   bool    `json:"applied"`
	Value     Number  `json:"value"`
	UndoDepth int     `json:"undo_depth"`
	RedoDepth int     `json:"redo_depth"`
}

// CommandView is the JSON form of one history entry.
type CommandView struct {
	Op    string  `json:"op"`
	Value float64 `json:"value"`
}

// HistoryResponse is the JSON response for GET /accumulators/{id}/history.
// Both stacks are listed bottom to top.
type HistoryResponse struct {
	ID    string        `json:"id"`
	Value Number        `json:"value"`
	Undo  []CommandView `json:"undo"`
	Redo  []CommandView `json:"redo"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string  `json:"op"`    // "add", "subtract", "multiply", "divide"
	Value float64 `json:"value"` // the operand applied to the running value
}

// ChainRequest is the JSON body for POST /accumulators/{id}/chain.
type ChainRequest struct {
	Steps []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /accumulators/{id}/chain.
type ChainResponse struct {
	ID      string        `json:"id"`
	Initial Number        `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  Number        `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string  `json:"op"`
	Value  float64 `json:"value"`
	Result Number  `json:"result"`
}

func operandOf(cmd accumulator.Command) *Number {
	n := Number(cmd.Operand)
	return &n
}

func viewCommands(cmds []accumulator.Command) []CommandView {
	views := make([]CommandView, 0, len(cmds))
	for _, c := range cmds {
		views = append(views, CommandView{Op: c.Kind.String(), Value: c.Operand})
	}
	return views
}
