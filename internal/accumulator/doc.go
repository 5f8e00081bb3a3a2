// Package accumulator implements a running numeric value with undo/redo.
//
// Every mutation is recorded as a Command (an operation kind plus its
// operand). Executing a command pushes it onto the undo stack and discards
// the redo stack; Undo and Redo move commands between the two stacks,
// applying the inverse or forward formula as they go:
//
//	acc := accumulator.New()
//	acc.Add(8)   // 8
//	acc.Undo()   // 0
//	acc.Redo()   // 8
//
// Dividing by zero fails with ErrInvalidOperand before anything changes.
// Repeated multiply/divide round trips are subject to ordinary
// floating-point drift; no exact-inverse correction is made.
//
// Store hosts many accumulators keyed by id for the HTTP API.
package accumulator
