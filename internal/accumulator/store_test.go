package accumulator

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestStoreCreateGetDelete(t *testing.T) {
	s := NewStore(0)

	id, acc := s.Create(4)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected UUID id, got %q: %v", id, err)
	}
	if got := acc.Value(); got != 4 {
		t.Fatalf("expected initial value 4, got %g", got)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != acc {
		t.Fatal("expected Get to return the created accumulator")
	}
	if n := s.Len(); n != 1 {
		t.Fatalf("expected 1 accumulator, got %d", n)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStoreAppliesHistoryLimit(t *testing.T) {
	s := NewStore(1)
	_, acc := s.Create(0)

	acc.Add(1)
	acc.Add(2)

	if got := acc.UndoDepth(); got != 1 {
		t.Fatalf("expected undo depth 1, got %d", got)
	}
}
