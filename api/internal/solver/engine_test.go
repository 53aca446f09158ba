package solver

import (
	"context"
	"testing"
)

type stubEngine struct{ name string }

func (s *stubEngine) Name() string     { return s.name }
func (s *stubEngine) GetModel() string { return "m" }
func (s *stubEngine) Solve(ctx context.Context, image []byte) (string, error) {
	return "", nil
}

func TestManagerFallsBackToDefault(t *testing.T) {
	def := &stubEngine{name: "default"}
	m := NewManager(def)

	if got := m.Get(1); got != Engine(def) {
		t.Fatalf("expected the default engine, got %s", got.Name())
	}
}

func TestManagerTracksSelectionPerChat(t *testing.T) {
	def := &stubEngine{name: "default"}
	other := &stubEngine{name: "other"}
	m := NewManager(def)

	m.Set(7, other)
	if got := m.Get(7); got.Name() != "other" {
		t.Fatalf("chat 7: got %s", got.Name())
	}
	if got := m.Get(8); got.Name() != "default" {
		t.Fatalf("chat 8 must keep the default, got %s", got.Name())
	}
}
