// Package storetest checks that a store.Store implementation behaves like
// the reference in-memory store.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/lineage/pkg/core/elements"
	"github.com/matzehuels/lineage/pkg/core/layout"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/store"
)

// Run exercises s. Each subtest gets a fresh, empty store from newStore.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("SaveGet", func(t *testing.T) { testSaveGet(t, newStore(t)) })
	t.Run("Replace", func(t *testing.T) { testReplace(t, newStore(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("List", func(t *testing.T) { testList(t, newStore(t)) })
}

// Layout returns a small layout suitable for storing.
func Layout(family string) graph.Layout {
	return graph.Layout{
		Family: family,
		Nodes: []elements.Node{
			{ID: "anna", Label: "Anna", Name: "Anna"},
			{ID: "ida", Label: "Ida", Name: "Ida", Generation: 1},
		},
		Edges: []elements.Edge{
			{ID: "anna-ida-child", Source: "anna", Target: "ida", Type: "child"},
		},
		Positions: map[string]layout.Point{
			"anna": {X: 300, Y: 250},
			"ida":  {X: 300, Y: 600},
		},
		Rows:        map[int][]string{0: {"anna"}, 1: {"ida"}},
		Generations: 2,
		Passes:      2,
		Converged:   true,
		Spacing:     layout.DefaultSpacing(),
	}
}

func testSaveGet(t *testing.T, s store.Store) {
	ctx := context.Background()
	rec := store.NewRecord(Layout("mueller"), "hash-1")
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Fatalf("Save did not assign id and time: %+v", rec.Summary)
	}
	if rec.Layout.ID != rec.ID {
		t.Errorf("Layout.ID = %q, want %q", rec.Layout.ID, rec.ID)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Family != "mueller" || got.ChartHash != "hash-1" || got.People != 2 || got.Generations != 2 {
		t.Errorf("Summary = %+v", got.Summary)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
	if p := got.Layout.Positions["ida"]; p != (layout.Point{X: 300, Y: 600}) {
		t.Errorf("Positions[ida] = %+v", p)
	}
	if len(got.Layout.Rows[1]) != 1 || got.Layout.Rows[1][0] != "ida" {
		t.Errorf("Rows = %v", got.Layout.Rows)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}
}

func testReplace(t *testing.T, s store.Store) {
	ctx := context.Background()
	rec := store.NewRecord(Layout("mueller"), "hash-1")
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	rec.ChartHash = "hash-2"
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ChartHash != "hash-2" {
		t.Errorf("ChartHash = %q, want hash-2", got.ChartHash)
	}

	all, err := s.List(ctx, store.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("List after replace has %d records, want 1", len(all))
	}
}

func testDelete(t *testing.T, s store.Store) {
	ctx := context.Background()
	rec := store.NewRecord(Layout(""), "hash")
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Delete error = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second Delete error = %v, want NOT_FOUND", err)
	}
}

func testList(t *testing.T, s store.Store) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	families := []string{"mueller", "schmidt", "mueller"}
	ids := make([]string, len(families))
	for i, f := range families {
		rec := store.NewRecord(Layout(f), "hash")
		rec.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := s.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
		ids[i] = rec.ID
	}

	all, err := s.List(ctx, store.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("List() = %+v, want newest first", all)
	}

	mueller, err := s.List(ctx, store.ListOptions{Family: "mueller"})
	if err != nil {
		t.Fatal(err)
	}
	if len(mueller) != 2 {
		t.Errorf("List(mueller) returned %d, want 2", len(mueller))
	}

	limited, err := s.List(ctx, store.ListOptions{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].ID != ids[2] {
		t.Errorf("List(limit 1) = %+v", limited)
	}
}
