package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/lineage/pkg/core/layout"
	"github.com/matzehuels/lineage/pkg/store"
	"github.com/matzehuels/lineage/pkg/store/storetest"
)

func TestMemory(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return store.NewMemory() })
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	rec := store.NewRecord(storetest.Layout("mueller"), "hash")
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get(ctx, rec.ID)
	got.Family = "changed"
	got.Layout.Positions["anna"] = layout.Point{X: 1, Y: 1}
	got.Layout.Rows[0][0] = "changed"
	got.Layout.Nodes[0].Label = "changed"
	rec.Layout.Positions["ida"] = layout.Point{X: 2, Y: 2}

	again, _ := s.Get(ctx, rec.ID)
	if again.Family != "mueller" {
		t.Errorf("Family = %q, mutation of a returned record leaked into the store", again.Family)
	}
	if p := again.Layout.Positions["anna"]; p != (layout.Point{X: 300, Y: 250}) {
		t.Errorf("Positions[anna] = %+v, returned map is shared with the store", p)
	}
	if p := again.Layout.Positions["ida"]; p != (layout.Point{X: 300, Y: 600}) {
		t.Errorf("Positions[ida] = %+v, saved map is shared with the store", p)
	}
	if again.Layout.Rows[0][0] != "anna" || again.Layout.Nodes[0].Label != "Anna" {
		t.Errorf("rows or nodes shared with the store: %v %+v", again.Layout.Rows, again.Layout.Nodes[0])
	}
}

func TestPrepare(t *testing.T) {
	rec := &store.Record{}
	store.Prepare(rec, testTime)
	if rec.ID == "" || rec.Layout.ID != rec.ID {
		t.Errorf("ID = %q, Layout.ID = %q", rec.ID, rec.Layout.ID)
	}
	if !rec.CreatedAt.Equal(testTime) {
		t.Errorf("CreatedAt = %v, want %v", rec.CreatedAt, testTime)
	}

	id := rec.ID
	store.Prepare(rec, testTime.Add(1))
	if rec.ID != id {
		t.Error("Prepare replaced an existing id")
	}
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
