package storage

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/tixyva/internal/canvas"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	c := canvas.New(4, 3)
	for i := range c.Cells {
		c.Cells[i] = float64(i) / 7
	}
	c.Cells[5] = math.NaN()

	meta, err := st.Save(Snapshot{Source: "i/7", Time: 1.25, Frames: 3, Volume: 0.1}, c)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if meta.ID == "" {
		t.Error("expected non-empty id")
	}
	if meta.Width != 4 || meta.Height != 3 || meta.Stats.NonFinite != 1 {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	loaded, err := st.Load(meta.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Source != "i/7" || loaded.Time != 1.25 || loaded.Frames != 3 {
		t.Errorf("unexpected metadata: %+v", loaded)
	}

	back, err := st.LoadCanvas(meta.ID)
	if err != nil {
		t.Fatalf("load canvas failed: %v", err)
	}
	if !back.Equal(c) {
		t.Errorf("canvas mismatch:\n got %v\nwant %v", back.Cells, c.Cells)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{"x", "y"} {
		if _, err := st.Save(Snapshot{Source: src}, canvas.New(2, 2)); err != nil {
			t.Fatal(err)
		}
	}

	snaps, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
}

func TestStoreList_Missing(t *testing.T) {
	snaps, err := New(t.TempDir() + "/nope").List()
	if err != nil || len(snaps) != 0 {
		t.Errorf("List() on a missing dir = %v, %v", snaps, err)
	}
}

func TestStoreLoad_NotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
