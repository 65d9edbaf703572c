package scene

import (
	"errors"
	"testing"
)

func wallRecord(x0, y0, x1, y1 float64) map[string]any {
	return map[string]any{
		"c":     []any{x0, y0, x1, y1},
		"move":  1,
		"sight": 1,
	}
}

func TestCreateEmbeddedDocuments_Walls(t *testing.T) {
	s := &Scene{ID: "scene-1", Name: "Crypt"}

	ids, err := s.CreateEmbeddedDocuments(WallCollection, []map[string]any{
		wallRecord(0, 0, 100, 0),
		wallRecord(100, 0, 100, 100),
	})
	if err != nil {
		t.Fatalf("Failed to create walls: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 created IDs, got %d", len(ids))
	}
	if len(s.Walls) != 2 {
		t.Fatalf("Expected 2 walls in scene, got %d", len(s.Walls))
	}
	if s.Walls[0].ID == "" || s.Walls[1].ID == "" {
		t.Errorf("Expected fresh identity on created walls, got %q and %q", s.Walls[0].ID, s.Walls[1].ID)
	}
	if s.Walls[0].ID == s.Walls[1].ID {
		t.Errorf("Expected distinct identities, both were %q", s.Walls[0].ID)
	}
	if s.Walls[1].C != [4]float64{100, 0, 100, 100} {
		t.Errorf("Expected endpoints preserved, got %v", s.Walls[1].C)
	}
}

func TestCreateEmbeddedDocuments_ForeignIdentityIgnored(t *testing.T) {
	s := &Scene{ID: "scene-1"}
	record := wallRecord(0, 0, 10, 10)
	record["_id"] = "foreign-id"

	if _, err := s.CreateEmbeddedDocuments(WallCollection, []map[string]any{record}); err != nil {
		t.Fatalf("Failed to create wall: %v", err)
	}
	if s.Walls[0].ID == "foreign-id" {
		t.Errorf("Expected host-assigned identity, kept foreign one")
	}
}

func TestCreateEmbeddedDocuments_RejectsWholeBatch(t *testing.T) {
	s := &Scene{ID: "scene-1"}
	records := []map[string]any{
		wallRecord(0, 0, 10, 10),
		{"c": []any{1.0, 2.0}}, // short endpoint array
		wallRecord(5, 5, 6, 6),
	}

	_, err := s.CreateEmbeddedDocuments(WallCollection, records)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %T: %v", err, err)
	}
	if verr.Index != 1 {
		t.Errorf("Expected rejection at index 1, got %d", verr.Index)
	}
	if len(s.Walls) != 0 {
		t.Errorf("Expected scene unchanged after rejected batch, got %d walls", len(s.Walls))
	}
}

func TestCreateEmbeddedDocuments_Tiles(t *testing.T) {
	s := &Scene{ID: "scene-1"}
	records := []map[string]any{
		{"x": 10.0, "y": 20.0, "width": 64.0, "height": 64.0, "texture": map[string]any{"src": "tiles/floor.png"}},
	}

	ids, err := s.CreateEmbeddedDocuments(TileCollection, records)
	if err != nil {
		t.Fatalf("Failed to create tile: %v", err)
	}
	if len(ids) != 1 || len(s.Tiles) != 1 {
		t.Fatalf("Expected 1 created tile, got ids=%d tiles=%d", len(ids), len(s.Tiles))
	}
	tile := s.Tiles[0]
	if tile.Texture == nil || tile.Texture.Src != "tiles/floor.png" {
		t.Errorf("Expected texture source preserved, got %+v", tile.Texture)
	}
}

func TestCreateEmbeddedDocuments_RejectsNegativeTileSize(t *testing.T) {
	s := &Scene{ID: "scene-1"}
	_, err := s.CreateEmbeddedDocuments(TileCollection, []map[string]any{
		{"x": 0.0, "y": 0.0, "width": -5.0, "height": 10.0},
	})
	if err == nil {
		t.Fatal("Expected validation error for negative width, got nil")
	}
}

func TestCreateEmbeddedDocuments_UnknownCollection(t *testing.T) {
	s := &Scene{ID: "scene-1"}
	_, err := s.CreateEmbeddedDocuments("lights", nil)
	if !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("Expected ErrUnknownCollection, got %v", err)
	}
}

func TestContextDistinguishesActiveAndViewed(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.ActiveID(); !errors.Is(err, ErrNoActiveScene) {
		t.Fatalf("Expected ErrNoActiveScene, got %v", err)
	}
	if _, err := ctx.ViewedID(); !errors.Is(err, ErrNoViewedScene) {
		t.Fatalf("Expected ErrNoViewedScene, got %v", err)
	}

	ctx.SetActive("scene-a")
	ctx.SetViewed("scene-b")

	active, err := ctx.ActiveID()
	if err != nil || active != "scene-a" {
		t.Errorf("Expected active scene-a, got %q (%v)", active, err)
	}
	viewed, err := ctx.ViewedID()
	if err != nil || viewed != "scene-b" {
		t.Errorf("Expected viewed scene-b, got %q (%v)", viewed, err)
	}
}
