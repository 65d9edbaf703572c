package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/scenekit/scene-porter/internal/scene"
)

func openTestStore(t *testing.T) *SceneStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scenes.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndGetScene(t *testing.T) {
	s := openTestStore(t)

	sc := &scene.Scene{
		Name:          "Throne Room",
		Padding:       0.25,
		GridSize:      100,
		BackgroundURL: "maps/throne.webp",
		Walls: []scene.WallDocument{
			{ID: "w1", C: [4]float64{0, 0, 300, 0}, Move: 1, Sight: 1},
		},
		Tiles: []scene.TileDocument{
			{ID: "t1", X: 50, Y: 50, Width: 128, Height: 128, Texture: &scene.TextureRef{Src: "tiles/rug.png"}},
		},
	}
	if err := s.InsertScene(sc); err != nil {
		t.Fatalf("Failed to insert scene: %v", err)
	}
	if sc.ID == "" {
		t.Fatal("Expected generated scene ID")
	}

	got, err := s.GetScene(sc.ID)
	if err != nil {
		t.Fatalf("Failed to get scene: %v", err)
	}
	if got.Name != "Throne Room" || got.Padding != 0.25 {
		t.Errorf("Expected name/padding round-trip, got %q padding=%v", got.Name, got.Padding)
	}
	if len(got.Walls) != 1 || got.Walls[0].C != [4]float64{0, 0, 300, 0} {
		t.Errorf("Expected wall collection round-trip, got %+v", got.Walls)
	}
	if len(got.Tiles) != 1 || got.Tiles[0].Texture == nil || got.Tiles[0].Texture.Src != "tiles/rug.png" {
		t.Errorf("Expected tile collection round-trip, got %+v", got.Tiles)
	}
}

func TestSaveScenePersistsCollections(t *testing.T) {
	s := openTestStore(t)

	sc := &scene.Scene{Name: "Cave"}
	if err := s.InsertScene(sc); err != nil {
		t.Fatalf("Failed to insert scene: %v", err)
	}

	sc.Walls = append(sc.Walls, scene.WallDocument{ID: "w1", C: [4]float64{1, 2, 3, 4}})
	if err := s.SaveScene(sc); err != nil {
		t.Fatalf("Failed to save scene: %v", err)
	}

	got, err := s.GetScene(sc.ID)
	if err != nil {
		t.Fatalf("Failed to get scene: %v", err)
	}
	if len(got.Walls) != 1 {
		t.Fatalf("Expected 1 wall after save, got %d", len(got.Walls))
	}
}

func TestSaveSceneUnknownID(t *testing.T) {
	s := openTestStore(t)
	err := s.SaveScene(&scene.Scene{ID: "missing", Name: "Nowhere"})
	if !errors.Is(err, ErrSceneNotFound) {
		t.Fatalf("Expected ErrSceneNotFound, got %v", err)
	}
}

func TestGetSceneUnknownID(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetScene("missing"); !errors.Is(err, ErrSceneNotFound) {
		t.Fatalf("Expected ErrSceneNotFound, got %v", err)
	}
}

func TestListScenesOrderedByName(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"Zephyr Keep", "Armory"} {
		if err := s.InsertScene(&scene.Scene{Name: name}); err != nil {
			t.Fatalf("Failed to insert %s: %v", name, err)
		}
	}

	scenes, err := s.ListScenes()
	if err != nil {
		t.Fatalf("Failed to list scenes: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].Name != "Armory" || scenes[1].Name != "Zephyr Keep" {
		t.Errorf("Expected name ordering, got %q then %q", scenes[0].Name, scenes[1].Name)
	}
}
