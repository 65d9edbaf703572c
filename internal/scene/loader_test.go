package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crypt.json")
	content := `{
		"_id": "scene-crypt",
		"name": "The Crypt",
		"padding": 0.25,
		"grid": 100,
		"background": "maps/crypt.webp",
		"walls": [{"_id": "w1", "c": [0, 0, 300, 0], "move": 1, "sight": 1}],
		"tiles": [{"_id": "t1", "x": 50, "y": 50, "width": 128, "height": 128, "texture": {"src": "tiles/altar.png"}}]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	sc, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("Failed to load scene: %v", err)
	}
	if sc.Name != "The Crypt" || sc.Padding != 0.25 {
		t.Errorf("Expected name/padding loaded, got %q %v", sc.Name, sc.Padding)
	}
	if len(sc.Walls) != 1 || sc.Walls[0].C != [4]float64{0, 0, 300, 0} {
		t.Errorf("Expected wall loaded, got %+v", sc.Walls)
	}
	if len(sc.Tiles) != 1 || sc.Tiles[0].Texture.Src != "tiles/altar.png" {
		t.Errorf("Expected tile loaded, got %+v", sc.Tiles)
	}
}

func TestLoadSceneDirMissing(t *testing.T) {
	scenes, err := LoadSceneDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("Expected missing directory to yield no scenes, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestLoadSceneDirSkipsNonJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"name":"A"}`), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	scenes, err := LoadSceneDir(dir)
	if err != nil {
		t.Fatalf("Failed to load scene dir: %v", err)
	}
	if len(scenes) != 1 || scenes[0].Name != "A" {
		t.Errorf("Expected one scene named A, got %+v", scenes)
	}
}
