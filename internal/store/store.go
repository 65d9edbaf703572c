package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/scenekit/scene-porter/internal/scene"
)

// ErrSceneNotFound is returned when a scene ID has no row.
var ErrSceneNotFound = errors.New("scene not found")

// SceneStore provides persistence for scenes and their embedded wall and
// tile collections. Collections are stored as JSON alongside the scene row;
// the store is the host's document store, not a queryable geometry index.
type SceneStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the scene database at path.
func Open(path string) (*SceneStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open scene database: %w", err)
	}
	s := &SceneStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSceneStore creates a SceneStore backed by an already-open database.
func NewSceneStore(db *sql.DB) (*SceneStore, error) {
	s := &SceneStore{db: db}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SceneStore) init() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scenes (
			scene_id       TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			padding        REAL NOT NULL DEFAULT 0,
			grid_size      INTEGER NOT NULL DEFAULT 100,
			background_url TEXT NOT NULL DEFAULT '',
			walls_json     TEXT NOT NULL DEFAULT '[]',
			tiles_json     TEXT NOT NULL DEFAULT '[]'
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create scenes table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SceneStore) Close() error {
	return s.db.Close()
}

// InsertScene creates a new scene row. If sc.ID is empty, a new UUID is assigned.
func (s *SceneStore) InsertScene(sc *scene.Scene) error {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	walls, tiles, err := marshalCollections(sc)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO scenes (scene_id, name, padding, grid_size, background_url, walls_json, tiles_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := s.db.Exec(query, sc.ID, sc.Name, sc.Padding, sc.GridSize, sc.BackgroundURL, walls, tiles); err != nil {
		return fmt.Errorf("insert scene: %w", err)
	}
	return nil
}

// SaveScene overwrites an existing scene row, embedded collections included.
func (s *SceneStore) SaveScene(sc *scene.Scene) error {
	walls, tiles, err := marshalCollections(sc)
	if err != nil {
		return err
	}
	query := `
		UPDATE scenes
		SET name = ?, padding = ?, grid_size = ?, background_url = ?, walls_json = ?, tiles_json = ?
		WHERE scene_id = ?
	`
	res, err := s.db.Exec(query, sc.Name, sc.Padding, sc.GridSize, sc.BackgroundURL, walls, tiles, sc.ID)
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("save scene %s: %w", sc.ID, ErrSceneNotFound)
	}
	return nil
}

// GetScene retrieves a scene with its embedded collections.
func (s *SceneStore) GetScene(sceneID string) (*scene.Scene, error) {
	query := `
		SELECT scene_id, name, padding, grid_size, background_url, walls_json, tiles_json
		FROM scenes
		WHERE scene_id = ?
	`
	var sc scene.Scene
	var walls, tiles string
	err := s.db.QueryRow(query, sceneID).Scan(
		&sc.ID, &sc.Name, &sc.Padding, &sc.GridSize, &sc.BackgroundURL, &walls, &tiles,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scene %s: %w", sceneID, ErrSceneNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get scene: %w", err)
	}
	if err := json.Unmarshal([]byte(walls), &sc.Walls); err != nil {
		return nil, fmt.Errorf("decode walls for scene %s: %w", sceneID, err)
	}
	if err := json.Unmarshal([]byte(tiles), &sc.Tiles); err != nil {
		return nil, fmt.Errorf("decode tiles for scene %s: %w", sceneID, err)
	}
	return &sc, nil
}

// ListScenes returns every scene with its embedded collections, ordered by name.
func (s *SceneStore) ListScenes() ([]scene.Scene, error) {
	query := `
		SELECT scene_id, name, padding, grid_size, background_url, walls_json, tiles_json
		FROM scenes
		ORDER BY name
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	var scenes []scene.Scene
	for rows.Next() {
		var sc scene.Scene
		var walls, tiles string
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Padding, &sc.GridSize, &sc.BackgroundURL, &walls, &tiles); err != nil {
			return nil, fmt.Errorf("scan scene row: %w", err)
		}
		if err := json.Unmarshal([]byte(walls), &sc.Walls); err != nil {
			return nil, fmt.Errorf("decode walls for scene %s: %w", sc.ID, err)
		}
		if err := json.Unmarshal([]byte(tiles), &sc.Tiles); err != nil {
			return nil, fmt.Errorf("decode tiles for scene %s: %w", sc.ID, err)
		}
		scenes = append(scenes, sc)
	}
	return scenes, rows.Err()
}

func marshalCollections(sc *scene.Scene) (walls, tiles string, err error) {
	w, err := json.Marshal(sc.Walls)
	if err != nil {
		return "", "", fmt.Errorf("encode walls: %w", err)
	}
	t, err := json.Marshal(sc.Tiles)
	if err != nil {
		return "", "", fmt.Errorf("encode tiles: %w", err)
	}
	return string(w), string(t), nil
}
