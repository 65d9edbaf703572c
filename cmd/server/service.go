package main

import (
	"context"
	"fmt"

	"github.com/scenekit/scene-porter/internal/protocol"
	"github.com/scenekit/scene-porter/internal/scene"
	"github.com/scenekit/scene-porter/internal/store"
	"github.com/scenekit/scene-porter/internal/wallsync"
)

// SceneService exposes the host scene context: which scene is active, which
// is viewed, and persisted access to both.
type SceneService struct {
	store   *store.SceneStore
	context *scene.Context
	logger  Logger
}

func NewSceneService(st *store.SceneStore, ctx *scene.Context, logger Logger) *SceneService {
	return &SceneService{store: st, context: ctx, logger: logger}
}

// List returns summaries of every scene.
func (s *SceneService) List() ([]protocol.SceneLite, error) {
	scenes, err := s.store.ListScenes()
	if err != nil {
		return nil, err
	}
	summaries := make([]protocol.SceneLite, len(scenes))
	for i, sc := range scenes {
		summaries[i] = summarize(&sc)
	}
	return summaries, nil
}

// Get returns one scene with its embedded collections.
func (s *SceneService) Get(id string) (*scene.Scene, error) {
	return s.store.GetScene(id)
}

// Activate marks a scene as the active editing target.
func (s *SceneService) Activate(id string) error {
	if _, err := s.store.GetScene(id); err != nil {
		return err
	}
	s.context.SetActive(id)
	s.logger.Printf("active scene is now %s", id)
	return nil
}

// View marks a scene as the one currently displayed.
func (s *SceneService) View(id string) error {
	if _, err := s.store.GetScene(id); err != nil {
		return err
	}
	s.context.SetViewed(id)
	s.logger.Printf("viewed scene is now %s", id)
	return nil
}

// ActiveScene loads the active editing target.
func (s *SceneService) ActiveScene() (*scene.Scene, error) {
	id, err := s.context.ActiveID()
	if err != nil {
		return nil, err
	}
	return s.store.GetScene(id)
}

// ViewedScene loads the currently displayed scene.
func (s *SceneService) ViewedScene() (*scene.Scene, error) {
	id, err := s.context.ViewedID()
	if err != nil {
		return nil, err
	}
	return s.store.GetScene(id)
}

// ContextIDs returns the current context for snapshots, empty when unset.
func (s *SceneService) ContextIDs() (active, viewed string) {
	if id, err := s.context.ActiveID(); err == nil {
		active = id
	}
	if id, err := s.context.ViewedID(); err == nil {
		viewed = id
	}
	return active, viewed
}

// WallCreatorFor returns the bulk-create surface for one scene. Each call
// persists its batch before returning, so earlier batches stay committed
// when a later one fails.
func (s *SceneService) WallCreatorFor(sc *scene.Scene) wallsync.DocumentCreator {
	return &wallCreator{store: s.store, sc: sc}
}

type wallCreator struct {
	store *store.SceneStore
	sc    *scene.Scene
}

func (w *wallCreator) CreateWallDocuments(ctx context.Context, records []wallsync.WallRecord) (int, error) {
	plain := make([]map[string]any, len(records))
	for i, r := range records {
		plain[i] = map[string]any(r)
	}
	before := len(w.sc.Walls)
	ids, err := w.sc.CreateEmbeddedDocuments(scene.WallCollection, plain)
	if err != nil {
		return 0, err
	}
	if err := w.store.SaveScene(w.sc); err != nil {
		w.sc.Walls = w.sc.Walls[:before]
		return 0, fmt.Errorf("persist wall batch: %w", err)
	}
	return len(ids), nil
}

func summarize(sc *scene.Scene) protocol.SceneLite {
	return protocol.SceneLite{
		ID:            sc.ID,
		Name:          sc.Name,
		Padding:       sc.Padding,
		BackgroundURL: sc.BackgroundURL,
		WallCount:     len(sc.Walls),
		TileCount:     len(sc.Tiles),
	}
}
