package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"

	"github.com/scenekit/scene-porter/internal/config"
	"github.com/scenekit/scene-porter/internal/platform"
	"github.com/scenekit/scene-porter/internal/protocol"
	"github.com/scenekit/scene-porter/internal/scene"
	"github.com/scenekit/scene-porter/internal/store"
	"github.com/scenekit/scene-porter/internal/tilecomposite"
	"github.com/scenekit/scene-porter/internal/ws"
)

func main() {
	configPath := os.Getenv("PORTER_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sceneStore, err := store.Open(cfg.Database.GetPath())
	if err != nil {
		log.Fatalf("failed to open scene store: %v", err)
	}
	defer sceneStore.Close()

	logger := NewLogger()
	sceneContext := scene.NewContext()
	svc := NewSceneService(sceneStore, sceneContext, logger)

	if err := seedScenes(sceneStore, sceneContext, logger); err != nil {
		log.Fatalf("failed to seed scenes: %v", err)
	}

	hub := ws.NewHub()
	sequence := NewSequenceGenerator()
	broadcaster := NewBroadcaster(hub, sequence)

	loader := tilecomposite.NewFetchLoader(time.Duration(cfg.Composite.GetImageTimeoutSecs())*time.Second, "")
	compositor := tilecomposite.NewCompositor(loader, logger, cfg.Composite.GetMaxDimension())

	clipboard := platform.Clipboard(platform.NewSystemClipboard())
	if os.Getenv("PORTER_CLIPBOARD") == "memory" {
		clipboard = platform.NewMemoryClipboard()
	}
	saver := platform.NewDirSaver(cfg.Export.GetDownloadsDir())

	handlers := NewHandlers(svc, compositor, clipboard, saver, broadcaster, logger, cfg.WallSync.GetBatchSize())

	mux := http.NewServeMux()
	registerRoutes(mux, handlers)

	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		hub.Add(conn)

		active, viewed := svc.ContextIDs()
		scenes, _ := svc.List()
		hello := protocol.PatchEnvelope{
			Sequence: 0,
			EventID:  0,
			Type:     "Snapshot",
			Payload: protocol.Snapshot{
				Scenes:          scenes,
				ActiveSceneID:   active,
				ViewedSceneID:   viewed,
				ProtocolVersion: "v1",
			},
		}
		data, _ := json.Marshal(hello)
		_ = conn.Write(context.Background(), websocket.MessageText, data)

		go func(c *websocket.Conn) {
			defer hub.Remove(c)
			defer c.Close(websocket.StatusNormalClosure, "")
			for {
				if _, _, err := c.Read(context.Background()); err != nil {
					return
				}
			}
		}(conn)
	})

	port := cfg.Server.GetPort()
	log.Printf("listening on :%d", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
}

func registerRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /api/scenes", h.handleListScenes)
	mux.HandleFunc("GET /api/scenes/{id}", h.handleGetScene)
	mux.HandleFunc("POST /api/scenes/{id}/activate", h.handleActivateScene)
	mux.HandleFunc("POST /api/scenes/{id}/view", h.handleViewScene)

	mux.HandleFunc("POST /api/walls/import/clipboard", h.handleImportWallsFromClipboard)
	mux.HandleFunc("POST /api/walls/import/file", h.handleImportWallsFromFile)
	mux.HandleFunc("POST /api/walls/export/clipboard", h.handleExportWallsToClipboard)
	mux.HandleFunc("GET /api/walls/export/file", h.handleExportWallsToFile)

	mux.HandleFunc("POST /api/background/copy-url", h.handleCopyBackgroundURL)
	mux.HandleFunc("GET /api/tiles/composite", h.handleExportTilesImage)
}

// seedScenes loads scene fixtures on first run and primes the host context
// so the user starts with a scene in hand.
func seedScenes(sceneStore *store.SceneStore, sceneContext *scene.Context, logger Logger) error {
	existing, err := sceneStore.ListScenes()
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		dir := os.Getenv("PORTER_SCENES_DIR")
		if dir == "" {
			dir = "scenes"
		}
		fixtures, err := scene.LoadSceneDir(dir)
		if err != nil {
			return err
		}
		for _, sc := range fixtures {
			if err := sceneStore.InsertScene(sc); err != nil {
				return err
			}
			logger.Printf("seeded scene %s (%s)", sc.Name, sc.ID)
		}
		existing, err = sceneStore.ListScenes()
		if err != nil {
			return err
		}
	}
	if len(existing) > 0 {
		sceneContext.SetActive(existing[0].ID)
		sceneContext.SetViewed(existing[0].ID)
		logger.Printf("context primed with scene %s", existing[0].Name)
	}
	return nil
}
