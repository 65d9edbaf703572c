package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/scenekit/scene-porter/internal/platform"
	"github.com/scenekit/scene-porter/internal/protocol"
	"github.com/scenekit/scene-porter/internal/scene"
	"github.com/scenekit/scene-porter/internal/tilecomposite"
	"github.com/scenekit/scene-porter/internal/wallsync"
)

// maxUploadBytes bounds wall bundle uploads.
const maxUploadBytes = 32 << 20

// Handlers carries the collaborators behind the user-facing operations.
type Handlers struct {
	svc         *SceneService
	compositor  *tilecomposite.Compositor
	clipboard   platform.Clipboard
	saver       platform.FileSaver
	broadcaster Broadcaster
	logger      Logger
	batchSize   int
}

func NewHandlers(svc *SceneService, compositor *tilecomposite.Compositor, clipboard platform.Clipboard, saver platform.FileSaver, broadcaster Broadcaster, logger Logger, batchSize int) *Handlers {
	return &Handlers{
		svc:         svc,
		compositor:  compositor,
		clipboard:   clipboard,
		saver:       saver,
		broadcaster: broadcaster,
		logger:      logger,
		batchSize:   batchSize,
	}
}

// notify surfaces a user-visible message on the stream and the server log.
func (h *Handlers) notify(level, message string) {
	h.logger.Printf("[%s] %s", level, message)
	h.broadcaster.BroadcastEvent("Notification", protocol.Notification{Level: level, Message: message})
}

// fail converts any operation failure into one notification and one response.
func (h *Handlers) fail(w http.ResponseWriter, err error) {
	oe, status := classify(err)
	h.notify("error", oe.Message)
	http.Error(w, oe.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// engineFor builds a wall sync engine whose padding prompt is answered by
// the request's confirm flag; a declined prompt aborts the operation.
func (h *Handlers) engineFor(r *http.Request) *wallsync.Engine {
	confirmed := r.URL.Query().Get("confirm") == "true"
	return wallsync.NewEngine(h.batchSize, staticConfirmer{confirmed: confirmed}, h.logger)
}

// --- scene context ---

func (h *Handlers) handleListScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := h.svc.List()
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, scenes)
}

func (h *Handlers) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sc, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, sc)
}

func (h *Handlers) handleActivateScene(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Activate(r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	h.broadcastContext()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) handleViewScene(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.View(r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	h.broadcastContext()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) broadcastContext() {
	active, viewed := h.svc.ContextIDs()
	h.broadcaster.BroadcastEvent("ContextChanged", protocol.ContextChanged{
		ActiveSceneID: active,
		ViewedSceneID: viewed,
	})
}

// --- wall sync: import ---

func (h *Handlers) handleImportWallsFromClipboard(w http.ResponseWriter, r *http.Request) {
	text, err := h.clipboard.ReadText()
	if err != nil {
		h.fail(w, fmt.Errorf("read clipboard: %w", err))
		return
	}
	h.importWalls(w, r, text)
}

func (h *Handlers) handleImportWallsFromFile(w http.ResponseWriter, r *http.Request) {
	text, err := readUpload(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.importWalls(w, r, text)
}

func (h *Handlers) importWalls(w http.ResponseWriter, r *http.Request, text string) {
	sc, err := h.svc.ActiveScene()
	if err != nil {
		h.fail(w, err)
		return
	}
	engine := h.engineFor(r)
	if err := engine.CheckPaddingPrecondition(r.Context(), sc.Padding, wallsync.Import); err != nil {
		h.fail(w, err)
		return
	}
	bundle, err := wallsync.ValidateImportPayload(text)
	if err != nil {
		h.fail(w, err)
		return
	}

	created, err := engine.ApplyImport(r.Context(), h.svc.WallCreatorFor(sc), bundle, func(created, total int) {
		h.broadcaster.BroadcastEvent("ImportProgress", protocol.ImportProgress{
			SceneID: sc.ID,
			Created: created,
			Total:   total,
		})
	})
	if err != nil {
		// Earlier batches stay committed; tell the user how far it got.
		oe, status := classify(err)
		h.notify("error", fmt.Sprintf("wall import into %s stopped after %d of %d records: %s", sc.Name, created, len(bundle), oe.Message))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"created": created, "total": len(bundle), "error": oe.Code})
		return
	}

	h.notify("info", fmt.Sprintf("imported %d walls into %s", created, sc.Name))
	writeJSON(w, map[string]any{"created": created, "total": len(bundle)})
}

func readUpload(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		file, _, ferr := r.FormFile("file")
		if ferr == nil {
			defer file.Close()
			data, rerr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
			if rerr != nil {
				return "", fmt.Errorf("read uploaded file: %w", rerr)
			}
			return string(data), nil
		}
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("read request body: %w", err)
	}
	return string(data), nil
}

// --- wall sync: export ---

func (h *Handlers) handleExportWallsToClipboard(w http.ResponseWriter, r *http.Request) {
	sc, text, err := h.exportWalls(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.clipboard.WriteText(text); err != nil {
		h.fail(w, fmt.Errorf("write clipboard: %w", err))
		return
	}
	h.notify("info", fmt.Sprintf("copied %d walls from %s to clipboard", len(sc.Walls), sc.Name))
	writeJSON(w, map[string]any{"walls": len(sc.Walls)})
}

func (h *Handlers) handleExportWallsToFile(w http.ResponseWriter, r *http.Request) {
	sc, text, err := h.exportWalls(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	filename := platform.SuggestedFilename(sc.Name, "json")

	if r.URL.Query().Get("mode") == "save" {
		path, err := h.saver.Save(filename, []byte(text))
		if err != nil {
			h.fail(w, err)
			return
		}
		h.notify("info", fmt.Sprintf("exported %d walls from %s to %s", len(sc.Walls), sc.Name, path))
		writeJSON(w, map[string]any{"walls": len(sc.Walls), "path": path})
		return
	}

	h.notify("info", fmt.Sprintf("exported %d walls from %s", len(sc.Walls), sc.Name))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	io.WriteString(w, text)
}

func (h *Handlers) exportWalls(r *http.Request) (*scene.Scene, string, error) {
	sc, err := h.svc.ActiveScene()
	if err != nil {
		return nil, "", err
	}
	engine := h.engineFor(r)
	if err := engine.CheckPaddingPrecondition(r.Context(), sc.Padding, wallsync.Export); err != nil {
		return nil, "", err
	}
	text, err := wallsync.Serialize(sc.Walls)
	if err != nil {
		return nil, "", err
	}
	return sc, text, nil
}

// --- background URL ---

func (h *Handlers) handleCopyBackgroundURL(w http.ResponseWriter, r *http.Request) {
	sc, err := h.svc.ViewedScene()
	if err != nil {
		h.fail(w, err)
		return
	}
	if sc.BackgroundURL == "" {
		h.fail(w, fmt.Errorf("%w: %s", scene.ErrNoBackground, sc.Name))
		return
	}
	if err := h.clipboard.WriteText(sc.BackgroundURL); err != nil {
		h.fail(w, fmt.Errorf("write clipboard: %w", err))
		return
	}
	h.notify("info", fmt.Sprintf("copied background URL of %s to clipboard", sc.Name))
	writeJSON(w, map[string]any{"url": sc.BackgroundURL})
}

// --- tile composite ---

func (h *Handlers) handleExportTilesImage(w http.ResponseWriter, r *http.Request) {
	sc, err := h.svc.ViewedScene()
	if err != nil {
		h.fail(w, err)
		return
	}

	data, result, err := h.compositor.Composite(r.Context(), sc.Tiles)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.broadcaster.BroadcastEvent("CompositeFinished", protocol.CompositeFinished{
		SceneID:   sc.ID,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Width:     result.Width,
		Height:    result.Height,
	})
	if result.Failed > 0 {
		h.notify("warn", fmt.Sprintf("composite of %s finished with %d of %d tiles missing", sc.Name, result.Failed, result.Failed+result.Succeeded))
	} else {
		h.notify("info", fmt.Sprintf("composited %d tiles from %s", result.Succeeded, sc.Name))
	}

	filename := platform.SuggestedFilename(sc.Name, "png")
	if r.URL.Query().Get("mode") == "save" {
		path, err := h.saver.Save(filename, data)
		if err != nil {
			h.fail(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"succeeded": result.Succeeded,
			"failed":    result.Failed,
			"path":      path,
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
