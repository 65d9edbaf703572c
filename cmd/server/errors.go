package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/scenekit/scene-porter/internal/scene"
	"github.com/scenekit/scene-porter/internal/store"
	"github.com/scenekit/scene-porter/internal/tilecomposite"
	"github.com/scenekit/scene-porter/internal/wallsync"
)

// OperationError represents a failure surfaced to the user
type OperationError struct {
	Code    string
	Message string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// classify maps any operation failure onto a user-visible code and an HTTP
// status. Everything lands here; nothing escapes the operation boundary.
func classify(err error) (*OperationError, int) {
	var verr *scene.ValidationError
	switch {
	case errors.Is(err, wallsync.ErrFormat):
		return &OperationError{Code: "FORMAT_ERROR", Message: "clipboard or file contents are not a JSON array of wall records"}, http.StatusBadRequest
	case errors.Is(err, wallsync.ErrPreconditionDeclined):
		return &OperationError{Code: "PRECONDITION_DECLINED", Message: "operation aborted: scene padding warning was declined"}, http.StatusConflict
	case errors.Is(err, scene.ErrNoActiveScene):
		return &OperationError{Code: "NO_ACTIVE_SCENE", Message: "no active scene to operate on"}, http.StatusConflict
	case errors.Is(err, scene.ErrNoViewedScene):
		return &OperationError{Code: "NO_VIEWED_SCENE", Message: "no viewed scene to operate on"}, http.StatusConflict
	case errors.Is(err, scene.ErrNoBackground):
		return &OperationError{Code: "NO_BACKGROUND", Message: err.Error()}, http.StatusConflict
	case errors.Is(err, store.ErrSceneNotFound):
		return &OperationError{Code: "SCENE_NOT_FOUND", Message: "scene does not exist"}, http.StatusNotFound
	case errors.Is(err, tilecomposite.ErrSizeLimit):
		return &OperationError{Code: "SIZE_LIMIT", Message: err.Error()}, http.StatusRequestEntityTooLarge
	case errors.Is(err, tilecomposite.ErrEncode):
		return &OperationError{Code: "ENCODE_ERROR", Message: "composite image encoding produced no data"}, http.StatusInternalServerError
	case errors.As(err, &verr):
		return &OperationError{Code: "VALIDATION_ERROR", Message: verr.Error()}, http.StatusUnprocessableEntity
	default:
		return &OperationError{Code: "OPERATION_FAILED", Message: err.Error()}, http.StatusInternalServerError
	}
}
