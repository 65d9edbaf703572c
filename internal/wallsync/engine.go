package wallsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scenekit/scene-porter/internal/scene"
)

// identityField is the host-assigned document identity key. Identity from a
// foreign scene is meaningless in the destination and could collide, so it
// is removed before every creation call.
const identityField = "_id"

// DefaultBatchSize bounds the number of records per bulk-create call.
const DefaultBatchSize = 100

// ErrFormat is returned when an import payload is not a JSON array.
var ErrFormat = errors.New("payload is not a JSON array of wall records")

// ErrPreconditionDeclined is returned when the user declines the padding warning.
var ErrPreconditionDeclined = errors.New("padding confirmation declined")

// WallRecord is one portable wall segment: a plain mapping of geometry fields.
type WallRecord map[string]any

// Direction distinguishes the two transfer directions for the padding check.
type Direction string

const (
	Import Direction = "import"
	Export Direction = "export"
)

// Confirmer presents a blocking yes/no prompt; only the boolean outcome matters.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// DocumentCreator is the host surface a batch creation call goes through.
// Each call persists the records it accepts, or fails without creating any
// of them.
type DocumentCreator interface {
	CreateWallDocuments(ctx context.Context, records []WallRecord) (int, error)
}

// Logger is the logging abstraction used across the engine.
type Logger interface {
	Printf(format string, v ...interface{})
}

// ProgressFunc receives the running created count after each committed batch.
type ProgressFunc func(created, total int)

// Engine moves wall geometry between scenes through a portable JSON array.
type Engine struct {
	batchSize int
	confirmer Confirmer
	logger    Logger
}

// NewEngine creates a wall sync engine. batchSize falls back to
// DefaultBatchSize when non-positive.
func NewEngine(batchSize int, confirmer Confirmer, logger Logger) *Engine {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Engine{batchSize: batchSize, confirmer: confirmer, logger: logger}
}

// Serialize renders every wall in the collection, identity included, as a
// pretty-printed JSON array.
func Serialize(walls []scene.WallDocument) (string, error) {
	if walls == nil {
		walls = []scene.WallDocument{}
	}
	data, err := json.MarshalIndent(walls, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize walls: %w", err)
	}
	return string(data), nil
}

// ValidateImportPayload parses text as a JSON array of plain records. Record
// shape is not validated here; malformed records are rejected later by the
// host's own document-creation validation.
func ValidateImportPayload(text string) ([]WallRecord, error) {
	var records []WallRecord
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	// A JSON null unmarshals into a nil slice without error; it is still not
	// an array.
	if records == nil {
		return nil, fmt.Errorf("%w: payload is null", ErrFormat)
	}
	return records, nil
}

// StripIdentity returns a copy of record without the host identity field.
func StripIdentity(record WallRecord) WallRecord {
	stripped := make(WallRecord, len(record))
	for k, v := range record {
		if k == identityField {
			continue
		}
		stripped[k] = v
	}
	return stripped
}

// CheckPaddingPrecondition gates both transfer directions when the scene has
// a non-zero coordinate-space padding: absolute coordinates shift relative
// to the background once padding differs between source and destination.
// Returns ErrPreconditionDeclined when the user aborts.
func (e *Engine) CheckPaddingPrecondition(ctx context.Context, padding float64, dir Direction) error {
	if padding == 0 {
		return nil
	}
	prompt := fmt.Sprintf(
		"This scene has a padding of %v. Wall coordinates may shift when %sed into a scene with different padding. Continue?",
		padding, dir,
	)
	ok, err := e.confirmer.Confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("padding confirmation: %w", err)
	}
	if !ok {
		return ErrPreconditionDeclined
	}
	return nil
}

// ApplyImport strips identity from every record, partitions the bundle into
// batches and issues one bulk-create call per batch, sequentially. Earlier
// batches stay committed when a later batch fails; the returned count is
// what the host accepted before the error.
func (e *Engine) ApplyImport(ctx context.Context, host DocumentCreator, bundle []WallRecord, progress ProgressFunc) (int, error) {
	total := len(bundle)
	stripped := make([]WallRecord, total)
	for i, record := range bundle {
		stripped[i] = StripIdentity(record)
	}

	created := 0
	for start := 0; start < total; start += e.batchSize {
		end := min(start+e.batchSize, total)
		n, err := host.CreateWallDocuments(ctx, stripped[start:end])
		created += n
		if err != nil {
			return created, fmt.Errorf("wall batch %d-%d: %w", start, end, err)
		}
		if e.logger != nil {
			e.logger.Printf("imported %d/%d walls", created, total)
		}
		if progress != nil {
			progress(created, total)
		}
	}
	return created, nil
}
