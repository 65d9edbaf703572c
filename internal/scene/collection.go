package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnknownCollection is returned for a collection name the scene does not embed.
var ErrUnknownCollection = errors.New("unknown embedded collection")

// ValidationError describes why a record was rejected during embedded-document creation.
type ValidationError struct {
	Collection string
	Index      int
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s record at index %d: %s", e.Collection, e.Index, e.Reason)
}

// CreateEmbeddedDocuments validates a batch of plain records, assigns fresh
// identities and appends the resulting documents to the named collection.
// The call is all-or-nothing: any invalid record rejects the whole batch and
// leaves the scene unchanged. Returns the IDs assigned to the created
// documents, in input order.
func (s *Scene) CreateEmbeddedDocuments(collection string, records []map[string]any) ([]string, error) {
	switch collection {
	case WallCollection:
		return s.createWalls(records)
	case TileCollection:
		return s.createTiles(records)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
}

func (s *Scene) createWalls(records []map[string]any) ([]string, error) {
	docs := make([]WallDocument, 0, len(records))
	ids := make([]string, 0, len(records))
	for i, record := range records {
		if reason := validateWallRecord(record); reason != "" {
			return nil, &ValidationError{Collection: WallCollection, Index: i, Reason: reason}
		}
		var doc WallDocument
		if err := decodeRecord(record, &doc); err != nil {
			return nil, &ValidationError{Collection: WallCollection, Index: i, Reason: err.Error()}
		}
		doc.ID = uuid.NewString()
		docs = append(docs, doc)
		ids = append(ids, doc.ID)
	}
	s.Walls = append(s.Walls, docs...)
	return ids, nil
}

func (s *Scene) createTiles(records []map[string]any) ([]string, error) {
	docs := make([]TileDocument, 0, len(records))
	ids := make([]string, 0, len(records))
	for i, record := range records {
		if reason := validateTileRecord(record); reason != "" {
			return nil, &ValidationError{Collection: TileCollection, Index: i, Reason: reason}
		}
		var doc TileDocument
		if err := decodeRecord(record, &doc); err != nil {
			return nil, &ValidationError{Collection: TileCollection, Index: i, Reason: err.Error()}
		}
		doc.ID = uuid.NewString()
		docs = append(docs, doc)
		ids = append(ids, doc.ID)
	}
	s.Tiles = append(s.Tiles, docs...)
	return ids, nil
}

func validateWallRecord(record map[string]any) string {
	raw, ok := record["c"]
	if !ok {
		return "missing endpoints field c"
	}
	coords, ok := raw.([]any)
	if !ok {
		return "endpoints field c is not an array"
	}
	if len(coords) != 4 {
		return fmt.Sprintf("endpoints field c has %d values, want 4", len(coords))
	}
	for i, v := range coords {
		if _, ok := asNumber(v); !ok {
			return fmt.Sprintf("endpoint coordinate %d is not a number", i)
		}
	}
	return ""
}

func validateTileRecord(record map[string]any) string {
	for _, field := range []string{"x", "y"} {
		if raw, ok := record[field]; ok {
			if _, isNum := asNumber(raw); !isNum {
				return fmt.Sprintf("field %s is not a number", field)
			}
		}
	}
	for _, field := range []string{"width", "height"} {
		raw, ok := record[field]
		if !ok {
			continue
		}
		n, isNum := asNumber(raw)
		if !isNum {
			return fmt.Sprintf("field %s is not a number", field)
		}
		if n < 0 {
			return fmt.Sprintf("field %s is negative", field)
		}
	}
	return ""
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// decodeRecord maps a plain record onto a typed document through JSON, which
// matches how records arrive from portable bundles in the first place.
func decodeRecord(record map[string]any, out any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
