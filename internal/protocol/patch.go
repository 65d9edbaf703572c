package protocol

// PatchEnvelope wraps every message pushed over the stream.
type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	EventID  int64  `json:"eventId"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// Notification is a user-visible message produced at an operation boundary.
type Notification struct {
	Level   string `json:"level"` // "info", "warn", "error"
	Message string `json:"message"`
}

// ImportProgress reports wall import progress between batches.
type ImportProgress struct {
	SceneID string `json:"sceneId"`
	Created int    `json:"created"`
	Total   int    `json:"total"`
}

// CompositeFinished reports the outcome of a tile composite export.
type CompositeFinished struct {
	SceneID   string `json:"sceneId"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ContextChanged reports a change of the active or viewed scene.
type ContextChanged struct {
	ActiveSceneID string `json:"activeSceneId"`
	ViewedSceneID string `json:"viewedSceneId"`
}
