package protocol

// SceneLite is the scene summary sent in stream snapshots and listings.
type SceneLite struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Padding       float64 `json:"padding"`
	BackgroundURL string  `json:"background"`
	WallCount     int     `json:"wallCount"`
	TileCount     int     `json:"tileCount"`
}

// Snapshot is the initial state pushed to a client when it connects to the
// stream: the scene list plus the current host context.
type Snapshot struct {
	Scenes          []SceneLite `json:"scenes"`
	ActiveSceneID   string      `json:"activeSceneId"`
	ViewedSceneID   string      `json:"viewedSceneId"`
	ProtocolVersion string      `json:"protocolVersion"`
}
