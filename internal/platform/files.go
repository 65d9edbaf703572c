package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SuggestedFilename derives a download filename from a scene name: whitespace
// runs become single underscores, and the extension is appended.
func SuggestedFilename(sceneName, ext string) string {
	name := strings.Join(strings.Fields(sceneName), "_")
	if name == "" {
		name = "scene"
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}

// FileSaver persists an export blob for the user.
type FileSaver interface {
	Save(filename string, data []byte) (string, error)
}

// DirSaver writes exports into a downloads directory.
type DirSaver struct {
	dir string
}

func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{dir: dir}
}

// Save writes data under the saver's directory and returns the full path.
func (s *DirSaver) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads directory: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", filename, err)
	}
	return path, nil
}
