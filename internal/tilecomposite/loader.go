package tilecomposite

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/webp"
)

// ImageLoader resolves a tile's image source into a decoded image.
type ImageLoader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// FetchLoader loads images over HTTP(S) and from local paths.
type FetchLoader struct {
	client  *http.Client
	baseDir string
}

// NewFetchLoader creates a loader. timeout applies per HTTP fetch; baseDir
// anchors relative local paths.
func NewFetchLoader(timeout time.Duration, baseDir string) *FetchLoader {
	return &FetchLoader{
		client:  &http.Client{Timeout: timeout},
		baseDir: baseDir,
	}
}

// Load fetches and decodes one image.
func (l *FetchLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return l.loadHTTP(ctx, src)
	}
	return l.loadFile(src)
}

func (l *FetchLoader) loadHTTP(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image %s: HTTP %d", src, resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", src, err)
	}
	return img, nil
}

func (l *FetchLoader) loadFile(src string) (image.Image, error) {
	path := src
	if l.baseDir != "" && !strings.HasPrefix(src, "/") {
		path = l.baseDir + "/" + src
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", src, err)
	}
	return img, nil
}
