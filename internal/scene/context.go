package scene

import (
	"errors"
	"sync"
)

// ErrNoActiveScene is returned when an operation needs the active editing
// target and none is set.
var ErrNoActiveScene = errors.New("no active scene")

// ErrNoViewedScene is returned when an operation needs the currently
// displayed scene and none is set.
var ErrNoViewedScene = errors.New("no viewed scene")

// ErrNoBackground is returned when an operation needs the scene's background
// image and the scene has none configured.
var ErrNoBackground = errors.New("scene has no background image")

// Context tracks which scene is the active editing target and which is
// currently displayed. The two are distinct: a user can view one scene while
// another remains the editing target.
type Context struct {
	mu       sync.Mutex
	activeID string
	viewedID string
}

// NewContext returns an empty scene context.
func NewContext() *Context {
	return &Context{}
}

// SetActive marks a scene as the active editing target.
func (c *Context) SetActive(id string) {
	c.mu.Lock()
	c.activeID = id
	c.mu.Unlock()
}

// SetViewed marks a scene as the one currently displayed.
func (c *Context) SetViewed(id string) {
	c.mu.Lock()
	c.viewedID = id
	c.mu.Unlock()
}

// ActiveID returns the active scene ID, or ErrNoActiveScene when unset.
func (c *Context) ActiveID() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeID == "" {
		return "", ErrNoActiveScene
	}
	return c.activeID, nil
}

// ViewedID returns the viewed scene ID, or ErrNoViewedScene when unset.
func (c *Context) ViewedID() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewedID == "" {
		return "", ErrNoViewedScene
	}
	return c.viewedID, nil
}
