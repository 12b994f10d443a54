package catalog

import (
	"io"
	"log"
	"slices"
)

// Catalog is the read-only per-scene configuration of the story
// Built once at startup; all lookups are by scene index
type Catalog struct {
	scenes    []SceneSpec
	available []map[string]struct{}
	required  []map[string]struct{}
	log       *log.Logger
}

func newCatalog(scenes []SceneSpec, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Catalog{
		scenes:    scenes,
		available: make([]map[string]struct{}, len(scenes)),
		required:  make([]map[string]struct{}, len(scenes)),
		log:       logger,
	}
	for i, s := range scenes {
		c.available[i] = toSet(s.Available)
		c.required[i] = toSet(s.Required)
	}
	return c
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Len returns the number of scenes
func (c *Catalog) Len() int {
	return len(c.scenes)
}

// Clamp limits a scene index to [0, Len-1], logging when it had to adjust
func (c *Catalog) Clamp(i int) int {
	if len(c.scenes) == 0 {
		c.log.Printf("[catalog] scene index %d requested from empty catalog", i)
		return 0
	}
	if i < 0 {
		c.log.Printf("[catalog] scene index %d clamped to 0", i)
		return 0
	}
	if i >= len(c.scenes) {
		c.log.Printf("[catalog] scene index %d clamped to %d", i, len(c.scenes)-1)
		return len(c.scenes) - 1
	}
	return i
}

func (c *Catalog) scene(i int) (*SceneSpec, int, bool) {
	if len(c.scenes) == 0 {
		return nil, 0, false
	}
	i = c.Clamp(i)
	return &c.scenes[i], i, true
}

// Text returns the narration of scene i
func (c *Catalog) Text(i int) string {
	s, _, ok := c.scene(i)
	if !ok {
		return ""
	}
	return s.Text
}

// AvailableItems returns the item names shown in scene i, in document order
func (c *Catalog) AvailableItems(i int) []string {
	s, _, ok := c.scene(i)
	if !ok {
		return nil
	}
	return slices.Clone(s.Available)
}

// RequiredItems returns the item names that must be gate-held to pass scene i
func (c *Catalog) RequiredItems(i int) []string {
	s, _, ok := c.scene(i)
	if !ok {
		return nil
	}
	return slices.Clone(s.Required)
}

// IsAvailable reports whether name is shown in scene i
func (c *Catalog) IsAvailable(i int, name string) bool {
	_, i, ok := c.scene(i)
	if !ok {
		return false
	}
	_, found := c.available[i][name]
	return found
}

// IsRequired reports whether name is required in scene i
func (c *Catalog) IsRequired(i int, name string) bool {
	_, i, ok := c.scene(i)
	if !ok {
		return false
	}
	_, found := c.required[i][name]
	return found
}

// VisualParams returns the presentation of name in scene i, defaults when absent
func (c *Catalog) VisualParams(i int, name string) VisualParams {
	s, _, ok := c.scene(i)
	if !ok {
		return DefaultVisualParams()
	}
	if v, found := s.Visuals[name]; found {
		return v
	}
	return DefaultVisualParams()
}
