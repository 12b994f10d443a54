package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed data/scenes.yaml
var defaultScenes []byte

//go:embed data/scenes.schema.json
var scenesSchema []byte

// ErrEmptyCatalog is returned for a document without scenes
var ErrEmptyCatalog = errors.New("catalog has no scenes")

// Load parses, validates and resolves a scene document
// Structural problems are errors; per-scene inconsistencies are logged and repaired
func Load(data []byte, logger *log.Logger) (*Catalog, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := validateYAML("scenes", "scenes.schema.json", scenesSchema, data); err != nil {
		return nil, err
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenes: %w", err)
	}
	if len(doc.Scenes) == 0 {
		return nil, ErrEmptyCatalog
	}

	scenes := make([]SceneSpec, len(doc.Scenes))
	for i, sd := range doc.Scenes {
		spec, err := resolveScene(i, sd, scenes[:i], logger)
		if err != nil {
			return nil, err
		}
		scenes[i] = spec
	}
	return newCatalog(scenes, logger), nil
}

// LoadFile reads and loads a scene document from path
func LoadFile(path string, logger *log.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Load(data, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Default returns the catalog of the built-in story
func Default(logger *log.Logger) (*Catalog, error) {
	return Load(defaultScenes, logger)
}

// LoadAuto loads path when set, falling back to the built-in story on any failure
func LoadAuto(path string, logger *log.Logger) (*Catalog, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if path != "" {
		c, err := LoadFile(path, logger)
		if err == nil {
			return c, nil
		}
		logger.Printf("[config] %v; using built-in story", err)
	}
	return Default(logger)
}

func resolveScene(i int, sd sceneDoc, prior []SceneSpec, logger *log.Logger) (SceneSpec, error) {
	spec := SceneSpec{Text: sd.Text}

	if sd.Extends != nil {
		base := *sd.Extends
		if base < 0 || base >= i {
			return spec, &ValidationError{
				Document: "scenes",
				Err:      fmt.Errorf("scene %d extends %d: must reference an earlier scene", i, base),
			}
		}
		spec.Available = slices.Clone(prior[base].Available)
		spec.Required = slices.Clone(prior[base].Required)
	}
	if sd.Available != nil {
		spec.Available = slices.Clone(sd.Available)
	}
	for _, name := range sd.Add {
		if !slices.Contains(spec.Available, name) {
			spec.Available = append(spec.Available, name)
		}
	}
	spec.Available = dedupe(spec.Available, i, "available", logger)
	if sd.Required != nil {
		spec.Required = slices.Clone(sd.Required)
	}
	spec.Required = dedupe(spec.Required, i, "required", logger)

	if spec.Text == "" {
		logger.Printf("[config] scene %d has no narration text", i)
	}

	// Required must be a subset of available
	kept := spec.Required[:0]
	for _, name := range spec.Required {
		if slices.Contains(spec.Available, name) {
			kept = append(kept, name)
			continue
		}
		logger.Printf("[config] scene %d requires unavailable item %q; requirement dropped", i, name)
	}
	spec.Required = kept

	spec.Visuals = make(map[string]VisualParams, len(spec.Available))
	if sd.VisualDefaults != nil {
		def := sd.VisualDefaults.resolve(DefaultVisualParams())
		for _, name := range spec.Available {
			spec.Visuals[name] = def
		}
	}
	for name, vd := range sd.Visuals {
		spec.Visuals[name] = vd.resolve(DefaultVisualParams())
	}
	return spec, nil
}

func dedupe(names []string, scene int, field string, logger *log.Logger) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if slices.Contains(out, n) {
			logger.Printf("[config] scene %d lists %q twice in %s", scene, n, field)
			continue
		}
		out = append(out, n)
	}
	return out
}
