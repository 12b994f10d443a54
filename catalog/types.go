package catalog

import (
	"fmt"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// VisualParams describe how an activated item's figure is presented in one scene
type VisualParams struct {
	Offset   vmath.Vec2
	Order    int
	Mirrored bool
}

// DefaultVisualParams is used for items a scene leaves unconfigured
func DefaultVisualParams() VisualParams {
	return VisualParams{Order: constant.DefaultOrder}
}

// SceneSpec is the resolved configuration of one story scene
type SceneSpec struct {
	Text      string
	Available []string
	Required  []string
	Visuals   map[string]VisualParams
}

// point is the YAML form of a 2D position: [x, y]
type point [2]float64

func (p point) vec() vmath.Vec2 {
	return vmath.V2(p[0], p[1])
}

// visualDoc is a partially specified VisualParams
type visualDoc struct {
	Offset   *point `yaml:"offset"`
	Order    *int   `yaml:"order"`
	Mirrored *bool  `yaml:"mirrored"`
}

func (v *visualDoc) resolve(base VisualParams) VisualParams {
	if v == nil {
		return base
	}
	if v.Offset != nil {
		base.Offset = v.Offset.vec()
	}
	if v.Order != nil {
		base.Order = *v.Order
	}
	if v.Mirrored != nil {
		base.Mirrored = *v.Mirrored
	}
	return base
}

type sceneDoc struct {
	Text           string               `yaml:"text"`
	Extends        *int                 `yaml:"extends"`
	Available      []string             `yaml:"available"`
	Add            []string             `yaml:"add"`
	Required       []string             `yaml:"required"`
	Visuals        map[string]visualDoc `yaml:"visuals"`
	VisualDefaults *visualDoc           `yaml:"visual_defaults"`
}

type catalogDoc struct {
	Version int        `yaml:"version"`
	Scenes  []sceneDoc `yaml:"scenes"`
}

// ValidationError reports a document that failed structural checks
type ValidationError struct {
	Document string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Document, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
