package prefabs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/boxfall/common"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes everything a scene is built from.
type SceneSpec struct {
	Name       string      `yaml:"name"`
	Surface    string      `yaml:"surface"`
	ClearColor *YAMLColor  `yaml:"clear_color,omitempty"`
	Camera     CameraSpec  `yaml:"camera"`
	Physics    PhysicsSpec `yaml:"physics"`
	Boxes      []BoxSpec   `yaml:"boxes"`
	Layout     *LayoutSpec `yaml:"layout,omitempty"`
}

// CameraSpec is an orthographic box plus a look-at eye. A zero value means
// the default camera.
type CameraSpec struct {
	Left   float64   `yaml:"left"`
	Right  float64   `yaml:"right"`
	Bottom float64   `yaml:"bottom"`
	Top    float64   `yaml:"top"`
	Near   float64   `yaml:"near"`
	Far    float64   `yaml:"far"`
	Eye    []float64 `yaml:"eye,omitempty"`
	Center []float64 `yaml:"center,omitempty"`
	Up     []float64 `yaml:"up,omitempty"`
}

func (c CameraSpec) IsZero() bool {
	return c.Left == c.Right || c.Top == c.Bottom
}

type PhysicsSpec struct {
	// Gravity is [x, y] in pixels per second squared; omitted means default.
	Gravity    []float64 `yaml:"gravity,omitempty"`
	Iterations int       `yaml:"iterations"`
	IntervalMS float64   `yaml:"interval_ms"`
	MaxSteps   int       `yaml:"max_steps"`
	Density    float64   `yaml:"density"`
	// Friction is nil when unset so an explicit 0 is kept.
	Friction   *float64  `yaml:"friction,omitempty"`
	Elasticity float64   `yaml:"elasticity"`
}

type BoxSpec struct {
	Name     string    `yaml:"name"`
	X        float64   `yaml:"x"`
	Y        float64   `yaml:"y"`
	Width    float64   `yaml:"w"`
	Height   float64   `yaml:"h"`
	Rotation float64   `yaml:"rotation"`
	Color    YAMLColor `yaml:"color"`
	Static   bool      `yaml:"static"`
}

// LayoutSpec names a script in scripts/ whose `boxes` are appended to the scene.
type LayoutSpec struct {
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params,omitempty"`
}

// LoadSceneSpec loads, expands and validates a scene spec.
func LoadSceneSpec(filename string) (*SceneSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseSceneSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// ParseSceneSpec decodes a scene spec, runs its layout script and validates the result.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if err := spec.ExpandLayout(); err != nil {
		return nil, err
	}
	if spec.Surface == "" {
		spec.Surface = common.SurfaceID
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ExpandLayout appends the boxes produced by the layout script, if any.
func (s *SceneSpec) ExpandLayout() error {
	if s.Layout == nil || s.Layout.Script == "" {
		return nil
	}
	return s.AppendLayout(s.Layout.Script, s.Layout.Params)
}

// AppendLayout runs one more layout script and appends its boxes.
func (s *SceneSpec) AppendLayout(script string, params map[string]any) error {
	boxes, err := RunLayout(LayoutSpec{Script: script, Params: params})
	if err != nil {
		return err
	}
	s.Boxes = append(s.Boxes, boxes...)
	return nil
}

func (s *SceneSpec) Validate() error {
	if len(s.Boxes) == 0 {
		return fmt.Errorf("%w: no boxes", ErrInvalidSpec)
	}
	for i, b := range s.Boxes {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%w: box %d (%s) has size %vx%v", ErrInvalidSpec, i, b.Name, b.Width, b.Height)
		}
	}
	if g := s.Physics.Gravity; g != nil && len(g) != 2 {
		return fmt.Errorf("%w: gravity needs 2 components, got %d", ErrInvalidSpec, len(g))
	}
	for name, v := range map[string][]float64{"eye": s.Camera.Eye, "center": s.Camera.Center, "up": s.Camera.Up} {
		if v != nil && len(v) != 3 {
			return fmt.Errorf("%w: camera %s needs 3 components, got %d", ErrInvalidSpec, name, len(v))
		}
	}
	return nil
}

// YAMLColor is an RGB triple in [0,1]. It decodes from "#RRGGBB" or [r, g, b].
type YAMLColor struct {
	R, G, B float32
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return c.parseHex(value.Value)
	case yaml.SequenceNode:
		var rgb []float32
		if err := value.Decode(&rgb); err != nil {
			return err
		}
		if len(rgb) != 3 {
			return fmt.Errorf("color needs 3 components, got %d", len(rgb))
		}
		for _, v := range rgb {
			if v < 0 || v > 1 {
				return fmt.Errorf("color component %v out of [0,1]", v)
			}
		}
		c.R, c.G, c.B = rgb[0], rgb[1], rgb[2]
		return nil
	default:
		return fmt.Errorf("color must be a hex string or [r, g, b]")
	}
}

func (c *YAMLColor) parseHex(v string) error {
	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 {
		return fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (float32, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return float32(n) / 0xff, err
	}

	var err error
	if c.R, err = parse(0); err != nil {
		return err
	}
	if c.G, err = parse(2); err != nil {
		return err
	}
	c.B, err = parse(4)
	return err
}

func (c YAMLColor) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range [3]float32{c.R, c.G, c.B} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(float64(v), 'g', -1, 32),
		})
	}
	return node, nil
}

func decodeRaw[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
