package prefabs

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// layoutResult is the global a layout script must define.
const layoutResult = "boxes"

var ErrNoLayoutResult = errors.New("prefabs: layout script defines no boxes")

// RunLayout runs a layout script with spec.Params bound to `params` and
// decodes the `boxes` array it leaves behind.
func RunLayout(spec LayoutSpec) ([]BoxSpec, error) {
	src, err := LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load layout %s: %w", spec.Script, err)
	}

	params := spec.Params
	if params == nil {
		params = map[string]any{}
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("params", params); err != nil {
		return nil, fmt.Errorf("prefabs: layout %s params: %w", spec.Script, err)
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("prefabs: run layout %s: %w", spec.Script, err)
	}
	if !compiled.IsDefined(layoutResult) {
		return nil, fmt.Errorf("%w: %s", ErrNoLayoutResult, spec.Script)
	}

	boxes, err := decodeRaw[[]BoxSpec](compiled.Get(layoutResult).Array())
	if err != nil {
		return nil, fmt.Errorf("prefabs: decode layout %s: %w", spec.Script, err)
	}
	return boxes, nil
}
