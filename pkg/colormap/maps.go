package colormap

import (
	"fmt"
	"sort"
)

// Stop is one control point of a color map: a normalized position in
// [0,1] and the hex color at that position.
type Stop struct {
	Pos float64 `json:"pos"`
	Hex string  `json:"hex"`
}

// Definition is an ordered list of control points, ascending in position,
// with stops at 0 and 1 always present. Definitions are never mutated
// after construction.
type Definition []Stop

// builtins holds the named color maps shipped with the application.
// The table is read-only after package initialization; access goes
// through Builtin so callers cannot alias the backing storage.
var builtins = map[string]Definition{
	"Rainbow": {
		{0.0, "#0000FF"}, {0.2, "#00FFFF"}, {0.5, "#00FF00"},
		{0.8, "#FFFF00"}, {1.0, "#FF0000"},
	},
	"CoolWarm": {
		{0.0, "#3C4EC2"}, {0.2, "#9BBCFF"}, {0.5, "#DCDCDC"},
		{0.8, "#F6A385"}, {1.0, "#B40426"},
	},
	"Blackbody": {
		{0.0, "#000000"}, {0.2, "#780000"}, {0.5, "#E63200"},
		{0.8, "#FFFF00"}, {1.0, "#FFFFFF"},
	},
	"Grayscale": {
		{0.0, "#000000"}, {0.2, "#404040"}, {0.5, "#7F7F80"},
		{0.8, "#BFBFBF"}, {1.0, "#FFFFFF"},
	},
	"Stress": {
		{0.0, "#000080"}, {0.35, "#0080FF"}, {0.5, "#00C040"},
		{0.65, "#FFE000"}, {1.0, "#C00000"},
	},
}

// Builtin looks up a named builtin color map. The returned definition is
// a copy and safe to modify.
func Builtin(name string) (Definition, error) {
	def, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("colormap: unknown color map %q", name)
	}
	out := make(Definition, len(def))
	copy(out, def)
	return out, nil
}

// Names returns the builtin map names in sorted order, for UI dropdowns.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Banded replicates a definition n times, each copy compressed into a
// 1/n-wide segment, producing a cyclic ramp that repeats across the
// value range. Banded(def, 1) returns def unchanged.
func Banded(def Definition, n int) Definition {
	if n <= 1 {
		return def
	}
	out := make(Definition, 0, len(def)*n)
	for band := 0; band < n; band++ {
		for _, s := range def {
			p := (float64(band) + s.Pos) / float64(n)
			if p > 1 {
				p = 1
			}
			out = append(out, Stop{Pos: p, Hex: s.Hex})
		}
	}
	// Rounding in the division can leave the final stop a hair short of 1.
	out[len(out)-1].Pos = 1
	return out
}

// validate checks the structural preconditions on a definition: at least
// two stops, ascending positions, and stops at 0 and 1.
func (d Definition) validate() error {
	if len(d) < 2 {
		return fmt.Errorf("colormap: definition needs at least 2 stops, got %d", len(d))
	}
	if d[0].Pos != 0 {
		return fmt.Errorf("colormap: first stop must sit at 0, got %g", d[0].Pos)
	}
	if d[len(d)-1].Pos != 1 {
		return fmt.Errorf("colormap: last stop must sit at 1, got %g", d[len(d)-1].Pos)
	}
	for i := 1; i < len(d); i++ {
		if d[i].Pos < d[i-1].Pos {
			return fmt.Errorf("colormap: stop %d at %g breaks ascending order", i, d[i].Pos)
		}
	}
	return nil
}
