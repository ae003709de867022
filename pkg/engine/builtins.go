package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms field script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: half-width -> half_width
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries. Traditional
// Lisp ; comments are rewritten to the // form zygomys expects.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers when the hyphen sits between
		// identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Sexp wrapper for field expressions
// ---------------------------------------------------------------------------

// sexpField wraps a compiled field closure so partial expressions can be
// passed between builtins and bound to script variables.
type sexpField struct {
	fn   fieldFunc
	desc string
}

func (f *sexpField) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(field-expr %s)", f.desc)
}
func (f *sexpField) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toField coerces a Sexp into a field closure. Field expressions pass
// through; plain numbers are lifted into constant fields, so scripts
// can write (add (coord :x) 1) without an explicit konst.
func toField(s zygo.Sexp) (fieldFunc, string, error) {
	switch v := s.(type) {
	case *sexpField:
		return v.fn, v.desc, nil
	case *zygo.SexpInt:
		c := float64(v.Val)
		return func(x, y, z float64) float64 { return c }, fmt.Sprintf("%g", c), nil
	case *zygo.SexpFloat:
		c := v.Val
		return func(x, y, z float64) float64 { return c }, fmt.Sprintf("%g", c), nil
	}
	return nil, "", fmt.Errorf("expected field expression or number, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder accumulates the script's output: the expression passed to the
// final (field ...) call.
type builder struct {
	fn fieldFunc
}

// registerBuiltins installs the field DSL into a zygomys environment.
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
//
// The builtins compose Go closures rather than interpreting the script
// per sample point, so sampling a compiled Program never re-enters the
// interpreter.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// (coord :x) -- one of the three position coordinates.
	env.AddFunction("coord", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("coord: want one axis keyword, got %d args", len(args))
		}
		axis, ok := isKW(args[0])
		if !ok {
			if str, sok := args[0].(*zygo.SexpStr); sok {
				axis, ok = str.S, true
			}
		}
		if !ok {
			return zygo.SexpNull, fmt.Errorf("coord: expected axis keyword (:x, :y, :z)")
		}
		switch axis {
		case "x":
			return &sexpField{fn: func(x, y, z float64) float64 { return x }, desc: "x"}, nil
		case "y":
			return &sexpField{fn: func(x, y, z float64) float64 { return y }, desc: "y"}, nil
		case "z":
			return &sexpField{fn: func(x, y, z float64) float64 { return z }, desc: "z"}, nil
		}
		return zygo.SexpNull, fmt.Errorf("coord: invalid axis %q, expected x, y, or z", axis)
	})

	// (konst 2.5) -- a constant field.
	env.AddFunction("konst", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("konst: want one number, got %d args", len(args))
		}
		c, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("konst: %w", err)
		}
		return &sexpField{fn: func(x, y, z float64) float64 { return c }, desc: fmt.Sprintf("%g", c)}, nil
	})

	registerFold(env, "add", 1, func(a, b float64) float64 { return a + b })
	registerFold(env, "mul", 1, func(a, b float64) float64 { return a * b })
	registerFold(env, "div", 2, func(a, b float64) float64 { return a / b })
	registerFold(env, "minf", 2, math.Min)
	registerFold(env, "maxf", 2, math.Max)

	// (sub a b ...) folds left; (sub a) negates.
	env.AddFunction("sub", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fns, desc, err := fieldArgs("sub", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(fns) == 1 {
			f := fns[0]
			return &sexpField{fn: func(x, y, z float64) float64 { return -f(x, y, z) }, desc: desc}, nil
		}
		return &sexpField{fn: foldFields(fns, func(a, b float64) float64 { return a - b }), desc: desc}, nil
	})

	registerUnary(env, "neg", func(v float64) float64 { return -v })
	registerUnary(env, "sqrt", math.Sqrt)
	registerUnary(env, "abs", math.Abs)
	registerUnary(env, "sin", math.Sin)
	registerUnary(env, "cos", math.Cos)
	registerUnary(env, "exp", math.Exp)

	// (pow base exponent)
	env.AddFunction("pow", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fns, desc, err := fieldArgs("pow", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(fns) != 2 {
			return zygo.SexpNull, fmt.Errorf("pow: want base and exponent, got %d args", len(fns))
		}
		base, exp := fns[0], fns[1]
		return &sexpField{
			fn:   func(x, y, z float64) float64 { return math.Pow(base(x, y, z), exp(x, y, z)) },
			desc: desc,
		}, nil
	})

	// (radius) or (radius cx cy cz) -- distance from a center point.
	env.AddFunction("radius", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		var cx, cy, cz float64
		switch len(args) {
		case 0:
		case 3:
			var err error
			if cx, err = toFloat64(args[0]); err != nil {
				return zygo.SexpNull, fmt.Errorf("radius: %w", err)
			}
			if cy, err = toFloat64(args[1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("radius: %w", err)
			}
			if cz, err = toFloat64(args[2]); err != nil {
				return zygo.SexpNull, fmt.Errorf("radius: %w", err)
			}
		default:
			return zygo.SexpNull, fmt.Errorf("radius: want no args or a center point, got %d args", len(args))
		}
		return &sexpField{
			fn: func(x, y, z float64) float64 {
				dx, dy, dz := x-cx, y-cy, z-cz
				return math.Sqrt(dx*dx + dy*dy + dz*dz)
			},
			desc: "radius",
		}, nil
	})

	// (field expr) -- declare the script's output field. The last call
	// wins, matching Lisp's expression-sequence reading.
	env.AddFunction("field", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("field: want one expression, got %d args", len(args))
		}
		fn, _, err := toField(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("field: %w", err)
		}
		b.fn = fn
		return args[0], nil
	})
}

// fieldArgs coerces every argument to a field closure.
func fieldArgs(name string, args []zygo.Sexp, min int) ([]fieldFunc, string, error) {
	if len(args) < min {
		return nil, "", fmt.Errorf("%s: want at least %d args, got %d", name, min, len(args))
	}
	fns := make([]fieldFunc, len(args))
	descs := make([]string, len(args))
	for i, a := range args {
		fn, desc, err := toField(a)
		if err != nil {
			return nil, "", fmt.Errorf("%s: arg %d: %w", name, i+1, err)
		}
		fns[i] = fn
		descs[i] = desc
	}
	return fns, fmt.Sprintf("(%s %s)", name, strings.Join(descs, " ")), nil
}

func foldFields(fns []fieldFunc, op func(a, b float64) float64) fieldFunc {
	return func(x, y, z float64) float64 {
		acc := fns[0](x, y, z)
		for _, f := range fns[1:] {
			acc = op(acc, f(x, y, z))
		}
		return acc
	}
}

func registerFold(env *zygo.Zlisp, name string, min int, op func(a, b float64) float64) {
	env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		fns, desc, err := fieldArgs(name, args, min)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpField{fn: foldFields(fns, op), desc: desc}, nil
	})
}

func registerUnary(env *zygo.Zlisp, name string, op func(v float64) float64) {
	env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		fns, desc, err := fieldArgs(name, args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(fns) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s: want one arg, got %d", name, len(fns))
		}
		f := fns[0]
		return &sexpField{fn: func(x, y, z float64) float64 { return op(f(x, y, z)) }, desc: desc}, nil
	})
}
