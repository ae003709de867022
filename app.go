package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"log"

	"github.com/kmellis/isofield/pkg/colormap"
	"github.com/kmellis/isofield/pkg/contour"
	"github.com/kmellis/isofield/pkg/engine"
	"github.com/kmellis/isofield/pkg/field"
	"github.com/kmellis/isofield/pkg/scene"
	"github.com/kmellis/isofield/pkg/surface"
	"github.com/kmellis/isofield/pkg/surface/sdfx"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx     context.Context
	engine  *engine.Engine
	sources []surface.Source
}

// IssueData is a JSON-serializable validation or evaluation problem for
// the frontend.
type IssueData struct {
	Field   string `json:"field,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// ContourResult is the full result of a contouring request returned to
// the frontend.
type ContourResult struct {
	Filled    *contour.Buffer  `json:"filled,omitempty"`
	Lines     *contour.LineSet `json:"lines,omitempty"`
	Min       float64          `json:"min"`
	Max       float64          `json:"max"`
	IsoValues []float64        `json:"isoValues,omitempty"`
	Errors    []IssueData      `json:"errors"`
	Warnings  []IssueData      `json:"warnings"`
}

// LegendResult carries a rendered color legend as a base64 PNG.
type LegendResult struct {
	PNG    string      `json:"png,omitempty"`
	Errors []IssueData `json:"errors"`
}

// NewApp creates a new App with a field engine and the full set of
// surface sources, analytic and kernel-backed.
func NewApp() *App {
	return &App{
		engine:  engine.NewEngine(),
		sources: append(surface.Builtins(), sdfx.New()),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Surfaces returns the available surface names for the UI dropdown.
func (a *App) Surfaces() []string {
	return surface.Names(a.sources)
}

// ColorTables returns the available color table names.
func (a *App) ColorTables() []string {
	return colormap.Names()
}

// Contour builds the requested surface, evaluates its scalar field, and
// returns the filled bands and/or isolines. This is the primary binding
// called by the frontend.
func (a *App) Contour(req scene.Request) ContourResult {
	result := ContourResult{
		Errors:   []IssueData{},
		Warnings: []IssueData{},
	}

	// Step 1: Validate the request. Warnings are reported but do not
	// stop the pipeline.
	issues := scene.Validate(&req, surface.Names(a.sources))
	for _, is := range issues {
		d := IssueData{Field: is.Field, Message: is.Message}
		if is.Severity == scene.SeverityWarning {
			result.Warnings = append(result.Warnings, d)
		} else {
			result.Errors = append(result.Errors, d)
		}
	}
	if scene.HasErrors(issues) {
		return result
	}

	// Step 2: Build the surface mesh and its default scalar field.
	src, err := surface.Find(a.sources, req.Surface)
	if err != nil {
		result.Errors = append(result.Errors, IssueData{Field: "surface", Message: err.Error()})
		return result
	}
	m, scalars, err := src.Build(req.Params)
	if err != nil {
		log.Printf("Contour: build %q: %v", req.Surface, err)
		result.Errors = append(result.Errors, IssueData{Field: "surface", Message: err.Error()})
		return result
	}

	// Step 3: If the request carries a field script, it replaces the
	// surface's default field.
	if req.FieldSource != "" {
		prog, evalErrs, err := a.engine.Evaluate(req.FieldSource)
		if err != nil {
			log.Printf("Contour: field script fatal error: %v", err)
			result.Errors = append(result.Errors, IssueData{Field: "fieldSource", Message: err.Error()})
			return result
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				result.Errors = append(result.Errors, IssueData{
					Field:   "fieldSource",
					Line:    e.Line,
					Message: e.Message,
				})
			}
			return result
		}
		scalars, err = prog.Sample(m)
		if err != nil {
			result.Errors = append(result.Errors, IssueData{Field: "fieldSource", Message: err.Error()})
			return result
		}
	}

	// Step 4: Resolve the value range and iso-values.
	min, max := req.Min, req.Max
	if min == 0 && max == 0 {
		min, max = field.Range(scalars)
	}
	if max <= min {
		result.Errors = append(result.Errors, IssueData{
			Field:   "min",
			Message: fmt.Sprintf("empty value range [%g, %g]", min, max),
		})
		return result
	}
	isos := req.IsoValues
	if len(isos) == 0 {
		isos = field.SpacedValues(min, max, req.NumContours)
	}

	// Step 5: Build the color lookup table.
	lut, err := colormap.Build(req.ColorTable, colormap.DefaultResolution, req.Bands)
	if err != nil {
		result.Errors = append(result.Errors, IssueData{Field: "colorTable", Message: err.Error()})
		return result
	}
	lut.SetMin(min).SetMax(max)

	// Step 6: Produce the requested contour products.
	if req.DisplayMode == scene.DisplayFilled || req.DisplayMode == scene.DisplayBoth {
		buf, err := contour.Bands(m, scalars, isos, lut)
		if err != nil {
			log.Printf("Contour: bands: %v", err)
			result.Errors = append(result.Errors, IssueData{Message: err.Error()})
			return result
		}
		result.Filled = buf
	}
	if req.DisplayMode == scene.DisplayLines || req.DisplayMode == scene.DisplayBoth {
		tr, err := contour.NewTracer(m, min, max)
		if err != nil {
			log.Printf("Contour: tracer: %v", err)
			result.Errors = append(result.Errors, IssueData{Message: err.Error()})
			return result
		}
		ls, err := tr.Trace(m, scalars, isos, lut)
		if err != nil {
			log.Printf("Contour: trace: %v", err)
			result.Errors = append(result.Errors, IssueData{Message: err.Error()})
			return result
		}
		result.Lines = ls
	}

	result.Min = min
	result.Max = max
	result.IsoValues = isos
	return result
}

// FieldCheckResult reports whether a field script compiles.
type FieldCheckResult struct {
	OK     bool        `json:"ok"`
	Errors []IssueData `json:"errors"`
}

// EvaluateField compiles a field script without sampling it, so the
// editor can surface script errors as the user types.
func (a *App) EvaluateField(source string) FieldCheckResult {
	result := FieldCheckResult{Errors: []IssueData{}}

	prog, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("EvaluateField fatal error: %v", err)
		result.Errors = append(result.Errors, IssueData{Message: err.Error()})
		return result
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, IssueData{Line: e.Line, Message: e.Message})
	}
	result.OK = prog != nil && len(evalErrs) == 0
	return result
}

// Legend renders a vertical color legend strip for the given table and
// returns it as a base64-encoded PNG.
func (a *App) Legend(colorTable string, bands, width, height int) LegendResult {
	result := LegendResult{Errors: []IssueData{}}

	if width <= 0 || height <= 0 {
		result.Errors = append(result.Errors, IssueData{
			Message: fmt.Sprintf("legend size %dx%d must be positive", width, height),
		})
		return result
	}
	lut, err := colormap.Build(colorTable, colormap.DefaultResolution, bands)
	if err != nil {
		result.Errors = append(result.Errors, IssueData{Field: "colorTable", Message: err.Error()})
		return result
	}

	img := colormap.Legend(lut, width, height)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("Legend: encode: %v", err)
		result.Errors = append(result.Errors, IssueData{Message: err.Error()})
		return result
	}
	result.PNG = base64.StdEncoding.EncodeToString(buf.Bytes())
	return result
}
