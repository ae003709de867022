package main

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/kmellis/isofield/pkg/scene"
)

// saddleRequest is a known-good request used as the baseline for the
// end-to-end tests. These take the same path as the Wails Contour
// binding, but without the Wails runtime.
func saddleRequest() scene.Request {
	return scene.Request{
		Surface:     "saddle",
		DisplayMode: scene.DisplayBoth,
		NumContours: 8,
		ColorTable:  "Rainbow",
		Params:      scene.Params{Resolution: 24},
	}
}

func TestE2ESaddleBoth(t *testing.T) {
	app := NewApp()
	result := app.Contour(saddleRequest())

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("error [%s]: %s", e.Field, e.Message)
		}
		t.FailNow()
	}

	if result.Filled == nil {
		t.Fatal("expected filled bands in both mode")
	}
	if result.Filled.VertexCount() == 0 {
		t.Error("filled buffer has no vertices")
	}
	if len(result.Filled.Color) != len(result.Filled.Position) {
		t.Errorf("color buffer length %d does not match positions %d",
			len(result.Filled.Color), len(result.Filled.Position))
	}
	if len(result.Filled.Normal) != len(result.Filled.Position) {
		t.Errorf("normal buffer length %d does not match positions %d",
			len(result.Filled.Normal), len(result.Filled.Position))
	}

	if result.Lines == nil {
		t.Fatal("expected isolines in both mode")
	}
	if result.Lines.PolylineCount() == 0 {
		t.Error("no polylines traced")
	}

	// The saddle field spans [-1, 1] and the range was left on auto.
	if result.Min != -1 || result.Max != 1 {
		t.Errorf("range = [%g, %g], want [-1, 1]", result.Min, result.Max)
	}
	if len(result.IsoValues) != 8 {
		t.Errorf("got %d iso-values, want 8", len(result.IsoValues))
	}
}

func TestE2EPlateFilledOnly(t *testing.T) {
	app := NewApp()
	req := scene.Request{
		Surface:     "plate",
		DisplayMode: scene.DisplayFilled,
		NumContours: 10,
		ColorTable:  "Stress",
		Params:      scene.Params{R: 1, Pressure: 1, Resolution: 32},
	}
	result := app.Contour(req)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Filled == nil || result.Filled.TriangleCount() == 0 {
		t.Fatal("expected a non-empty filled buffer")
	}
	if result.Lines != nil {
		t.Error("filled mode should not produce lines")
	}

	// Kirsch stress concentration: auto range tops out near 3x load.
	if result.Max < 2.9 || result.Max > 3.1 {
		t.Errorf("max stress = %g, want about 3", result.Max)
	}
}

func TestE2EExplicitIsoValues(t *testing.T) {
	app := NewApp()
	req := saddleRequest()
	req.DisplayMode = scene.DisplayLines
	req.NumContours = 0 // allowed when iso-values are explicit
	req.IsoValues = []float64{-0.5, 0.25, 0.5}

	result := app.Contour(req)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Filled != nil {
		t.Error("lines mode should not produce filled bands")
	}
	if result.Lines == nil || result.Lines.PolylineCount() == 0 {
		t.Fatal("expected traced polylines")
	}
	if len(result.IsoValues) != 3 {
		t.Errorf("got %d iso-values, want the 3 explicit ones", len(result.IsoValues))
	}
}

func TestE2EScriptedField(t *testing.T) {
	app := NewApp()
	req := saddleRequest()
	req.FieldSource = "(field (radius))"

	result := app.Contour(req)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	// Distance from the origin over the saddle patch is non-negative.
	if result.Min < 0 {
		t.Errorf("scripted radius field has negative min %g", result.Min)
	}
	if result.Max <= result.Min {
		t.Errorf("degenerate range [%g, %g]", result.Min, result.Max)
	}
}

func TestSurfacesBinding(t *testing.T) {
	app := NewApp()
	names := app.Surfaces()

	want := map[string]bool{"plate": false, "saddle": false, "solid": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("missing surface %q in %v", n, names)
		}
	}
}

func TestColorTablesBinding(t *testing.T) {
	app := NewApp()
	names := app.ColorTables()
	if len(names) == 0 {
		t.Fatal("no color tables")
	}
	found := false
	for _, n := range names {
		if n == "Rainbow" {
			found = true
		}
	}
	if !found {
		t.Errorf("Rainbow missing from %v", names)
	}
}

func TestEvaluateFieldBinding(t *testing.T) {
	app := NewApp()

	good := app.EvaluateField("(field (radius))")
	if !good.OK {
		t.Errorf("valid script rejected: %v", good.Errors)
	}

	bad := app.EvaluateField("(field (coord :x)")
	if bad.OK {
		t.Error("broken script accepted")
	}
	if len(bad.Errors) == 0 {
		t.Error("broken script produced no errors")
	}
}

func TestLegendBinding(t *testing.T) {
	app := NewApp()
	result := app.Legend("Rainbow", 0, 24, 128)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	raw, err := base64.StdEncoding.DecodeString(result.PNG)
	if err != nil {
		t.Fatalf("legend is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("legend is not a PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 24 || b.Dy() != 128 {
		t.Errorf("legend size = %dx%d, want 24x128", b.Dx(), b.Dy())
	}
}
