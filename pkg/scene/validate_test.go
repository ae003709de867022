package scene

import (
	"strings"
	"testing"
)

var surfaces = []string{"plate", "saddle"}

// validRequest returns a request that passes every check.
func validRequest() *Request {
	return &Request{
		Surface:     "plate",
		DisplayMode: DisplayBoth,
		NumContours: 10,
		ColorTable:  "Rainbow",
		Params:      Params{R: 0.5, Pressure: 1, Resolution: 64},
	}
}

func TestValidateAccepts(t *testing.T) {
	issues := Validate(validRequest(), surfaces)
	if len(issues) != 0 {
		t.Errorf("valid request produced issues: %v", issues)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Request)
		wantField string
	}{
		{"unknown surface", func(r *Request) { r.Surface = "torus" }, "surface"},
		{"unknown display mode", func(r *Request) { r.DisplayMode = "wireframe" }, "displayMode"},
		{"too few contours", func(r *Request) { r.NumContours = 2 }, "numContours"},
		{"unknown color table", func(r *Request) { r.ColorTable = "Neon" }, "colorTable"},
		{"negative bands", func(r *Request) { r.Bands = -1 }, "bands"},
		{"inverted range", func(r *Request) { r.Min = 5; r.Max = 1 }, "min"},
		{"unsorted iso-values", func(r *Request) { r.IsoValues = []float64{2, 1} }, "isoValues"},
		{"negative radius", func(r *Request) { r.Params.R = -1 }, "params.r"},
		{"absurd resolution", func(r *Request) { r.Params.Resolution = 5000 }, "params.resolution"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			issues := Validate(req, surfaces)
			if !HasErrors(issues) {
				t.Fatalf("no error issues for %s: %v", tt.name, issues)
			}
			found := false
			for _, i := range issues {
				if i.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue on field %q: %v", tt.wantField, issues)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	req := validRequest()
	req.Params.Resolution = 1024
	issues := Validate(req, surfaces)
	if HasErrors(issues) {
		t.Fatalf("high-but-legal resolution should only warn: %v", issues)
	}
	if len(issues) != 1 || issues[0].Severity != SeverityWarning {
		t.Errorf("want a single warning, got %v", issues)
	}
}

func TestExplicitIsoValuesSkipContourMinimum(t *testing.T) {
	req := validRequest()
	req.NumContours = 0
	req.IsoValues = []float64{0.2, 0.4, 0.6}
	if issues := Validate(req, surfaces); HasErrors(issues) {
		t.Errorf("explicit iso-values should bypass the contour minimum: %v", issues)
	}
}

func TestIssueError(t *testing.T) {
	i := Issue{Field: "surface", Message: "unknown", Severity: SeverityError}
	msg := i.Error()
	for _, want := range []string{"error", "surface", "unknown"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}
