package scene

import (
	"fmt"

	"github.com/kmellis/isofield/pkg/colormap"
	"github.com/kmellis/isofield/pkg/field"
)

// Severity indicates whether a validation finding blocks contouring or
// is merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocks contouring
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue describes a single validation finding on a request field.
type Issue struct {
	Field    string
	Message  string
	Severity Severity
}

func (i Issue) Error() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Field, i.Message)
}

// maxResolution is the grid subdivision count past which a request is
// refused outright rather than warned about.
const maxResolution = 2048

// Validate runs every check on a request and returns all findings.
// Callers proceed only when no finding has SeverityError. The function
// is read-only and never mutates the request.
func Validate(req *Request, knownSurfaces []string) []Issue {
	var issues []Issue

	issues = append(issues, validateSurface(req, knownSurfaces)...)
	issues = append(issues, validateDisplay(req)...)
	issues = append(issues, validateContours(req)...)
	issues = append(issues, validateColorTable(req)...)
	issues = append(issues, validateParams(req)...)

	return issues
}

// HasErrors reports whether any finding blocks contouring.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validateSurface(req *Request, known []string) []Issue {
	// Scripted fields still ride on a surface's geometry, so the surface
	// name must resolve either way.
	for _, name := range known {
		if name == req.Surface {
			return nil
		}
	}
	return []Issue{{
		Field:    "surface",
		Message:  fmt.Sprintf("unknown surface %q", req.Surface),
		Severity: SeverityError,
	}}
}

func validateDisplay(req *Request) []Issue {
	switch req.DisplayMode {
	case DisplayFilled, DisplayLines, DisplayBoth:
		return nil
	}
	return []Issue{{
		Field:    "displayMode",
		Message:  fmt.Sprintf("unknown display mode %q", req.DisplayMode),
		Severity: SeverityError,
	}}
}

func validateContours(req *Request) []Issue {
	var issues []Issue

	if len(req.IsoValues) > 0 {
		if !field.Ascending(req.IsoValues) {
			issues = append(issues, Issue{
				Field:    "isoValues",
				Message:  "explicit iso-values must be ascending",
				Severity: SeverityError,
			})
		}
	} else if req.NumContours < MinContours {
		issues = append(issues, Issue{
			Field:    "numContours",
			Message:  fmt.Sprintf("contour count %d below minimum %d", req.NumContours, MinContours),
			Severity: SeverityError,
		})
	}

	if req.Min != 0 || req.Max != 0 {
		if req.Min >= req.Max {
			issues = append(issues, Issue{
				Field:    "min",
				Message:  fmt.Sprintf("min %g must be below max %g", req.Min, req.Max),
				Severity: SeverityError,
			})
		}
	}

	return issues
}

func validateColorTable(req *Request) []Issue {
	var issues []Issue
	if _, err := colormap.Builtin(req.ColorTable); err != nil {
		issues = append(issues, Issue{
			Field:    "colorTable",
			Message:  err.Error(),
			Severity: SeverityError,
		})
	}
	if req.Bands < 0 {
		issues = append(issues, Issue{
			Field:    "bands",
			Message:  fmt.Sprintf("band count %d is negative", req.Bands),
			Severity: SeverityError,
		})
	}
	return issues
}

func validateParams(req *Request) []Issue {
	var issues []Issue
	p := req.Params

	if p.Resolution > maxResolution {
		issues = append(issues, Issue{
			Field:    "params.resolution",
			Message:  fmt.Sprintf("resolution %d exceeds limit %d", p.Resolution, maxResolution),
			Severity: SeverityError,
		})
	} else if p.Resolution > 512 {
		issues = append(issues, Issue{
			Field:    "params.resolution",
			Message:  fmt.Sprintf("resolution %d will contour slowly", p.Resolution),
			Severity: SeverityWarning,
		})
	}

	if p.R < 0 {
		issues = append(issues, Issue{
			Field:    "params.r",
			Message:  fmt.Sprintf("radius %g is negative", p.R),
			Severity: SeverityError,
		})
	}

	return issues
}
