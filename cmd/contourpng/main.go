// Command contourpng renders a contoured surface to a PNG, top-down.
// It drives the same pipeline as the desktop app and is handy for
// eyeballing band layouts without launching a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/fogleman/gg"

	"github.com/kmellis/isofield/pkg/colormap"
	"github.com/kmellis/isofield/pkg/contour"
	"github.com/kmellis/isofield/pkg/engine"
	"github.com/kmellis/isofield/pkg/field"
	"github.com/kmellis/isofield/pkg/mesh"
	"github.com/kmellis/isofield/pkg/scene"
	"github.com/kmellis/isofield/pkg/surface"
	"github.com/kmellis/isofield/pkg/surface/sdfx"
)

func main() {
	var (
		surfaceName = flag.String("surface", "saddle", "surface to contour")
		mode        = flag.String("mode", "both", "filled, lines, or both")
		numContours = flag.Int("contours", 10, "number of iso-values")
		table       = flag.String("table", "Rainbow", "color table name")
		bands       = flag.Int("bands", 0, "cyclic band count, 0 for a smooth ramp")
		resolution  = flag.Int("resolution", 0, "grid subdivisions, 0 for the default")
		holeR       = flag.Float64("r", 1, "hole radius (plate surface)")
		pressure    = flag.Float64("pressure", 1, "far-field load (plate surface)")
		theta       = flag.Float64("theta", 0, "load angle in degrees (plate surface)")
		script      = flag.String("script", "", "field script file overriding the surface field")
		out         = flag.String("o", "out.png", "output PNG path")
		size        = flag.Int("size", 1024, "output image size in pixels")
		lineWidth   = flag.Float64("lw", 1.5, "isoline stroke width")
	)
	flag.Parse()

	sources := append(surface.Builtins(), sdfx.New())
	src, err := surface.Find(sources, *surfaceName)
	if err != nil {
		log.Fatal(err)
	}

	m, scalars, err := src.Build(scene.Params{
		R:          *holeR,
		Theta:      *theta,
		Pressure:   *pressure,
		Resolution: *resolution,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *script != "" {
		source, err := os.ReadFile(*script)
		if err != nil {
			log.Fatal(err)
		}
		prog, evalErrs, err := engine.NewEngine().Evaluate(string(source))
		if err != nil {
			log.Fatal(err)
		}
		for _, e := range evalErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		if prog == nil {
			os.Exit(1)
		}
		if scalars, err = prog.Sample(m); err != nil {
			log.Fatal(err)
		}
	}

	min, max := field.Range(scalars)
	if max <= min {
		log.Fatalf("field range [%g, %g] is empty", min, max)
	}
	isos := field.SpacedValues(min, max, *numContours)

	lut, err := colormap.Build(*table, colormap.DefaultResolution, *bands)
	if err != nil {
		log.Fatal(err)
	}
	lut.SetMin(min).SetMax(max)

	dc := newCanvas(m, *size)

	if *mode == "filled" || *mode == "both" {
		buf, err := contour.Bands(m, scalars, isos, lut)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("filled: %d triangles\n", buf.TriangleCount())
		drawFilled(dc, buf)
	}
	if *mode == "lines" || *mode == "both" {
		tr, err := contour.NewTracer(m, min, max)
		if err != nil {
			log.Fatal(err)
		}
		ls, err := tr.Trace(m, scalars, isos, lut)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("lines: %d polylines\n", ls.PolylineCount())
		drawLines(dc, ls, *lineWidth, *mode == "both")
	}

	if err := gg.SavePNG(*out, dc.Image()); err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote", *out)
}

// newCanvas fits the mesh's xy bounds into a square image, y up.
func newCanvas(m *mesh.Mesh, size int) *gg.Context {
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for i := 0; i < m.VertexCount(); i++ {
		x, y, _ := m.Position(i)
		x0 = math.Min(x0, float64(x))
		x1 = math.Max(x1, float64(x))
		y0 = math.Min(y0, float64(y))
		y1 = math.Max(y1, float64(y))
	}
	scale := float64(size) / math.Max(x1-x0, y1-y0)

	dc := gg.NewContext(int((x1-x0)*scale)+1, int((y1-y0)*scale)+1)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(scale, -scale)
	dc.Translate(-x0, -y1)
	return dc
}

// drawFilled paints each band triangle with its flat color. The buffer
// carries one color per vertex but every piece is uniform, so the first
// corner's color stands for the triangle.
func drawFilled(dc *gg.Context, buf *contour.Buffer) {
	for t := 0; t < buf.TriangleCount(); t++ {
		i0 := buf.Index[3*t]
		i1 := buf.Index[3*t+1]
		i2 := buf.Index[3*t+2]
		dc.MoveTo(float64(buf.Position[3*i0]), float64(buf.Position[3*i0+1]))
		dc.LineTo(float64(buf.Position[3*i1]), float64(buf.Position[3*i1+1]))
		dc.LineTo(float64(buf.Position[3*i2]), float64(buf.Position[3*i2+1]))
		dc.ClosePath()
		dc.SetRGB(float64(buf.Color[3*i0]), float64(buf.Color[3*i0+1]), float64(buf.Color[3*i0+2]))
		dc.Fill()
	}
}

// drawLines strokes each polyline. Over filled bands the lines go black
// for contrast; on their own they keep their LUT colors.
func drawLines(dc *gg.Context, ls *contour.LineSet, lw float64, overFill bool) {
	dc.SetLineWidth(lw)
	offset := 0
	for k, count := range ls.Counts {
		dc.NewSubPath()
		for i := 0; i < count; i++ {
			p := (offset + i) * 3
			dc.LineTo(float64(ls.Positions[p]), float64(ls.Positions[p+1]))
		}
		if overFill {
			dc.SetRGB(0, 0, 0)
		} else {
			dc.SetRGB(float64(ls.Colors[3*k]), float64(ls.Colors[3*k+1]), float64(ls.Colors[3*k+2]))
		}
		dc.Stroke()
		offset += count
	}
}
