package colormap

import (
	"image"

	"github.com/fogleman/gg"
)

// Legend renders the LUT as a vertical color strip for display beside
// the 3D view: the maximum value sits at the top of the image. The walk
// steps down from s=1 to s=0 in 1/n increments, filling one horizontal
// band of rows per sample.
func Legend(l *LUT, width, height int) image.Image {
	dc := gg.NewContext(width, height)

	rowsPerBucket := float64(height) / float64(l.n+1)
	for i := 0; i <= l.n; i++ {
		s := 1 - float64(i)/float64(l.n)
		col := l.table[int(s*float64(l.n)+0.5)]
		dc.SetRGB(col.R, col.G, col.B)
		y := float64(i) * rowsPerBucket
		dc.DrawRectangle(0, y, float64(width), rowsPerBucket+1)
		dc.Fill()
	}

	return dc.Image()
}
