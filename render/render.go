// Package render draws a sampled field as an arrow plot of the x–z plane.
package render

import (
	"fmt"
	"image/color"
	"math"

	"coilcalc/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// 箭头长度占网格单元的比例
const arrowFraction = 0.5

// arrow is one drawn glyph in canvas coordinates.
type arrow struct {
	From, To vg.Point
	Color    color.Color
}

// Arrows draws one fixed length arrow per grid cell, pointing along the x–z
// projection of the field. Magnitude only shows through the color.
type Arrows struct {
	data      model.FieldData
	LineStyle draw.LineStyle
}

func NewArrows(data model.FieldData) *Arrows {
	return &Arrows{
		data: data,
		LineStyle: draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(0.8),
		},
	}
}

// Plot implements plot.Plotter.
func (a *Arrows) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, ar := range a.arrows(trX, trY) {
		sty := a.LineStyle
		sty.Color = ar.Color
		c.StrokeLine2(sty, ar.From.X, ar.From.Y, ar.To.X, ar.To.Y)
		c.FillPolygon(ar.Color, arrowHead(ar.From, ar.To))
	}
}

// DataRange implements plot.DataRanger, padded by half a cell so edge arrows fit.
func (a *Arrows) DataRange() (xmin, xmax, ymin, ymax float64) {
	x, z := a.data.XRange, a.data.ZRange
	dx, dz := math.Abs(x.Step())/2, math.Abs(z.Step())/2
	return math.Min(x.Min, x.Max) - dx, math.Max(x.Min, x.Max) + dx,
		math.Min(z.Min, z.Max) - dz, math.Max(z.Min, z.Max) + dz
}

// arrows lays out every glyph. All arrows share one length, a fraction of the
// smaller cell edge on the canvas; zero vectors are skipped.
func (a *Arrows) arrows(trX, trY func(float64) vg.Length) []arrow {
	x, z := a.data.XRange, a.data.ZRange
	cellW := math.Abs(float64(trX(x.At(1)) - trX(x.At(0))))
	cellH := math.Abs(float64(trY(z.At(1)) - trY(z.At(0))))
	half := arrowFraction * math.Min(cellW, cellH) / 2

	arrows := make([]arrow, 0, x.Count*z.Count)
	for iz, row := range a.data.Field {
		for ix, b := range row {
			if b.Bx == 0 && b.Bz == 0 {
				continue
			}
			angle := math.Atan2(b.Bz, b.Bx)
			cx, cy := float64(trX(x.At(ix))), float64(trY(z.At(iz)))
			dx, dy := half*math.Cos(angle), half*math.Sin(angle)

			magnitude := 0.0
			if a.data.BaseLength > 0 {
				magnitude = b.Magnitude() / a.data.BaseLength
			}
			arrows = append(arrows, arrow{
				From:  vg.Point{X: vg.Length(cx - dx), Y: vg.Length(cy - dy)},
				To:    vg.Point{X: vg.Length(cx + dx), Y: vg.Length(cy + dy)},
				Color: arrowColor(magnitude),
			})
		}
	}
	return arrows
}

// 箭头三角形, 长度为箭身的 30%
func arrowHead(from, to vg.Point) []vg.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	back := vg.Point{X: to.X - 0.3*dx, Y: to.Y - 0.3*dy}
	nx, ny := -0.15*dy, 0.15*dx
	return []vg.Point{
		to,
		{X: back.X + nx, Y: back.Y + ny},
		{X: back.X - nx, Y: back.Y - ny},
	}
}

// Plot builds the arrow plot of data. Arrow color goes from black to red with
// |B| relative to the base length.
func Plot(data model.FieldData) (*plot.Plot, error) {
	rows, cols := data.Field.Dims()
	if rows != data.ZRange.Count || cols != data.XRange.Count {
		return nil, fmt.Errorf("field is %dx%d, grid is %dx%d", rows, cols, data.ZRange.Count, data.XRange.Count)
	}

	p := plot.New()
	p.Title.Text = "Coil Calculator"
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "z (mm)"

	p.Add(NewArrows(data))

	wires, err := plotter.NewScatter(wireCrossSections(data.Loops))
	if err != nil {
		return nil, fmt.Errorf("loop markers: %w", err)
	}
	wires.GlyphStyle.Color = color.RGBA{R: 0xff, G: 0x83, A: 0xff}
	wires.GlyphStyle.Shape = draw.CircleGlyph{}
	wires.GlyphStyle.Radius = vg.Points(4)
	p.Add(wires)

	return p, nil
}

// Save writes the arrow plot of data to path; the format follows the file extension.
func Save(data model.FieldData, width, height vg.Length, path string) error {
	p, err := Plot(data)
	if err != nil {
		return err
	}
	return p.Save(width, height, path)
}

// 线圈与 x–z 平面的两个交点
func wireCrossSections(loops []model.CurrentLoop) plotter.XYs {
	pts := make(plotter.XYs, 0, 2*len(loops))
	for _, loop := range loops {
		pts = append(pts,
			plotter.XY{X: loop.Center.X - loop.Radius, Y: loop.Center.Z},
			plotter.XY{X: loop.Center.X + loop.Radius, Y: loop.Center.Z},
		)
	}
	return pts
}

// magnitude 为 |B| / base length
func arrowColor(magnitude float64) color.Color {
	return color.RGBA{R: uint8(math.Min(1, magnitude) * 255), A: 0xff}
}
