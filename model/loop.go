package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidLoop  = errors.New("model: invalid current loop")
	ErrInvalidRange = errors.New("model: invalid sampling range")
)

// 空间坐标，单位mm
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CurrentLoop is a circular loop of wire around an axis parallel to z.
// Center and Radius are in mm, Current in A; the sign of Current gives the direction.
type CurrentLoop struct {
	Center  Point   `json:"center"`
	Radius  float64 `json:"radius"`
	Current float64 `json:"current"`
}

func NewCurrentLoop(x, y, z, radius, current float64) CurrentLoop {
	return CurrentLoop{
		Center:  Point{X: x, Y: y, Z: z},
		Radius:  radius,
		Current: current,
	}
}

// Validate rejects loops the field formula is not defined for.
func (l CurrentLoop) Validate() error {
	for _, v := range []float64{l.Center.X, l.Center.Y, l.Center.Z, l.Radius, l.Current} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %v", ErrInvalidLoop, v)
		}
	}
	if l.Radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidLoop, l.Radius)
	}
	return nil
}

// Range is one axis of the sampling grid: Count points spaced evenly from Min to Max.
type Range struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

func NewRange(min, max float64, count int) Range {
	return Range{Min: min, Max: max, Count: count}
}

func (r Range) Validate() error {
	if r.Count < 2 {
		return fmt.Errorf("%w: count %d, need at least 2", ErrInvalidRange, r.Count)
	}
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: bounds [%v, %v]", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// 步长
func (r Range) Step() float64 {
	return (r.Max - r.Min) / float64(r.Count-1)
}

// 第i个采样点
func (r Range) At(i int) float64 {
	return r.Min + float64(i)*r.Step()
}

// FieldVector is a magnetic field in Gauss.
type FieldVector struct {
	Bx float64 `json:"bx"`
	By float64 `json:"by"`
	Bz float64 `json:"bz"`
}

func (v FieldVector) Add(o FieldVector) FieldVector {
	return FieldVector{Bx: v.Bx + o.Bx, By: v.By + o.By, Bz: v.Bz + o.Bz}
}

func (v FieldVector) Magnitude() float64 {
	return floats.Norm([]float64{v.Bx, v.By, v.Bz}, 2)
}

func (v FieldVector) IsFinite() bool {
	for _, c := range []float64{v.Bx, v.By, v.Bz} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// FieldGrid holds sampled vectors, outer index z, inner index x.
type FieldGrid [][]FieldVector

// Dims returns (rows, columns), i.e. (z count, x count).
func (g FieldGrid) Dims() (int, int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}
