package calculator

import (
	"coilcalc/model"

	"gonum.org/v1/gonum/stat"
)

// Sample evaluates the superposed field of loops on the x–z grid at y = 0.
// Row iz holds z = zRange.At(iz), column ix holds x = xRange.At(ix).
// On error no grid is returned.
func Sample(loops []model.CurrentLoop, xRange, zRange model.Range) (model.FieldGrid, error) {
	if err := validateRanges(xRange, zRange); err != nil {
		return nil, err
	}

	field := make(model.FieldGrid, 0, zRange.Count)
	for iz := 0; iz < zRange.Count; iz++ {
		row, err := sampleRow(loops, xRange, zRange.At(iz))
		if err != nil {
			return nil, err
		}
		field = append(field, row)
	}
	return field, nil
}

// SampleConcurrently is Sample with rows spread over workers goroutines.
// The result is identical to Sample for the same input.
func SampleConcurrently(loops []model.CurrentLoop, xRange, zRange model.Range, workers int) (model.FieldGrid, error) {
	if err := validateRanges(xRange, zRange); err != nil {
		return nil, err
	}

	field := make(model.FieldGrid, zRange.Count)
	e := newExecutor(workers)
	err := e.dispatchTask(zRange.Count, func(t task) error {
		for iz := t.start; iz < t.end; iz++ {
			row, err := sampleRow(loops, xRange, zRange.At(iz))
			if err != nil {
				return err
			}
			field[iz] = row
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return field, nil
}

func sampleRow(loops []model.CurrentLoop, xRange model.Range, z float64) ([]model.FieldVector, error) {
	row := make([]model.FieldVector, 0, xRange.Count)
	for ix := 0; ix < xRange.Count; ix++ {
		b, err := superpose(loops, xRange.At(ix), 0, z)
		if err != nil {
			return nil, err
		}
		row = append(row, b)
	}
	return row, nil
}

func validateRanges(xRange, zRange model.Range) error {
	if err := xRange.Validate(); err != nil {
		return err
	}
	return zRange.Validate()
}

// BaseLength is the mean vector magnitude over the grid, used by the
// presentation layer to normalize arrow lengths and colors.
func BaseLength(field model.FieldGrid) float64 {
	rows, cols := field.Dims()
	if rows == 0 || cols == 0 {
		return 0
	}
	lengths := make([]float64, 0, rows*cols)
	for _, row := range field {
		for _, b := range row {
			lengths = append(lengths, b.Magnitude())
		}
	}
	return stat.Mean(lengths, nil)
}
