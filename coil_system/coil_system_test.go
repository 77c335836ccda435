package coil_system

import (
	"testing"

	"coilcalc/calculator"
	"coilcalc/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	xRange = model.NewRange(-30, 30, 20)
	zRange = model.NewRange(-30, 30, 20)
)

func newSystem(t *testing.T) *CoilSystem {
	t.Helper()
	c, err := NewCoilSystem([]model.CurrentLoop{model.NewCurrentLoop(0, 0, 0, 5, 1)}, xRange, zRange, 2)
	require.NoError(t, err)
	return c
}

func TestNewCoilSystem(t *testing.T) {
	c := newSystem(t)
	data := c.BuildData()

	want, err := calculator.Sample(data.Loops, xRange, zRange)
	require.NoError(t, err)
	assert.Equal(t, want, data.Field)
	assert.Equal(t, calculator.BaseLength(want), data.BaseLength)
	assert.Positive(t, data.BaseLength)

	_, err = NewCoilSystem([]model.CurrentLoop{model.NewCurrentLoop(0, 0, 0, 0, 1)}, xRange, zRange, 2)
	assert.ErrorIs(t, err, model.ErrInvalidLoop)
	_, err = NewCoilSystem(nil, model.NewRange(0, 1, 1), zRange, 2)
	assert.ErrorIs(t, err, model.ErrInvalidRange)
}

func TestCoilSystem_MoveLoop(t *testing.T) {
	c := newSystem(t)
	require.NoError(t, c.MoveLoop(0, 3, -7))

	loops := c.Loops()
	require.Len(t, loops, 1)
	assert.Equal(t, model.Point{X: 3, Y: 0, Z: -7}, loops[0].Center)

	want, err := calculator.Sample(loops, xRange, zRange)
	require.NoError(t, err)
	assert.Equal(t, want, c.BuildData().Field)

	assert.ErrorIs(t, c.MoveLoop(1, 0, 0), ErrLoopIndex)
	assert.ErrorIs(t, c.MoveLoop(-1, 0, 0), ErrLoopIndex)
}

func TestCoilSystem_DragLoop(t *testing.T) {
	c := newSystem(t)
	require.NoError(t, c.DragLoop(0, -12, 4))
	assert.Equal(t, model.Point{X: -7, Y: 0, Z: 4}, c.Loops()[0].Center)
}

func TestCoilSystem_MoveKeepsBaseLength(t *testing.T) {
	c := newSystem(t)
	base := c.BuildData().BaseLength

	require.NoError(t, c.MoveLoop(0, 13, 11))
	data := c.BuildData()
	assert.Equal(t, base, data.BaseLength)
	assert.NotEqual(t, base, calculator.BaseLength(data.Field))

	require.NoError(t, c.DragLoop(0, -20, -9))
	assert.Equal(t, base, c.BuildData().BaseLength)

	// 修改网格后重新计算
	require.NoError(t, c.SetGrid(xRange, zRange))
	data = c.BuildData()
	assert.Equal(t, calculator.BaseLength(data.Field), data.BaseLength)
	assert.NotEqual(t, base, data.BaseLength)
}

func TestCoilSystem_AddRemoveLoop(t *testing.T) {
	c := newSystem(t)
	single := c.BuildData()
	require.NoError(t, c.AddLoop(model.NewCurrentLoop(0, 0, 10, 5, 1)))
	assert.Len(t, c.Loops(), 2)
	assert.NotEqual(t, single.Field, c.BuildData().Field)

	require.NoError(t, c.RemoveLoop(1))
	assert.Len(t, c.Loops(), 1)
	assert.Equal(t, single.Field, c.BuildData().Field)

	assert.ErrorIs(t, c.RemoveLoop(5), ErrLoopIndex)
	assert.ErrorIs(t, c.AddLoop(model.NewCurrentLoop(0, 0, 0, -1, 1)), model.ErrInvalidLoop)
	assert.Len(t, c.Loops(), 1)
}

func TestCoilSystem_FailedMutationKeepsState(t *testing.T) {
	c := newSystem(t)
	before := c.BuildData()

	assert.Error(t, c.SetLoops([]model.CurrentLoop{model.NewCurrentLoop(0, 0, 0, -5, 1)}))
	assert.Error(t, c.SetGrid(model.NewRange(0, 1, 1), zRange))
	assert.Equal(t, before, c.BuildData())
}

func TestCoilSystem_SetGrid(t *testing.T) {
	c := newSystem(t)
	require.NoError(t, c.SetGrid(model.NewRange(-5, 5, 3), model.NewRange(0, 10, 4)))

	x, z := c.Grid()
	assert.Equal(t, model.NewRange(-5, 5, 3), x)
	assert.Equal(t, model.NewRange(0, 10, 4), z)

	rows, cols := c.BuildData().Field.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 3, cols)
}

func TestCoilSystem_SetLoopsCopies(t *testing.T) {
	c := newSystem(t)
	loops := []model.CurrentLoop{model.NewCurrentLoop(1, 0, 1, 2, 3)}
	require.NoError(t, c.SetLoops(loops))
	loops[0].Radius = 100
	assert.Equal(t, 2.0, c.Loops()[0].Radius)
}

func TestCoilSystem_Reset(t *testing.T) {
	c := newSystem(t)
	loops := []model.CurrentLoop{model.NewCurrentLoop(0, 0, -2.5, 5, 1), model.NewCurrentLoop(0, 0, 2.5, 5, 1)}
	require.NoError(t, c.Reset(loops, model.NewRange(-10, 10, 5), model.NewRange(-10, 10, 6)))

	data := c.BuildData()
	assert.Equal(t, loops, data.Loops)
	rows, cols := data.Field.Dims()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 5, cols)

	assert.Error(t, c.Reset(loops, model.NewRange(-10, 10, 5), model.NewRange(0, 0, 1)))
	assert.Equal(t, data, c.BuildData())
}
