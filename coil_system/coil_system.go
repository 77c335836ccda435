package coil_system

import (
	"errors"
	"fmt"
	"sync"

	"coilcalc/calculator"
	"coilcalc/model"

	log "github.com/sirupsen/logrus"
)

var ErrLoopIndex = errors.New("coil_system: loop index out of range")

// 线圈配置 + 采样网格 + 最近一次采样结果
// 每次修改之后整体重新采样, 失败时保留修改前的状态
type CoilSystem struct {
	mu sync.Mutex

	workers int
	loops   []model.CurrentLoop
	xRange  model.Range
	zRange  model.Range

	field      model.FieldGrid
	baseLength float64
}

func NewCoilSystem(loops []model.CurrentLoop, xRange, zRange model.Range, workers int) (*CoilSystem, error) {
	c := &CoilSystem{workers: workers}
	if err := c.apply(loops, xRange, zRange, true); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"loops":   len(loops),
		"xRange":  xRange,
		"zRange":  zRange,
		"workers": workers,
	}).Info("初始化线圈系统")
	return c, nil
}

// 校验并重新采样, 成功后一次性提交
// rebase 为 false 时保留原来的 base length, 拖动过程中箭头颜色的基准不变
// 调用方持有 c.mu
func (c *CoilSystem) apply(loops []model.CurrentLoop, xRange, zRange model.Range, rebase bool) error {
	for i, loop := range loops {
		if err := loop.Validate(); err != nil {
			return fmt.Errorf("loop %d: %w", i, err)
		}
	}
	loops = append([]model.CurrentLoop(nil), loops...)

	field, err := calculator.SampleConcurrently(loops, xRange, zRange, c.workers)
	if err != nil {
		return err
	}

	c.loops = loops
	c.xRange = xRange
	c.zRange = zRange
	c.field = field
	if rebase {
		c.baseLength = calculator.BaseLength(field)
	}
	return nil
}

// 替换全部线圈
func (c *CoilSystem) SetLoops(loops []model.CurrentLoop) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.apply(loops, c.xRange, c.zRange, true); err != nil {
		return err
	}
	log.WithField("loops", len(loops)).Info("设置线圈")
	return nil
}

func (c *CoilSystem) AddLoop(loop model.CurrentLoop) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	loops := append(append([]model.CurrentLoop(nil), c.loops...), loop)
	if err := c.apply(loops, c.xRange, c.zRange, true); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"center":  loop.Center,
		"radius":  loop.Radius,
		"current": loop.Current,
	}).Info("添加线圈")
	return nil
}

func (c *CoilSystem) RemoveLoop(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.loops) {
		return fmt.Errorf("%w: %d", ErrLoopIndex, index)
	}
	loops := append(append([]model.CurrentLoop(nil), c.loops[:index]...), c.loops[index+1:]...)
	if err := c.apply(loops, c.xRange, c.zRange, true); err != nil {
		return err
	}
	log.WithField("index", index).Info("删除线圈")
	return nil
}

// MoveLoop puts the center of loop index at (x, center.y, z). Moving a loop
// keeps the base length, so colors stay comparable while the loop is dragged.
func (c *CoilSystem) MoveLoop(index int, x, z float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.move(index, func(loop *model.CurrentLoop) {
		loop.Center.X = x
		loop.Center.Z = z
	})
}

// DragLoop moves loop index so that its left wire cross-section sits at (x, z),
// the handle the front end lets the user grab.
func (c *CoilSystem) DragLoop(index int, x, z float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.move(index, func(loop *model.CurrentLoop) {
		loop.Center.X = x + loop.Radius
		loop.Center.Z = z
	})
}

func (c *CoilSystem) move(index int, f func(loop *model.CurrentLoop)) error {
	if index < 0 || index >= len(c.loops) {
		return fmt.Errorf("%w: %d", ErrLoopIndex, index)
	}
	loops := append([]model.CurrentLoop(nil), c.loops...)
	f(&loops[index])
	if err := c.apply(loops, c.xRange, c.zRange, false); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"index":  index,
		"center": loops[index].Center,
	}).Debug("移动线圈")
	return nil
}

// Reset replaces loops and grid together, e.g. when a preset is loaded.
func (c *CoilSystem) Reset(loops []model.CurrentLoop, xRange, zRange model.Range) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.apply(loops, xRange, zRange, true); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"loops":  len(loops),
		"xRange": xRange,
		"zRange": zRange,
	}).Info("重置线圈系统")
	return nil
}

// 设置采样网格
func (c *CoilSystem) SetGrid(xRange, zRange model.Range) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.apply(c.loops, xRange, zRange, true); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"xRange": xRange,
		"zRange": zRange,
	}).Info("设置采样网格")
	return nil
}

func (c *CoilSystem) Loops() []model.CurrentLoop {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.CurrentLoop(nil), c.loops...)
}

func (c *CoilSystem) Grid() (model.Range, model.Range) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.xRange, c.zRange
}

// BuildData returns the current snapshot for the front end. The field grid is
// shared with the system and must not be modified.
func (c *CoilSystem) BuildData() model.FieldData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.FieldData{
		Loops:      append([]model.CurrentLoop(nil), c.loops...),
		XRange:     c.xRange,
		ZRange:     c.zRange,
		Field:      c.field,
		BaseLength: c.baseLength,
	}
}
