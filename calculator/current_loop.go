package calculator

import (
	"fmt"
	"math"

	"coilcalc/model"
)

// μ0/(4π) 在 mm、A、Gauss 单位下的系数
const fieldConstant = 0.2

// FieldAt returns the magnetic field of loop at (x, y, z), all in mm.
//
// The radial component is zero on the loop axis and both components are zero on the
// wire itself (rho == radius, z == 0). The true field is undefined on the wire; the
// zero there is an approximation, not a physical value.
func FieldAt(loop model.CurrentLoop, x, y, z float64) (model.FieldVector, error) {
	// 平移到线圈坐标系
	x -= loop.Center.X
	y -= loop.Center.Y
	z -= loop.Center.Z

	// 转换为柱坐标
	rho := math.Sqrt(x*x + y*y)
	phi := math.Atan2(y, x)
	z2 := z * z
	r2 := loop.Radius * loop.Radius
	rho2 := rho * rho

	d := math.Sqrt((rho+loop.Radius)*(rho+loop.Radius) + z2)
	m := 4 * rho * loop.Radius / (d * d)
	ellK, ellE, err := CompleteEllipticIntegrals(m)
	if err != nil {
		return model.FieldVector{}, fmt.Errorf("field at local point (%v, %v, %v): %w", x, y, z, err)
	}

	denom := (loop.Radius-rho)*(loop.Radius-rho) + z2

	var br float64
	if rho != 0 && denom != 0 {
		br = fieldConstant * loop.Current * z / (rho * d) * (-ellK + ellE*(r2+rho2+z2)/denom)
	}

	var bz float64
	if denom != 0 {
		bz = fieldConstant * loop.Current / d * (ellK + ellE*(r2-rho2-z2)/denom)
	}

	return model.FieldVector{
		Bx: br * math.Cos(phi),
		By: br * math.Sin(phi),
		Bz: bz,
	}, nil
}

// 多个线圈在同一点的叠加
func superpose(loops []model.CurrentLoop, x, y, z float64) (model.FieldVector, error) {
	var b model.FieldVector
	for _, loop := range loops {
		add, err := FieldAt(loop, x, y, z)
		if err != nil {
			return model.FieldVector{}, err
		}
		b = b.Add(add)
	}
	return b, nil
}
