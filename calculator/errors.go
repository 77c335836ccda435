package calculator

import "errors"

// ErrInvalidArgument is returned when the elliptic integral parameter leaves [0, 1].
// It means the loop geometry or the grid handed to the sampler is broken upstream.
var ErrInvalidArgument = errors.New("calculator: elliptic parameter m outside [0, 1]")
