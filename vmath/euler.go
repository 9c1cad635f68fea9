package vmath

import (
	"math"

	"github.com/jin5354/vutils/utils"
)

// Pitch values whose sine exceeds this are treated as gimbal lock when
// extracting Euler angles from a rotation.
const gimbalSinPitch = 0.9999

// In canonical form, pitch within this of +-pi/2 transfers all bank into
// heading.
const gimbalPitchSlop = 1e-4

// EulerAngles is an orientation as three sequential rotations, in radians:
// heading about the vertical Y axis, then pitch about the object X axis,
// then bank about the object Z axis. Purely an input/output format; convert
// to a Quaternion or Matrix4 to compose rotations.
type EulerAngles struct {
	Heading, Pitch, Bank float64
}

// NewEulerAngles returns a set of Euler angles with explicit components.
func NewEulerAngles(heading, pitch, bank float64) EulerAngles {
	return EulerAngles{heading, pitch, bank}
}

// Canonize puts the receiver in canonical form: heading and bank in
// [-pi, pi), pitch in [-pi/2, pi/2], and in gimbal lock (pitch straight up
// or down) all rotation about the vertical transferred to heading.
// The canonical triple describes the same orientation.
func (e *EulerAngles) Canonize() {
	e.Pitch = utils.WrapPi(e.Pitch)
	if e.Pitch < -math.Pi/2 {
		e.Pitch = -math.Pi - e.Pitch
		e.Heading += math.Pi
		e.Bank += math.Pi
	} else if e.Pitch > math.Pi/2 {
		e.Pitch = math.Pi - e.Pitch
		e.Heading += math.Pi
		e.Bank += math.Pi
	}

	if math.Abs(e.Pitch) > math.Pi/2-gimbalPitchSlop {
		e.Heading += e.Bank
		e.Bank = 0
	} else {
		e.Bank = utils.WrapPi(e.Bank)
	}
	e.Heading = utils.WrapPi(e.Heading)
}

// EulerFromQuatObjectToWorld extracts canonical Euler angles from an
// object-to-world rotation quaternion. In gimbal lock, bank is reported as
// zero and heading absorbs the full rotation about the vertical.
func EulerFromQuatObjectToWorld(q Quaternion) EulerAngles {
	w, x, y, z := q.W, q.X, q.Y, q.Z

	sinPitch := -2 * (y*z - w*x)
	if math.Abs(sinPitch) > gimbalSinPitch {
		// Straight up or down: heading from the remaining degree of freedom.
		return EulerAngles{
			Heading: math.Atan2(-(2*(x*z-w*y)), 1-2*(y*y+z*z)),
			Pitch:   math.Copysign(math.Pi/2, sinPitch),
			Bank:    0,
		}
	}
	return EulerAngles{
		Heading: math.Atan2(2*(x*z+w*y), 1-2*(x*x+y*y)),
		Pitch:   math.Asin(utils.Clamp(sinPitch, -1, 1)),
		Bank:    math.Atan2(2*(x*y+w*z), 1-2*(x*x+z*z)),
	}
}

// EulerFromQuatWorldToObject is the counterpart for a world-to-object
// rotation quaternion.
func EulerFromQuatWorldToObject(q Quaternion) EulerAngles {
	return EulerFromQuatObjectToWorld(QuatConjugate(q))
}

// EulerFromMatrix4 extracts canonical Euler angles from the rotation block
// of an object-to-world transform, assuming it is orthonormal.
func EulerFromMatrix4(m Matrix4) EulerAngles {
	sinPitch := -m.M32
	if math.Abs(sinPitch) > gimbalSinPitch {
		return EulerAngles{
			Heading: math.Atan2(-m.M13, m.M11),
			Pitch:   math.Copysign(math.Pi/2, sinPitch),
			Bank:    0,
		}
	}
	return EulerAngles{
		Heading: math.Atan2(m.M31, m.M33),
		Pitch:   math.Asin(utils.Clamp(sinPitch, -1, 1)),
		Bank:    math.Atan2(m.M12, m.M22),
	}
}
