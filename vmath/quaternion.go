// Package vmath implements the rotation representations used across the
// library: quaternions, 4x4 homogeneous transforms, heading/pitch/bank Euler
// angles, 3x3 rotation matrices and dual quaternion poses, together with the
// conversions between them.
//
// All matrix types use the row-vector convention, p' = p * A * B applies A
// before B, and the quaternion product follows the same visual order (see
// QuatCrossProduct). Degenerate numeric inputs never produce NaN: zero-norm
// quaternions normalize to the identity, a zero rotation reports the X axis,
// and a singular matrix inverts to its unscaled adjugate.
package vmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/jin5354/vutils/utils"
)

// Axis inputs must be unit length within this tolerance.
const axisEpsilon = 0.01

// Quaternions whose dot product exceeds this are treated as parallel when
// interpolating, to avoid the 0/0 in the slerp weights.
const slerpParallelDot = 0.9999

// Exponentiating a quaternion this close to identity would divide by a
// vanishing sine, so it is returned unchanged.
const nearIdentityW = 0.999

// Quaternion is a rotation expressed as w + xi + yj + zk, where W is the
// cosine of the half angle and (X, Y, Z) is the rotation axis scaled by the
// sine of the half angle. Only unit quaternions represent rotations;
// non-unit values are valid intermediates.
type Quaternion struct {
	W, X, Y, Z float64
}

// NewQuaternion returns a quaternion with explicit components.
func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{w, x, y, z}
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quaternion {
	return Quaternion{W: 1}
}

// Number converts to the gonum quaternion representation.
func (q Quaternion) Number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

func quatFromNumber(n quat.Number) Quaternion {
	return Quaternion{n.Real, n.Imag, n.Jmag, n.Kmag}
}

// QuatNegate returns -q, the same rotation in the opposing octant of the
// double cover.
func QuatNegate(q Quaternion) Quaternion {
	return Quaternion{-q.W, -q.X, -q.Y, -q.Z}
}

// QuatConjugate returns the conjugate, which for a unit quaternion is its
// inverse rotation.
func QuatConjugate(q Quaternion) Quaternion {
	return quatFromNumber(quat.Conj(q.Number()))
}

// QuatNorm returns the Euclidean length of the 4-vector. The zero
// quaternion has norm 0.
func QuatNorm(q Quaternion) float64 {
	return quat.Abs(q.Number())
}

// QuatDot returns the 4-component dot product.
func QuatDot(a, b Quaternion) float64 {
	return a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// QuatScalarMultiply returns q with all four components scaled by s.
func QuatScalarMultiply(s float64, q Quaternion) Quaternion {
	return quatFromNumber(quat.Scale(s, q.Number()))
}

// ScalarMultiply scales the receiver in place.
func (q *Quaternion) ScalarMultiply(s float64) {
	*q = QuatScalarMultiply(s, *q)
}

// Normalize scales the receiver to unit length. A zero-norm receiver is
// reset to the identity instead of dividing by zero.
func (q *Quaternion) Normalize() {
	n := QuatNorm(*q)
	if n == 0 {
		*q = QuatIdentity()
		return
	}
	*q = QuatScalarMultiply(1/n, *q)
}

// quatMul is the two-operand core of QuatCrossProduct and carries the
// library's reversed operand convention: quatMul(a, b) is the textbook
// Hamilton product b*a.
func quatMul(a, b Quaternion) Quaternion {
	return quatFromNumber(quat.Mul(b.Number(), a.Number()))
}

// QuatCrossProduct reduces two or more quaternions left to right with the
// Hamilton product.
//
// NON-STANDARD CONVENTION: the operand order is reversed from mathematical
// notation. QuatCrossProduct(a, b) computes what textbooks write as b*a, so
// reading the arguments left to right gives the order the rotations are
// applied in. This matches Matrix4Multiply, where p' = p * A * B applies A
// first. Every composition in this package (Slerp call sites,
// AngularDisplacement, SetLookAt) relies on this one convention.
func QuatCrossProduct(qs ...Quaternion) (Quaternion, error) {
	if len(qs) < 2 {
		return Quaternion{}, ErrNeedTwoOperands
	}
	result := qs[0]
	for _, q := range qs[1:] {
		result = quatMul(result, q)
	}
	return result, nil
}

// QuatLog returns the logarithm-like pure quaternion (0, θ/2·x, θ/2·y,
// θ/2·z), where θ is the rotation angle of q.
//
// Note this is not the textbook quaternion logarithm: the imaginary
// components are the raw (sine-scaled) components of q, not the unit axis,
// so no 1/sin(θ/2) factor is applied. The deviation is deliberate and part
// of this function's contract.
func QuatLog(q Quaternion) Quaternion {
	halfTheta := utils.SafeAcos(q.W)
	return Quaternion{0, halfTheta * q.X, halfTheta * q.Y, halfTheta * q.Z}
}

// QuatPow raises a unit quaternion to an exponent, scaling its rotation
// angle by e. Quaternions within nearIdentityW of the identity are returned
// unchanged, since re-synthesizing them would divide by a vanishing sine.
func QuatPow(q Quaternion, e float64) Quaternion {
	if math.Abs(q.W) > nearIdentityW {
		return q
	}
	alpha := utils.SafeAcos(q.W)
	newAlpha := alpha * e
	mult := math.Sin(newAlpha) / math.Sin(alpha)
	return Quaternion{math.Cos(newAlpha), q.X * mult, q.Y * mult, q.Z * mult}
}

// AngularDisplacement returns the rotation taking orientation a to
// orientation b, i.e. the d with QuatCrossProduct(a, d) == b.
func AngularDisplacement(a, b Quaternion) Quaternion {
	return quatMul(QuatConjugate(a), b)
}

// Slerp spherically interpolates from a to b with constant angular
// velocity. t=0 returns a and t=1 returns b (possibly negated: when the dot
// product of the inputs is negative, b is flipped to its double-cover twin
// so the interpolation takes the shortest arc). Near-parallel inputs fall
// back to linear weights to avoid dividing by sin(ω)≈0.
func Slerp(a, b Quaternion, t float64) Quaternion {
	cosOmega := QuatDot(a, b)
	if cosOmega < 0 {
		b = QuatNegate(b)
		cosOmega = -cosOmega
	}

	var k0, k1 float64
	if cosOmega > slerpParallelDot {
		k0 = 1 - t
		k1 = t
	} else {
		sinOmega := math.Sqrt(1 - cosOmega*cosOmega)
		omega := math.Atan2(sinOmega, cosOmega)
		k0 = math.Sin((1-t)*omega) / sinOmega
		k1 = math.Sin(t*omega) / sinOmega
	}

	return Quaternion{
		W: a.W*k0 + b.W*k1,
		X: a.X*k0 + b.X*k1,
		Y: a.Y*k0 + b.Y*k1,
		Z: a.Z*k0 + b.Z*k1,
	}
}

// QuatFromRotationMatrix extracts the rotation of m's upper 3x3 block,
// assuming it is orthonormal in the object-to-world form produced by
// Matrix4FromObjectToWorldQuaternion.
//
// Uses Shepperd's method: of w, x, y and z, the component with the largest
// absolute value is computed from the diagonal first, and the remaining
// three are recovered from off-diagonal sums and differences. Branching on
// the largest term keeps the square root well away from zero.
func QuatFromRotationMatrix(m Matrix4) Quaternion {
	fourWSquaredMinus1 := m.M11 + m.M22 + m.M33
	fourXSquaredMinus1 := m.M11 - m.M22 - m.M33
	fourYSquaredMinus1 := m.M22 - m.M11 - m.M33
	fourZSquaredMinus1 := m.M33 - m.M11 - m.M22

	biggestIndex := 0
	biggest := fourWSquaredMinus1
	if fourXSquaredMinus1 > biggest {
		biggest = fourXSquaredMinus1
		biggestIndex = 1
	}
	if fourYSquaredMinus1 > biggest {
		biggest = fourYSquaredMinus1
		biggestIndex = 2
	}
	if fourZSquaredMinus1 > biggest {
		biggest = fourZSquaredMinus1
		biggestIndex = 3
	}

	biggestVal := math.Sqrt(biggest+1) * 0.5
	mult := 0.25 / biggestVal

	switch biggestIndex {
	case 1:
		return Quaternion{
			W: (m.M23 - m.M32) * mult,
			X: biggestVal,
			Y: (m.M12 + m.M21) * mult,
			Z: (m.M31 + m.M13) * mult,
		}
	case 2:
		return Quaternion{
			W: (m.M31 - m.M13) * mult,
			X: (m.M12 + m.M21) * mult,
			Y: biggestVal,
			Z: (m.M23 + m.M32) * mult,
		}
	case 3:
		return Quaternion{
			W: (m.M12 - m.M21) * mult,
			X: (m.M31 + m.M13) * mult,
			Y: (m.M23 + m.M32) * mult,
			Z: biggestVal,
		}
	default:
		return Quaternion{
			W: biggestVal,
			X: (m.M23 - m.M32) * mult,
			Y: (m.M31 - m.M13) * mult,
			Z: (m.M12 - m.M21) * mult,
		}
	}
}

// QuatFromEulerObjectToWorld builds the object-to-world rotation for a set
// of Euler angles from the closed-form half-angle products. Equivalent to
// QuatCrossProduct of the bank, pitch and heading elementary rotations.
func QuatFromEulerObjectToWorld(e EulerAngles) Quaternion {
	ch, sh := math.Cos(e.Heading/2), math.Sin(e.Heading/2)
	cp, sp := math.Cos(e.Pitch/2), math.Sin(e.Pitch/2)
	cb, sb := math.Cos(e.Bank/2), math.Sin(e.Bank/2)
	return Quaternion{
		W: ch*cp*cb + sh*sp*sb,
		X: ch*sp*cb + sh*cp*sb,
		Y: sh*cp*cb - ch*sp*sb,
		Z: ch*cp*sb - sh*sp*cb,
	}
}

// QuatFromEulerWorldToObject is the conjugate of the object-to-world form.
func QuatFromEulerWorldToObject(e EulerAngles) Quaternion {
	return QuatConjugate(QuatFromEulerObjectToWorld(e))
}

// SetToRotateAboutX sets the receiver to a rotation of theta about the X
// axis, replacing its previous value.
func (q *Quaternion) SetToRotateAboutX(theta float64) {
	*q = Quaternion{W: math.Cos(theta / 2), X: math.Sin(theta / 2)}
}

// SetToRotateAboutY sets the receiver to a rotation of theta about the Y
// axis, replacing its previous value.
func (q *Quaternion) SetToRotateAboutY(theta float64) {
	*q = Quaternion{W: math.Cos(theta / 2), Y: math.Sin(theta / 2)}
}

// SetToRotateAboutZ sets the receiver to a rotation of theta about the Z
// axis, replacing its previous value.
func (q *Quaternion) SetToRotateAboutZ(theta float64) {
	*q = Quaternion{W: math.Cos(theta / 2), Z: math.Sin(theta / 2)}
}

// SetToRotateAboutAxis sets the receiver to a rotation of theta about an
// arbitrary axis. The axis must already be unit length within axisEpsilon;
// it is an error, not silently normalized.
func (q *Quaternion) SetToRotateAboutAxis(axis r3.Vector, theta float64) error {
	if math.Abs(axis.Norm()-1) > axisEpsilon {
		return newNonUnitAxisError(axis)
	}
	sinHalf := math.Sin(theta / 2)
	*q = Quaternion{
		W: math.Cos(theta / 2),
		X: axis.X * sinHalf,
		Y: axis.Y * sinHalf,
		Z: axis.Z * sinHalf,
	}
	return nil
}

// RotationAngle returns the rotation angle of a unit quaternion, in
// [0, 2π].
func (q Quaternion) RotationAngle() float64 {
	return 2 * utils.SafeAcos(q.W)
}

// RotationAxis returns the unit rotation axis. A quaternion at or numerically
// past the identity has no meaningful axis and reports the canonical X axis.
func (q Quaternion) RotationAxis() r3.Vector {
	sinHalfSq := 1 - q.W*q.W
	if sinHalfSq <= 0 {
		return r3.Vector{X: 1}
	}
	oneOverSinHalf := 1 / math.Sqrt(sinHalfSq)
	return r3.Vector{
		X: q.X * oneOverSinHalf,
		Y: q.Y * oneOverSinHalf,
		Z: q.Z * oneOverSinHalf,
	}
}

// QuaternionAlmostEqual compares two quaternions component-wise within a
// tolerance, accounting for the double cover: q and -q compare equal.
func QuaternionAlmostEqual(a, b Quaternion, tol float64) bool {
	if QuatDot(a, b) < 0 {
		b = QuatNegate(b)
	}
	return utils.Float64AlmostEqual(a.W, b.W, tol) &&
		utils.Float64AlmostEqual(a.X, b.X, tol) &&
		utils.Float64AlmostEqual(a.Y, b.Y, tol) &&
		utils.Float64AlmostEqual(a.Z, b.Z, tol)
}
