package vmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform (rotation plus translation, no scale or shear)
// stored as a unit dual quaternion. It is the compact alternative to a
// Matrix4 when only rigid motion is needed, and composes without the drift
// a chain of matrix products accumulates.
type Pose struct {
	Quat dualquat.Number
}

// NewPose returns a pointer to an identity Pose. The real part of a unit
// dual quaternion is a unit quaternion, not all zeroes, so this should be
// used instead of &Pose{}.
func NewPose() *Pose {
	return &Pose{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewPoseFromQuaternion returns a Pose rotating by q with no translation.
// Zero-norm rotations are replaced by the identity rather than producing a
// degenerate pose.
func NewPoseFromQuaternion(q Quaternion) *Pose {
	q.Normalize()
	return &Pose{dualquat.Number{
		Real: q.Number(),
		Dual: quat.Number{},
	}}
}

// NewPoseFromMatrix4 extracts the rigid part of a transform: the rotation
// of its upper 3x3 block (assumed orthonormal) and its translation row.
func NewPoseFromMatrix4(m Matrix4) *Pose {
	p := NewPoseFromQuaternion(QuatFromRotationMatrix(m))
	p.SetTranslation(r3.Vector{X: m.TX, Y: m.TY, Z: m.TZ})
	return p
}

// Clone returns a Pose identical to this one.
func (p *Pose) Clone() *Pose {
	// Dual quaternions are primitives all the way down, no deep copy needed.
	return &Pose{p.Quat}
}

// Rotation returns the rotation component.
func (p *Pose) Rotation() Quaternion {
	return quatFromNumber(p.Quat.Real)
}

// Translation returns the translation component.
func (p *Pose) Translation() r3.Vector {
	cart := dualquat.Mul(p.Quat, dualquat.Conj(p.Quat))
	return r3.Vector{X: cart.Dual.Imag, Y: cart.Dual.Jmag, Z: cart.Dual.Kmag}
}

// SetTranslation sets the translation component, correctly multiplied
// against the rotation.
func (p *Pose) SetTranslation(v r3.Vector) {
	p.Quat.Dual = quat.Number{Imag: v.X / 2, Jmag: v.Y / 2, Kmag: v.Z / 2}
	p.rotate()
}

// rotate multiplies the dual part by the real part to give the correct
// rotation-aware translation encoding.
func (p *Pose) rotate() {
	p.Quat.Dual = quat.Mul(p.Quat.Dual, p.Quat.Real)
}

// Transformation multiplies the receiver's dual quaternion by another,
// composing the two rigid transforms. The rotation part of by is
// normalized first so the result stays a unit dual quaternion.
func (p *Pose) Transformation(by dualquat.Number) dualquat.Number {
	if vecLen := quat.Abs(by.Real); vecLen != 1 {
		by.Real = quat.Scale(1/vecLen, by.Real)
	}
	return dualquat.Mul(p.Quat, by)
}

// Matrix4 expands the pose back into a homogeneous transform: the rotation
// block from the real part, the translation row from the encoded dual part.
func (p *Pose) Matrix4() Matrix4 {
	m := Matrix4FromObjectToWorldQuaternion(p.Rotation())
	t := p.Translation()
	m.TX, m.TY, m.TZ = t.X, t.Y, t.Z
	return m
}

// ToDelta returns the translation and axis-angle rotation differences
// between two poses as (dx, dy, dz, theta, rx, ry, rz).
func (p *Pose) ToDelta(other *Pose) []float64 {
	ret := make([]float64, 7)

	between := quat.Mul(other.Quat.Real, quat.Conj(p.Quat.Real))
	q := quatFromNumber(between)

	otherTrans := other.Translation()
	mTrans := p.Translation()
	axis := q.RotationAxis()
	ret[0] = otherTrans.X - mTrans.X
	ret[1] = otherTrans.Y - mTrans.Y
	ret[2] = otherTrans.Z - mTrans.Z
	ret[3] = q.RotationAngle()
	ret[4] = axis.X
	ret[5] = axis.Y
	ret[6] = axis.Z
	return ret
}
