package vmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// RotationMatrix is a 3x3 rotation stored in the object-to-world form, the
// compact alternative to a Matrix4 when no translation or projection is
// carried. Same row-vector convention as Matrix4.
type RotationMatrix struct {
	M11, M12, M13 float64
	M21, M22, M23 float64
	M31, M32, M33 float64
}

// RotationMatrixIdentity returns the identity rotation.
func RotationMatrixIdentity() RotationMatrix {
	return RotationMatrix{M11: 1, M22: 1, M33: 1}
}

// Setup replaces the receiver with the object-to-world rotation for a set
// of Euler angles, in closed form.
func (rm *RotationMatrix) Setup(e EulerAngles) {
	ch, sh := math.Cos(e.Heading), math.Sin(e.Heading)
	cp, sp := math.Cos(e.Pitch), math.Sin(e.Pitch)
	cb, sb := math.Cos(e.Bank), math.Sin(e.Bank)

	rm.M11 = cb*ch + sb*sp*sh
	rm.M12 = sb * cp
	rm.M13 = -cb*sh + sb*sp*ch
	rm.M21 = -sb*ch + cb*sp*sh
	rm.M22 = cb * cp
	rm.M23 = sb*sh + cb*sp*ch
	rm.M31 = cp * sh
	rm.M32 = -sp
	rm.M33 = cp * ch
}

// FromObjectToWorldQuaternion replaces the receiver with the rotation of an
// object-to-world quaternion.
func (rm *RotationMatrix) FromObjectToWorldQuaternion(q Quaternion) {
	m := Matrix4FromObjectToWorldQuaternion(q)
	*rm = rotationMatrixFromMatrix4(m)
}

// FromWorldToObjectQuaternion replaces the receiver with the rotation of a
// world-to-object quaternion, stored in the object-to-world form.
func (rm *RotationMatrix) FromWorldToObjectQuaternion(q Quaternion) {
	m := Matrix4FromObjectToWorldQuaternion(QuatConjugate(q))
	*rm = rotationMatrixFromMatrix4(m)
}

func rotationMatrixFromMatrix4(m Matrix4) RotationMatrix {
	return RotationMatrix{
		m.M11, m.M12, m.M13,
		m.M21, m.M22, m.M23,
		m.M31, m.M32, m.M33,
	}
}

// ObjectToWorld rotates an object-space vector into world space.
func (rm RotationMatrix) ObjectToWorld(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: v.X*rm.M11 + v.Y*rm.M21 + v.Z*rm.M31,
		Y: v.X*rm.M12 + v.Y*rm.M22 + v.Z*rm.M32,
		Z: v.X*rm.M13 + v.Y*rm.M23 + v.Z*rm.M33,
	}
}

// WorldToObject rotates a world-space vector into object space by applying
// the transpose, which for an orthonormal matrix is the inverse.
func (rm RotationMatrix) WorldToObject(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: v.X*rm.M11 + v.Y*rm.M12 + v.Z*rm.M13,
		Y: v.X*rm.M21 + v.Y*rm.M22 + v.Z*rm.M23,
		Z: v.X*rm.M31 + v.Y*rm.M32 + v.Z*rm.M33,
	}
}

// EulerAngles extracts the canonical Euler angles of the rotation.
func (rm RotationMatrix) EulerAngles() EulerAngles {
	return EulerFromMatrix4(rm.Matrix4())
}

// Quaternion extracts the object-to-world rotation quaternion.
func (rm RotationMatrix) Quaternion() Quaternion {
	return QuatFromRotationMatrix(rm.Matrix4())
}

// Matrix4 embeds the rotation in a full homogeneous transform.
func (rm RotationMatrix) Matrix4() Matrix4 {
	m := Matrix4Identity()
	m.M11, m.M12, m.M13 = rm.M11, rm.M12, rm.M13
	m.M21, m.M22, m.M23 = rm.M21, rm.M22, rm.M23
	m.M31, m.M32, m.M33 = rm.M31, rm.M32, rm.M33
	return m
}

// Dense returns the rotation as a 3x3 gonum dense matrix.
func (rm RotationMatrix) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		rm.M11, rm.M12, rm.M13,
		rm.M21, rm.M22, rm.M23,
		rm.M31, rm.M32, rm.M33,
	})
}
