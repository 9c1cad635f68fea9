package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Axis names one of the three cardinal axes for shear and reflection.
type Axis int

// The cardinal axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Matrix4 is a 4x4 homogeneous transform in the row-vector convention:
// a point p = (x, y, z, 1) transforms as p' = p * M, and in a product
// A * B the transform A is applied first.
//
// The upper 4x3 block (M11..M34) carries rotation, scale and shear; the
// last row (TX, TY, TZ, TW) carries translation and the homogeneous term.
// For a pure rotation the upper-left 3x3 block is orthonormal and TW is 1.
type Matrix4 struct {
	M11, M12, M13, M14 float64
	M21, M22, M23, M24 float64
	M31, M32, M33, M34 float64
	TX, TY, TZ, TW     float64
}

// NewMatrix4 returns a matrix with explicit components in row-major order.
func NewMatrix4(
	m11, m12, m13, m14,
	m21, m22, m23, m24,
	m31, m32, m33, m34,
	tx, ty, tz, tw float64,
) Matrix4 {
	return Matrix4{
		m11, m12, m13, m14,
		m21, m22, m23, m24,
		m31, m32, m33, m34,
		tx, ty, tz, tw,
	}
}

// Matrix4Identity returns the identity transform.
func Matrix4Identity() Matrix4 {
	return Matrix4{M11: 1, M22: 1, M33: 1, TW: 1}
}

// Elements returns the 16 scalars in row-major order: the three upper rows
// followed by the translation row.
func (m Matrix4) Elements() [16]float64 {
	return [16]float64{
		m.M11, m.M12, m.M13, m.M14,
		m.M21, m.M22, m.M23, m.M24,
		m.M31, m.M32, m.M33, m.M34,
		m.TX, m.TY, m.TZ, m.TW,
	}
}

func matrix4FromElements(a [16]float64) Matrix4 {
	return Matrix4{
		a[0], a[1], a[2], a[3],
		a[4], a[5], a[6], a[7],
		a[8], a[9], a[10], a[11],
		a[12], a[13], a[14], a[15],
	}
}

// RowMajor returns the matrix as a flat single-precision array in row-major
// order, the layout a graphics backend consumes.
func (m Matrix4) RowMajor() [16]float32 {
	el := m.Elements()
	var out [16]float32
	for i, v := range el {
		out[i] = float32(v)
	}
	return out
}

// Mgl64 returns the same linear map as an mgl64.Mat4. mgl64 stores
// column-major matrices in the column-vector convention, which is the
// transpose of this type's layout; reinterpreting the row-major elements as
// column-major performs exactly that transpose.
func (m Matrix4) Mgl64() mgl64.Mat4 {
	return mgl64.Mat4(m.Elements())
}

// Mgl32 is the single-precision variant of Mgl64.
func (m Matrix4) Mgl32() mgl32.Mat4 {
	return mgl32.Mat4(m.RowMajor())
}

// Dense returns the matrix as a 4x4 gonum dense matrix in this type's own
// row-major, row-vector layout.
func (m Matrix4) Dense() *mat.Dense {
	el := m.Elements()
	return mat.NewDense(4, 4, el[:])
}

// mat4Mul is the two-operand core of Matrix4Multiply: standard row-vector
// matrix product, a applied before b.
func mat4Mul(a, b Matrix4) Matrix4 {
	x := a.Elements()
	y := b.Elements()
	var out [16]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += x[4*r+k] * y[4*k+c]
			}
			out[4*r+c] = sum
		}
	}
	return matrix4FromElements(out)
}

// Matrix4Multiply reduces two or more matrices left to right. Under the
// row-vector convention the result applies its operands in argument order:
// p * Matrix4Multiply(A, B) transforms p by A first, then B. Mirrors
// QuatCrossProduct's operand order.
func Matrix4Multiply(ms ...Matrix4) (Matrix4, error) {
	if len(ms) < 2 {
		return Matrix4{}, ErrNeedTwoOperands
	}
	result := ms[0]
	for _, m := range ms[1:] {
		result = mat4Mul(result, m)
	}
	return result, nil
}

// compose right-multiplies an elementary transform onto the receiver. All
// Set* constructors accumulate this way; reset to the identity first when a
// fresh transform is wanted.
func (m *Matrix4) compose(elem Matrix4) {
	*m = mat4Mul(*m, elem)
}

// SetToRotateAboutX composes a rotation of theta about the X axis onto the
// receiver.
func (m *Matrix4) SetToRotateAboutX(theta float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	elem := Matrix4Identity()
	elem.M22, elem.M23 = c, s
	elem.M32, elem.M33 = -s, c
	m.compose(elem)
}

// SetToRotateAboutY composes a rotation of theta about the Y axis onto the
// receiver.
func (m *Matrix4) SetToRotateAboutY(theta float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	elem := Matrix4Identity()
	elem.M11, elem.M13 = c, -s
	elem.M31, elem.M33 = s, c
	m.compose(elem)
}

// SetToRotateAboutZ composes a rotation of theta about the Z axis onto the
// receiver.
func (m *Matrix4) SetToRotateAboutZ(theta float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	elem := Matrix4Identity()
	elem.M11, elem.M12 = c, s
	elem.M21, elem.M22 = -s, c
	m.compose(elem)
}

// SetToRotateAboutAxis composes a rotation of theta about an arbitrary
// axis onto the receiver. The axis must be unit length within axisEpsilon.
func (m *Matrix4) SetToRotateAboutAxis(axis r3.Vector, theta float64) error {
	if math.Abs(axis.Norm()-1) > axisEpsilon {
		return newNonUnitAxisError(axis)
	}
	c, s := math.Cos(theta), math.Sin(theta)
	oc := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	elem := Matrix4Identity()
	elem.M11 = x*x*oc + c
	elem.M12 = x*y*oc + z*s
	elem.M13 = x*z*oc - y*s
	elem.M21 = x*y*oc - z*s
	elem.M22 = y*y*oc + c
	elem.M23 = y*z*oc + x*s
	elem.M31 = x*z*oc + y*s
	elem.M32 = y*z*oc - x*s
	elem.M33 = z*z*oc + c
	m.compose(elem)
	return nil
}

// SetScale composes a per-axis scale onto the receiver.
func (m *Matrix4) SetScale(s r3.Vector) {
	elem := Matrix4Identity()
	elem.M11 = s.X
	elem.M22 = s.Y
	elem.M33 = s.Z
	m.compose(elem)
}

// SetScaleFromAxis composes a scale of factor k along an arbitrary unit
// axis onto the receiver.
func (m *Matrix4) SetScaleFromAxis(axis r3.Vector, k float64) error {
	if math.Abs(axis.Norm()-1) > axisEpsilon {
		return newNonUnitAxisError(axis)
	}
	a := k - 1
	x, y, z := axis.X, axis.Y, axis.Z

	elem := Matrix4Identity()
	elem.M11 = 1 + a*x*x
	elem.M12 = a * x * y
	elem.M13 = a * x * z
	elem.M21 = a * x * y
	elem.M22 = 1 + a*y*y
	elem.M23 = a * y * z
	elem.M31 = a * x * z
	elem.M32 = a * y * z
	elem.M33 = 1 + a*z*z
	m.compose(elem)
	return nil
}

// SetShear composes a shear onto the receiver: the two coordinates other
// than axis are offset by s and t times the axis coordinate. For AxisX that
// is y += x*s, z += x*t, and cyclically for the others. The elementary
// matrix carries no translation.
func (m *Matrix4) SetShear(axis Axis, s, t float64) error {
	elem := Matrix4Identity()
	switch axis {
	case AxisX:
		elem.M12 = s
		elem.M13 = t
	case AxisY:
		elem.M21 = s
		elem.M23 = t
	case AxisZ:
		elem.M31 = s
		elem.M32 = t
	default:
		return errors.Errorf("unknown shear axis %d", axis)
	}
	m.compose(elem)
	return nil
}

// SetReflection composes a reflection across the plane perpendicular to
// the given axis onto the receiver.
func (m *Matrix4) SetReflection(axis Axis) error {
	elem := Matrix4Identity()
	switch axis {
	case AxisX:
		elem.M11 = -1
	case AxisY:
		elem.M22 = -1
	case AxisZ:
		elem.M33 = -1
	default:
		return errors.Errorf("unknown reflection axis %d", axis)
	}
	m.compose(elem)
	return nil
}

// SetTranslation composes a translation onto the receiver.
func (m *Matrix4) SetTranslation(v r3.Vector) {
	elem := Matrix4Identity()
	elem.TX = v.X
	elem.TY = v.Y
	elem.TZ = v.Z
	m.compose(elem)
}

// Determinant returns the determinant, expanded along the first row.
func (m Matrix4) Determinant() float64 {
	a := m.Elements()
	det := 0.0
	sign := 1.0
	for c := 0; c < 4; c++ {
		det += sign * a[c] * minor3(a, 0, c)
		sign = -sign
	}
	return det
}

// minor3 returns the determinant of the 3x3 submatrix left after deleting
// the given row and column from a 4x4 in row-major order.
func minor3(a [16]float64, row, col int) float64 {
	var sub [9]float64
	i := 0
	for r := 0; r < 4; r++ {
		if r == row {
			continue
		}
		for c := 0; c < 4; c++ {
			if c == col {
				continue
			}
			sub[i] = a[4*r+c]
			i++
		}
	}
	return sub[0]*(sub[4]*sub[8]-sub[5]*sub[7]) -
		sub[1]*(sub[3]*sub[8]-sub[5]*sub[6]) +
		sub[2]*(sub[3]*sub[7]-sub[4]*sub[6])
}

// Inverse replaces the receiver with its inverse, computed from the
// classical adjugate. No pivoting is needed at this fixed size.
//
// A receiver with determinant exactly zero has no inverse; it is replaced
// by the unscaled adjugate, a defined but geometrically meaningless value,
// rather than raising an error or producing NaN. Callers that must reject
// singular matrices should check Determinant themselves.
func (m *Matrix4) Inverse() {
	a := m.Elements()
	var adj [16]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sign := 1.0
			if (r+c)%2 == 1 {
				sign = -1
			}
			adj[4*c+r] = sign * minor3(a, r, c)
		}
	}
	det := a[0]*adj[0] + a[1]*adj[4] + a[2]*adj[8] + a[3]*adj[12]
	if det != 0 {
		inv := 1 / det
		for i := range adj {
			adj[i] *= inv
		}
	}
	*m = matrix4FromElements(adj)
}

// Transpose transposes the receiver in place, swapping the 4x3 block and
// the translation row across the diagonal.
func (m *Matrix4) Transpose() {
	a := m.Elements()
	var out [16]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[4*c+r] = a[4*r+c]
		}
	}
	*m = matrix4FromElements(out)
}

// SetLookAt composes a view transform onto the receiver: the transform
// taking world coordinates to the camera space of a camera at eye looking
// at center with the given up hint.
//
// The camera basis is z = normalize(eye-center), x = normalize(up×z),
// y = z×x. The camera-to-world transform is built rotation first, then
// translation (inverting a product reverses its factors, so composing in
// the pre-reversed order yields the view matrix directly after the final
// inversion).
func (m *Matrix4) SetLookAt(eye, center, up r3.Vector) {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	rotation := Matrix4Identity()
	rotation.M11, rotation.M12, rotation.M13 = x.X, x.Y, x.Z
	rotation.M21, rotation.M22, rotation.M23 = y.X, y.Y, y.Z
	rotation.M31, rotation.M32, rotation.M33 = z.X, z.Y, z.Z

	translation := Matrix4Identity()
	translation.TX, translation.TY, translation.TZ = eye.X, eye.Y, eye.Z

	camToWorld := mat4Mul(rotation, translation)
	camToWorld.Inverse()
	m.compose(camToWorld)
}

// SetOrtho composes an orthographic projection onto the receiver, mapping
// the box [l,r]x[b,t]x[near,far] to the [-1,1] cube. The symmetric unit
// box yields the exact identity.
func (m *Matrix4) SetOrtho(l, r, b, t, near, far float64) {
	elem := Matrix4Identity()
	elem.M11 = 2 / (r - l)
	elem.M22 = 2 / (t - b)
	elem.M33 = 2 / (far - near)
	elem.TX = -(r + l) / (r - l)
	elem.TY = -(t + b) / (t - b)
	elem.TZ = -(far + near) / (far - near)
	m.compose(elem)
}

// SetPerspective composes a perspective projection onto the receiver.
// fov is the vertical field of view in radians; the focal term is the
// cotangent of its half angle. The camera looks down -Z: a point at
// z = -near divides to clip depth -1 and z = -far to +1.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float64) {
	f := math.Tan(math.Pi/2 - fov/2)
	rangeInv := 1 / (near - far)

	elem := Matrix4{}
	elem.M11 = f / aspect
	elem.M22 = f
	elem.M33 = (near + far) * rangeInv
	elem.M34 = -1
	elem.TZ = 2 * near * far * rangeInv
	m.compose(elem)
}

// Matrix4FromObjectToWorldQuaternion builds the rotation matrix that takes
// object-space row vectors to world space for the rotation q.
func Matrix4FromObjectToWorldQuaternion(q Quaternion) Matrix4 {
	w, x, y, z := q.W, q.X, q.Y, q.Z

	m := Matrix4Identity()
	m.M11 = 1 - 2*(y*y+z*z)
	m.M12 = 2 * (x*y + w*z)
	m.M13 = 2 * (x*z - w*y)
	m.M21 = 2 * (x*y - w*z)
	m.M22 = 1 - 2*(x*x+z*z)
	m.M23 = 2 * (y*z + w*x)
	m.M31 = 2 * (x*z + w*y)
	m.M32 = 2 * (y*z - w*x)
	m.M33 = 1 - 2*(x*x+y*y)
	return m
}

// Matrix4FromWorldToObjectQuaternion builds the inverse rotation, the
// transpose of the object-to-world form.
func Matrix4FromWorldToObjectQuaternion(q Quaternion) Matrix4 {
	m := Matrix4FromObjectToWorldQuaternion(q)
	m.Transpose()
	return m
}

// Matrix4FromEulerAngles builds the object-to-world rotation for a set of
// Euler angles by composing the bank, pitch and heading elementary
// rotations. Independent of the quaternion derivation; the two agree
// within floating tolerance.
func Matrix4FromEulerAngles(e EulerAngles) Matrix4 {
	m := Matrix4Identity()
	m.SetToRotateAboutZ(e.Bank)
	m.SetToRotateAboutX(e.Pitch)
	m.SetToRotateAboutY(e.Heading)
	return m
}

// ApplyToVector transforms v as a point with an implicit w of 1, ignoring
// the resulting homogeneous coordinate. Suitable for affine transforms.
func (m Matrix4) ApplyToVector(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: v.X*m.M11 + v.Y*m.M21 + v.Z*m.M31 + m.TX,
		Y: v.X*m.M12 + v.Y*m.M22 + v.Z*m.M32 + m.TY,
		Z: v.X*m.M13 + v.Y*m.M23 + v.Z*m.M33 + m.TZ,
	}
}

// ApplyToPoint transforms v as a point with an implicit w of 1 and divides
// by the resulting homogeneous coordinate, as a projection requires. A zero
// homogeneous result skips the division instead of producing infinities.
func (m Matrix4) ApplyToPoint(v r3.Vector) r3.Vector {
	out := m.ApplyToVector(v)
	w := v.X*m.M14 + v.Y*m.M24 + v.Z*m.M34 + m.TW
	if w == 0 {
		return out
	}
	return out.Mul(1 / w)
}

// Matrix4AlmostEqual compares two matrices entry-wise within a tolerance.
func Matrix4AlmostEqual(a, b Matrix4, tol float64) bool {
	x := a.Elements()
	y := b.Elements()
	for i := range x {
		if math.Abs(x[i]-y[i]) >= tol {
			return false
		}
	}
	return true
}
