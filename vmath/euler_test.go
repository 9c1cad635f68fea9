package vmath

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestEulerQuatRoundTrip(t *testing.T) {
	for _, e := range []EulerAngles{
		{},
		{Heading: 0.3, Pitch: -0.5, Bank: 0.9},
		{Heading: -2.9, Pitch: 1.2, Bank: 3.0},
		{Heading: 1.8, Pitch: -1.4, Bank: -0.2},
	} {
		q := QuatFromEulerObjectToWorld(e)
		back := EulerFromQuatObjectToWorld(q)
		// the extracted triple is canonical; compare orientations, not angles
		q2 := QuatFromEulerObjectToWorld(back)
		test.That(t, QuaternionAlmostEqual(q, q2, 1e-9), test.ShouldBeTrue)
	}
}

func TestEulerQuatCanonicalAngles(t *testing.T) {
	e := NewEulerAngles(0.3, -0.5, 0.9)
	back := EulerFromQuatObjectToWorld(QuatFromEulerObjectToWorld(e))
	test.That(t, back.Heading, test.ShouldAlmostEqual, e.Heading, 1e-9)
	test.That(t, back.Pitch, test.ShouldAlmostEqual, e.Pitch, 1e-9)
	test.That(t, back.Bank, test.ShouldAlmostEqual, e.Bank, 1e-9)
}

func TestEulerWorldToObjectIsConjugate(t *testing.T) {
	e := NewEulerAngles(0.7, 0.2, -1.1)
	obj := QuatFromEulerObjectToWorld(e)
	world := QuatFromEulerWorldToObject(e)
	test.That(t, world, test.ShouldResemble, QuatConjugate(obj))

	back := EulerFromQuatWorldToObject(world)
	test.That(t, back.Heading, test.ShouldAlmostEqual, e.Heading, 1e-9)
	test.That(t, back.Pitch, test.ShouldAlmostEqual, e.Pitch, 1e-9)
	test.That(t, back.Bank, test.ShouldAlmostEqual, e.Bank, 1e-9)
}

func TestEulerFromMatrix4(t *testing.T) {
	e := NewEulerAngles(0.3, -0.5, 0.9)
	m := Matrix4FromEulerAngles(e)
	back := EulerFromMatrix4(m)
	test.That(t, back.Heading, test.ShouldAlmostEqual, e.Heading, 1e-9)
	test.That(t, back.Pitch, test.ShouldAlmostEqual, e.Pitch, 1e-9)
	test.That(t, back.Bank, test.ShouldAlmostEqual, e.Bank, 1e-9)
}

func TestEulerGimbalLock(t *testing.T) {
	// pitch straight up: bank collapses into heading
	e := NewEulerAngles(0.7, math.Pi/2, 0)
	m := Matrix4FromEulerAngles(e)
	back := EulerFromMatrix4(m)
	test.That(t, back.Heading, test.ShouldAlmostEqual, 0.7, 1e-6)
	test.That(t, back.Pitch, test.ShouldAlmostEqual, math.Pi/2, 1e-6)
	test.That(t, back.Bank, test.ShouldEqual, 0.0)

	back = EulerFromQuatObjectToWorld(QuatFromEulerObjectToWorld(e))
	test.That(t, back.Heading, test.ShouldAlmostEqual, 0.7, 1e-6)
	test.That(t, back.Pitch, test.ShouldAlmostEqual, math.Pi/2, 1e-6)
	test.That(t, back.Bank, test.ShouldEqual, 0.0)
}

func TestCanonize(t *testing.T) {
	e := NewEulerAngles(0.2, 2.0, 0.5)
	before := QuatFromEulerObjectToWorld(e)
	e.Canonize()

	test.That(t, e.Pitch, test.ShouldAlmostEqual, math.Pi-2.0, 1e-12)
	test.That(t, e.Heading, test.ShouldAlmostEqual, 0.2-math.Pi, 1e-12)
	test.That(t, e.Bank, test.ShouldAlmostEqual, 0.5-math.Pi, 1e-12)

	// canonizing preserves the orientation
	after := QuatFromEulerObjectToWorld(e)
	test.That(t, QuaternionAlmostEqual(before, after, 1e-9), test.ShouldBeTrue)

	// already canonical angles are untouched
	e = NewEulerAngles(0.3, -0.5, 0.9)
	e.Canonize()
	test.That(t, e.Heading, test.ShouldAlmostEqual, 0.3, 1e-12)
	test.That(t, e.Pitch, test.ShouldAlmostEqual, -0.5, 1e-12)
	test.That(t, e.Bank, test.ShouldAlmostEqual, 0.9, 1e-12)
}
