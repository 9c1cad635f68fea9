package vmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrNeedTwoOperands is returned by the variadic products when called with
// fewer than two operands.
var ErrNeedTwoOperands = errors.New("product requires at least 2 operands")

// newNonUnitAxisError is used when an axis-taking constructor is given an
// axis whose length is not 1 within axisEpsilon.
func newNonUnitAxisError(axis r3.Vector) error {
	return errors.Errorf("axis %v is not unit length", axis)
}
