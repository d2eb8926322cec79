package math3d

import "errors"

var (
	// ErrDivideByZero is returned when a conversion or constructor would
	// divide by a zero parameter.
	ErrDivideByZero = errors.New("math3d: division by zero")

	// ErrSingular is returned when inverting a matrix with zero determinant.
	ErrSingular = errors.New("math3d: singular matrix")
)
