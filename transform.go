package esis

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Transform is a rigid-body transformation: a rotation followed by a translation.
// A Transform is never mutated once built; every operation returns a new value.
type Transform struct {
	rotation    *mat.Dense
	translation r3.Vector
}

var identityRotation = identity33()

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{identity33(), r3.Vector{}}
}

// Translation returns a pure translation by v.
func Translation(v r3.Vector) Transform {
	return Transform{identity33(), v}
}

// RotationX returns a pure rotation about the x axis.
func RotationX(θ float64) Transform {
	return Transform{R1(θ), r3.Vector{}}
}

// RotationY returns a pure rotation about the y axis.
func RotationY(θ float64) Transform {
	return Transform{R2(θ), r3.Vector{}}
}

// RotationZ returns a pure rotation about the z axis.
func RotationZ(θ float64) Transform {
	return Transform{R3(θ), r3.Vector{}}
}

// Rotation returns a copy of the rotation matrix.
func (t Transform) Rotation() *mat.Dense {
	if t.rotation == nil {
		return identity33()
	}
	return mat.DenseCopyOf(t.rotation)
}

// rot returns the rotation matrix without copying it; it must not be modified.
func (t Transform) rot() mat.Matrix {
	if t.rotation == nil {
		return identityRotation
	}
	return t.rotation
}

// Offset returns the translation part, i.e. where the local origin lands.
func (t Transform) Offset() r3.Vector {
	return t.translation
}

// Apply maps a point from the local frame into the parent frame.
func (t Transform) Apply(p r3.Vector) r3.Vector {
	return MxV33(t.rot(), p).Add(t.translation)
}

// ApplyAll maps every point of a wire.
func (t Transform) ApplyAll(ps []r3.Vector) []r3.Vector {
	r := t.rot()
	out := make([]r3.Vector, len(ps))
	for i, p := range ps {
		out[i] = MxV33(r, p).Add(t.translation)
	}
	return out
}

// ApplyVector rotates a direction; translations do not apply to directions.
func (t Transform) ApplyVector(v r3.Vector) r3.Vector {
	return MxV33(t.rot(), v)
}

// Compose returns t∘b: b is applied first, then t.
func (t Transform) Compose(b Transform) Transform {
	var r mat.Dense
	r.Mul(t.rot(), b.rot())
	return Transform{&r, t.Apply(b.translation)}
}

// Inverse returns the transformation undoing t.
func (t Transform) Inverse() Transform {
	rT := mat.DenseCopyOf(t.rot().T())
	return Transform{rT, MxV33(rT, t.translation).Mul(-1)}
}

// Chain composes transforms outward-to-inward: Chain(a, b, c) = a∘b∘c.
func Chain(ts ...Transform) Transform {
	out := Identity()
	for _, t := range ts {
		out = out.Compose(t)
	}
	return out
}

// RelativeTransform maps points expressed in the frame of b into the frame of a.
func RelativeTransform(a, b Transform) Transform {
	return a.Inverse().Compose(b)
}

// EqualApprox returns whether both transforms agree within tol.
func (t Transform) EqualApprox(b Transform, tol float64) bool {
	if !mat.EqualApprox(t.rot(), b.rot(), tol) {
		return false
	}
	return t.translation.Sub(b.translation).Norm() <= tol
}

// IsRigid returns whether the rotation part is a proper rotation.
func (t Transform) IsRigid() bool {
	return isRotation(t.rot(), 1e-9)
}

func (t Transform) String() string {
	return fmt.Sprintf("T=%v R=%v", t.translation, mat.Formatted(t.Rotation(), mat.Squeeze()))
}
