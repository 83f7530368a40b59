package esis

import "fmt"

// Element is one optical component of the instrument.
// The set of elements is closed: FrontAperture, CentralObscuration, PrimaryMirror,
// FieldStop, Grating, Filter and Camera.
type Element interface {
	// Surface resolves the element into its surface description.
	Surface() Surface
	fmt.Stringer
	element()
}

func (*FrontAperture) element()      {}
func (*CentralObscuration) element() {}
func (*PrimaryMirror) element()      {}
func (*FieldStop) element()          {}
func (*Grating) element()            {}
func (*Filter) element()             {}
func (*Camera) element()             {}

// PoseOf returns the pose of any element. Elements without an orientation only carry a translation.
func PoseOf(e Element) Pose {
	switch e := e.(type) {
	case *FrontAperture:
		return Pose{Translation: e.Translation}
	case *CentralObscuration:
		return Pose{Translation: e.Translation}
	case *FieldStop:
		return Pose{Translation: e.Translation}
	case *PrimaryMirror:
		return e.Pose
	case *Grating:
		return e.Pose
	case *Filter:
		return e.Pose
	case *Camera:
		return e.sensor().Pose
	default:
		panic(fmt.Sprintf("unknown element %T", e))
	}
}

// SurfaceOf returns the surface of any element.
func SurfaceOf(e Element) Surface {
	return e.Surface()
}
