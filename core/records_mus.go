package core

import (
	com "github.com/mus-format/common-go"
	slops "github.com/mus-format/mus-go/options/slice"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// Top-level slice serializers. Struct serializers live in
// records_mus.gen.go; these cover the lists stored outside a struct.
var (
	CoursesMUS = ord.NewValidSliceSer[Course](CourseMUS,
		slops.WithLenValidator[Course](com.ValidatorFn[int](ValidateLength)))
	Float64sMUS = ord.NewValidSliceSer[float64](raw.Float64,
		slops.WithLenValidator[float64](com.ValidatorFn[int](ValidateLength)))
)
