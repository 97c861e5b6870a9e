package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
	"github.com/poiesic/courserec/core"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/courserec/core"),
	)
	if err != nil {
		panic(err)
	}

	// Decoded lengths are checked by ValidateLength before a slice is
	// allocated.
	var (
		count   = typeops.WithNumEncoding(typeops.VarintPositive)
		bounded = typeops.WithLenValidator("ValidateLength")
		ints    = []typeops.SetOption{bounded, typeops.WithElem(count)}
		floats  = []typeops.SetOption{bounded, typeops.WithElem(typeops.WithNumEncoding(typeops.Raw))}
	)

	err = g.AddStruct(reflect.TypeFor[core.Course](),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	// The term index is rebuilt by NewVocabulary after decoding.
	err = g.AddStruct(reflect.TypeFor[core.Vocabulary](),
		structops.WithField(bounded),
		structops.WithField(typeops.WithIgnore()))
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.SparseMatrix](),
		structops.WithField(count),
		structops.WithField(count),
		structops.WithField(ints...),
		structops.WithField(ints...),
		structops.WithField(floats...))
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.DenseMatrix](),
		structops.WithField(count),
		structops.WithField(count),
		structops.WithField(floats...))
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.StoreMeta](),
		structops.WithField(count),
		structops.WithField(count),
		structops.WithField(count),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
