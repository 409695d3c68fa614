// Package scaffold generates Go source files for new prompt definitions.
package scaffold

import (
	"bytes"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const PromptsPath = "github.com/go-go-golems/promptver/pkg/prompts"

const DefaultPackage = "promptdefs"

var ErrFileExists = errors.New("file already exists")

type Options struct {
	// Name is turned into the Go type name, e.g. "summarize article" ->
	// SummarizeArticle.
	Name     string
	Package  string
	Versions []string
	Default  string
	Strategy string
}

// normalize fills in defaults and validates o.
func (o Options) normalize() (Options, error) {
	ret := o
	if ret.Package == "" {
		ret.Package = DefaultPackage
	}
	if !token.IsIdentifier(ret.Package) {
		return ret, errors.Errorf("invalid package name %q", ret.Package)
	}
	if !token.IsIdentifier(TypeName(ret.Name)) {
		return ret, errors.Errorf("cannot derive a Go type name from %q", ret.Name)
	}
	if len(ret.Versions) == 0 {
		ret.Versions = []string{"v1"}
	}
	seen := map[string]bool{}
	for _, v := range ret.Versions {
		if err := prompts.CheckVersion(v); err != nil {
			return ret, err
		}
		if seen[v] {
			return ret, errors.Errorf("duplicate version %q", v)
		}
		seen[v] = true
	}
	if ret.Default == "" {
		ret.Default = ret.Versions[0]
	}
	if !seen[ret.Default] {
		return ret, &prompts.VersionNotFoundError{Version: ret.Default, Available: ret.Versions}
	}
	if _, err := prompts.ParseStrategy(ret.Strategy); err != nil {
		return ret, err
	}
	return ret, nil
}

func TypeName(name string) string {
	return strcase.ToCamel(name)
}

// FileName is the snake_case file the definition is written to.
func FileName(name string) string {
	return strcase.ToSnake(TypeName(name)) + ".go"
}

// Generate renders the definition source for opts into w.
func Generate(w io.Writer, opts Options) error {
	opts, err := opts.normalize()
	if err != nil {
		return err
	}

	typeName := TypeName(opts.Name)
	recv := func() *jen.Statement {
		return jen.Id("p").Op("*").Id(typeName)
	}

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Scaffolded by promptver make prompt.")

	f.Commentf("%s is a versioned prompt definition.", typeName)
	f.Type().Id(typeName).Struct()

	f.Var().Id("_").
		Qual(PromptsPath, "Definition").
		Op("=").
		Parens(jen.Op("*").Id(typeName)).Parens(jen.Nil())

	f.Func().Params(recv()).Id("Name").Params().String().Block(
		jen.Return(jen.Lit(typeName)),
	)

	f.Func().Params(recv()).Id("Versions").Params().
		Params(jen.Op("*").Qual(PromptsPath, "Registry"), jen.Error()).
		Block(
			jen.Return(jen.Qual(PromptsPath, "NewRegistry").Call(
				jen.Map(jen.String()).Qual(PromptsPath, "Generator").Values(jen.DictFunc(func(d jen.Dict) {
					for _, v := range opts.Versions {
						d[jen.Lit(v)] = jen.Qual(PromptsPath, "Text").Call(
							jen.Lit(fmt.Sprintf("%s prompt, version %s", typeName, v)),
						)
					}
				})),
			)),
		)

	f.Func().Params(recv()).Id("DefaultVersion").Params().String().Block(
		jen.Return(jen.Lit(opts.Default)),
	)

	strategy, _ := prompts.ParseStrategy(opts.Strategy)
	if strategy.Kind() == prompts.StrategyRandom {
		f.Var().Id("_").
			Qual(PromptsPath, "StrategyProvider").
			Op("=").
			Parens(jen.Op("*").Id(typeName)).Parens(jen.Nil())

		f.Func().Params(recv()).Id("SelectionStrategy").Params().Qual(PromptsPath, "Strategy").Block(
			jen.Return(jen.Qual(PromptsPath, "Random").Call()),
		)
	}

	return f.Render(w)
}

// WriteFile generates the definition into dir and returns the file path.
// An existing file is only replaced when force is set.
func WriteFile(dir string, opts Options, force bool) (string, error) {
	path := filepath.Join(dir, FileName(opts.Name))

	if _, err := os.Stat(path); err == nil && !force {
		return "", errors.Wrapf(ErrFileExists, "%s", path)
	}

	buf := &bytes.Buffer{}
	if err := Generate(buf, opts); err != nil {
		return "", errors.Wrapf(err, "could not generate %s", path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	log.Debug().Str("path", path).Str("type", TypeName(opts.Name)).Msg("scaffolded prompt definition")
	return path, nil
}
