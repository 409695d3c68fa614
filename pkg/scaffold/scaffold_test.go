package scaffold

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "SummarizeArticle", TypeName("summarize article"))
	assert.Equal(t, "SummarizeArticle", TypeName("summarize_article"))
	assert.Equal(t, "summarize_article.go", FileName("SummarizeArticle"))
}

func TestGenerate(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Generate(buf, Options{Name: "summarize", Versions: []string{"v1", "v2"}, Default: "v2"})
	require.NoError(t, err)
	src := buf.String()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "summarize.go", src, parser.ParseComments)
	require.NoError(t, err, src)
	assert.Equal(t, DefaultPackage, file.Name.Name)

	assert.Contains(t, src, `"github.com/go-go-golems/promptver/pkg/prompts"`)
	assert.Contains(t, src, "type Summarize struct{}")
	assert.Contains(t, src, "func (p *Summarize) Name() string {")
	assert.Contains(t, src, `return "Summarize"`)
	assert.Contains(t, src, "func (p *Summarize) Versions() (*prompts.Registry, error) {")
	assert.Contains(t, src, `"v1": prompts.Text("Summarize prompt, version v1")`)
	assert.Contains(t, src, `"v2": prompts.Text("Summarize prompt, version v2")`)
	assert.Contains(t, src, "func (p *Summarize) DefaultVersion() string {")
	assert.Contains(t, src, `return "v2"`)
	assert.NotContains(t, src, "SelectionStrategy")
}

func TestGenerate_RandomStrategy(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Generate(buf, Options{Name: "classify", Package: "mine", Strategy: "random"})
	require.NoError(t, err)
	src := buf.String()

	_, err = parser.ParseFile(token.NewFileSet(), "classify.go", src, 0)
	require.NoError(t, err, src)
	assert.Contains(t, src, "package mine")
	assert.Contains(t, src, "func (p *Classify) SelectionStrategy() prompts.Strategy {")
	assert.Contains(t, src, "return prompts.Random()")
	assert.Contains(t, src, `return "v1"`)
}

func TestGenerate_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"empty name", Options{}},
		{"bad package", Options{Name: "x", Package: "not-a-package"}},
		{"empty version", Options{Name: "x", Versions: []string{""}}},
		{"blank version", Options{Name: "x", Versions: []string{"v1", "  "}}},
		{"duplicate version", Options{Name: "x", Versions: []string{"v1", "v1"}}},
		{"unknown default", Options{Name: "x", Versions: []string{"v1"}, Default: "v2"}},
		{"unknown strategy", Options{Name: "x", Strategy: "weighted"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Generate(&bytes.Buffer{}, tt.opts))
		})
	}

	err := Generate(&bytes.Buffer{}, Options{Name: "x", Versions: []string{"v1"}, Default: "v2"})
	assert.True(t, prompts.IsVersionNotFound(err))

	err = Generate(&bytes.Buffer{}, Options{Name: "x", Versions: []string{" "}})
	assert.True(t, errors.Is(err, prompts.ErrInvalidConfiguration))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "promptdefs")

	path, err := WriteFile(dir, Options{Name: "summarize article"}, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summarize_article.go"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "type SummarizeArticle struct{}")

	_, err = WriteFile(dir, Options{Name: "summarize article"}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileExists))

	_, err = WriteFile(dir, Options{Name: "summarize article", Versions: []string{"a", "b"}}, true)
	require.NoError(t, err)
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"b": prompts.Text(`)

	_, err = WriteFile(t.TempDir(), Options{Name: "x", Strategy: "weighted"}, false)
	require.Error(t, err)
}
