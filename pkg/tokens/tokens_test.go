package tokens

import (
	"testing"

	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiktoken-go/tokenizer"
)

type tokenPrompt struct{}

func (tokenPrompt) Name() string { return "TokenPrompt" }

func (tokenPrompt) Versions() (*prompts.Registry, error) {
	return prompts.NewRegistry(map[string]prompts.Generator{
		"v1": prompts.Text("hello world"),
	})
}

func (tokenPrompt) DefaultVersion() string { return "v1" }

func TestCount(t *testing.T) {
	codec, err := Codec(string(tokenizer.GPT4), "")
	require.NoError(t, err)
	assert.Equal(t, string(tokenizer.Cl100kBase), codec.GetName())

	n, err := Count(codec, "hello world")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = Count(codec, "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCodec_Errors(t *testing.T) {
	_, err := Codec("", "")
	assert.Error(t, err)

	_, err = Codec("no-such-model", "")
	assert.Error(t, err)

	_, err = Codec("", "no-such-encoding")
	assert.Error(t, err)
}

func TestNewEstimatorForEncoding(t *testing.T) {
	estimate, err := NewEstimatorForEncoding(string(tokenizer.Cl100kBase))
	require.NoError(t, err)
	assert.Equal(t, 2, estimate("hello world"))
}

func TestEstimatorWithPrompt(t *testing.T) {
	estimate, err := NewEstimator(string(DefaultModel))
	require.NoError(t, err)

	res, err := prompts.New(tokenPrompt{}, prompts.WithEstimator(estimate)).Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "hello world", res.Text)
	assert.Equal(t, 2, res.TokenCount)

	res, err = prompts.New(tokenPrompt{}).Resolve("")
	require.NoError(t, err)
	assert.Equal(t, 3, res.TokenCount, "heuristic: ceil(11/4)")
}

func TestListings(t *testing.T) {
	assert.Contains(t, Models(), tokenizer.GPT4)
	assert.Contains(t, Encodings(), tokenizer.Cl100kBase)

	for _, e := range Encodings() {
		_, err := Codec("", string(e))
		assert.NoError(t, err, e)
	}
}
