// Package tokens provides tokenizer-backed estimators for prompts.
//
// The BPE tables ship inside github.com/tiktoken-go/tokenizer, so counting
// never touches the network.
package tokens

import (
	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tiktoken-go/tokenizer"
)

const DefaultModel = tokenizer.GPT4

// Codec returns the tokenizer for model, or for encoding when model is
// empty.
func Codec(model string, encoding string) (tokenizer.Codec, error) {
	if model != "" {
		c, err := tokenizer.ForModel(tokenizer.Model(model))
		if err != nil {
			return nil, errors.Wrapf(err, "could not create tokenizer for model %s", model)
		}
		return c, nil
	}
	if encoding == "" {
		return nil, errors.New("either a model or an encoding is required")
	}
	c, err := tokenizer.Get(tokenizer.Encoding(encoding))
	if err != nil {
		return nil, errors.Wrapf(err, "could not create tokenizer for encoding %s", encoding)
	}
	return c, nil
}

// Count returns the exact number of tokens codec produces for text.
func Count(codec tokenizer.Codec, text string) (int, error) {
	ids, _, err := codec.Encode(text)
	if err != nil {
		return 0, errors.Wrap(err, "error encoding text")
	}
	return len(ids), nil
}

// NewEstimator returns an estimator counting tokens the way model does.
func NewEstimator(model string) (prompts.Estimator, error) {
	codec, err := Codec(model, "")
	if err != nil {
		return nil, err
	}
	return EstimatorForCodec(codec), nil
}

func NewEstimatorForEncoding(encoding string) (prompts.Estimator, error) {
	codec, err := Codec("", encoding)
	if err != nil {
		return nil, err
	}
	return EstimatorForCodec(codec), nil
}

// EstimatorForCodec counts with codec. Text the codec cannot encode is
// estimated with the character heuristic instead.
func EstimatorForCodec(codec tokenizer.Codec) prompts.Estimator {
	fallback := prompts.DefaultEstimator()
	return func(text string) int {
		n, err := Count(codec, text)
		if err != nil {
			log.Warn().Err(err).Str("codec", codec.GetName()).Msg("falling back to character estimate")
			return fallback(text)
		}
		return n
	}
}

func Models() []tokenizer.Model {
	return []tokenizer.Model{
		tokenizer.GPT4,
		tokenizer.GPT35Turbo,
		tokenizer.TextEmbeddingAda002,
		tokenizer.TextDavinci003,
		tokenizer.TextDavinci002,
		tokenizer.CodeDavinci002,
		tokenizer.CodeDavinci001,
		tokenizer.CodeCushman002,
		tokenizer.CodeCushman001,
		tokenizer.DavinciCodex,
		tokenizer.CushmanCodex,
		tokenizer.TextDavinci001,
		tokenizer.TextCurie001,
		tokenizer.TextBabbage001,
		tokenizer.TextAda001,
		tokenizer.Davinci,
		tokenizer.Curie,
		tokenizer.Babbage,
		tokenizer.Ada,
		tokenizer.TextDavinciEdit001,
		tokenizer.CodeDavinciEdit001,
	}
}

func Encodings() []tokenizer.Encoding {
	return []tokenizer.Encoding{
		tokenizer.R50kBase,
		tokenizer.P50kBase,
		tokenizer.P50kEdit,
		tokenizer.Cl100kBase,
	}
}
