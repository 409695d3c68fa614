package packs

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

var strategyKindType = reflect.TypeOf(prompts.StrategyKind(0))

// Schema describes the prompt pack file format.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == strategyKindType {
				return &jsonschema.Schema{
					Type: "string",
					Enum: []interface{}{
						prompts.StrategyDefault.String(),
						prompts.StrategyRandom.String(),
					},
				}
			}
			return nil
		},
	}
	s := reflector.Reflect(&Pack{})
	s.Title = "Prompt pack"
	s.Description = "A named prompt with its versions, default version and selection strategy."
	return s
}

var (
	validatorOnce sync.Once
	validator     *gojsonschema.Schema
	validatorErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	validatorOnce.Do(func() {
		b, err := json.Marshal(Schema())
		if err != nil {
			validatorErr = errors.Wrap(err, "could not marshal prompt pack schema")
			return
		}
		doc := map[string]interface{}{}
		if err := json.Unmarshal(b, &doc); err != nil {
			validatorErr = errors.Wrap(err, "could not unmarshal prompt pack schema")
			return
		}
		// the keywords used by the pack schema are understood by every
		// draft gojsonschema knows, the 2020-12 meta-schema URI is not
		delete(doc, "$schema")
		delete(doc, "$id")

		validator, validatorErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
		if validatorErr != nil {
			validatorErr = errors.Wrap(validatorErr, "could not compile prompt pack schema")
		}
	})
	return validator, validatorErr
}

// Validate checks a decoded YAML document against Schema. Every violation
// is reported with the path of the offending field.
func Validate(doc interface{}) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(jsonCompatible(doc)))
	if err != nil {
		return errors.Wrap(err, "could not validate prompt pack")
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.Wrap(
		&prompts.ConfigurationError{Reason: strings.Join(msgs, "; ")},
		"invalid prompt pack",
	)
}

// jsonCompatible turns the map[interface{}]interface{} values yaml produces
// for non-string keys into string-keyed maps.
func jsonCompatible(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		ret := make(map[string]interface{}, len(v))
		for k, vv := range v {
			ret[k] = jsonCompatible(vv)
		}
		return ret
	case map[interface{}]interface{}:
		ret := make(map[string]interface{}, len(v))
		for k, vv := range v {
			ret[fmt.Sprint(k)] = jsonCompatible(vv)
		}
		return ret
	case []interface{}:
		ret := make([]interface{}, len(v))
		for i, vv := range v {
			ret[i] = jsonCompatible(vv)
		}
		return ret
	default:
		return v
	}
}
