package cmds

import (
	"context"
	"encoding/json"
	"io"

	glazedcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/promptver/pkg/packs"
)

type SchemaCommand struct {
	*glazedcmds.CommandDescription
}

var _ glazedcmds.WriterCommand = (*SchemaCommand)(nil)

func NewSchemaCommand() (*SchemaCommand, error) {
	return &SchemaCommand{
		CommandDescription: glazedcmds.NewCommandDescription(
			"schema",
			glazedcmds.WithShort("Print the JSON schema of prompt pack files"),
		),
	}, nil
}

func (c *SchemaCommand) RunIntoWriter(
	ctx context.Context,
	parsedLayers *layers.ParsedLayers,
	w io.Writer,
) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(packs.Schema())
}
