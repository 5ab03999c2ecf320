package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/Fernoxx/slithermatch-server/internal/proto"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write the wire protocol JSON schema",
	Long: `Generate a JSON Schema describing every event payload exchanged
over the websocket, keyed by event name. Client developers validate
their decoders against it.`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Path to write the JSON schema")
	schemaCmd.MarkFlagRequired("out")
}

func runSchema(_ *cobra.Command, _ []string) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(proto.SchemaCatalog))
	schema.Title = "slithermatch wire protocol"
	schema.Description = "Event payloads exchanged between the game server and its clients"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if dir := filepath.Dir(flagSchemaOut); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
	}
	tmpPath := flagSchemaOut + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, flagSchemaOut); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
