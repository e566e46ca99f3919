package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/pkg/schema"
)

const schemaModulePath = "github.com/otterdog-go/otterdog"

func newGenerateSchemaCommand(_ *environment) *cobra.Command {
	var (
		outputDir  string
		schemaType string
	)

	cmd := &cobra.Command{
		Use:   "generate-schema",
		Short: "Generate JSON Schema for the organization document or the engine configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir != "" {
				outputs, err := schema.GenerateAllSchemas(schemaModulePath)
				if err != nil {
					return err
				}

				for _, out := range outputs {
					path := filepath.Join(outputDir, out.Filename)
					if err := os.WriteFile(path, out.Content, 0o644); err != nil {
						return errors.Wrapf(err, "writing %s", out.Filename)
					}

					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				}

				return nil
			}

			out, err := schema.GenerateSchemaForType(schemaModulePath, schema.SchemaType(schemaType))
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out.Content)

			return err
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "write every schema to this directory instead of printing one to stdout")
	cmd.Flags().StringVar(&schemaType, "type", "organization", "schema to print when --output-dir is unset: organization or engine-config")

	return cmd
}
