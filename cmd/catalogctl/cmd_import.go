package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/megamarket-backend/internal/app"
	"github.com/heartmarshall/megamarket-backend/internal/transport/rest"
)

func newImportCmd(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Apply an import batch from a JSON file shaped like the /imports body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			input, err := rest.DecodeImport(f)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			return c.withCatalog(cmd.Context(), func(cat *app.Catalog) error {
				res, err := cat.Service.ImportBatch(cmd.Context(), input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created: %d, updated: %d\n", res.Created, res.Updated)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the batch JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
