package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deppfellow/go-branchio/internal/lib/utils"
	"github.com/deppfellow/go-branchio/pkg/branchio"
)

func bulkCmd(a *app) *cobra.Command {
	var file string
	var urlOnly bool

	c := &cobra.Command{
		Use:   "bulk",
		Short: "Create many deep links in one call from a JSON array of params",
		Long: "Reads a JSON array of link params, as printed by `link --skip-api-call`,\n" +
			"and creates all of them with a single bulk request.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			urlParams, err := readParams(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			a.logger.Debug().Str("file", file).Int("links", len(urlParams)).Msg("bulk params loaded")

			resp, err := a.client.CreateDeepLinkURLs(cmd.Context(), urlParams)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if urlOnly {
				urls, err := branchio.LinkURLs(resp)
				if err != nil {
					return err
				}
				for _, u := range urls {
					if _, err := fmt.Fprintln(out, u); err != nil {
						return err
					}
				}
				return nil
			}
			return utils.WriteJSON(out, resp)
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "JSON file holding an array of params ('-' for stdin) (required)")
	c.Flags().BoolVar(&urlOnly, "url-only", false, "Print only the created URLs, one per line")

	_ = c.MarkFlagRequired("file")
	return c
}

func readParams(stdin io.Reader, file string) ([]branchio.Params, error) {
	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var urlParams []branchio.Params
	if err := utils.ReadJSON(r, &urlParams); err != nil {
		return nil, fmt.Errorf("read params from %s: %w", file, err)
	}
	return urlParams, nil
}
