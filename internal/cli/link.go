package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deppfellow/go-branchio/internal/lib/utils"
	"github.com/deppfellow/go-branchio/pkg/branchio"
)

func linkCmd(a *app) *cobra.Command {
	var data []string
	var dataJSON string
	var req branchio.DeepLinkRequest
	var linkType int
	var duration int
	var urlOnly bool

	c := &cobra.Command{
		Use:   "link",
		Short: "Create a deep link (or print its params with --skip-api-call)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := parseData(dataJSON, data)
			if err != nil {
				return err
			}
			req.Data = payload
			req.Type = branchio.LinkType(linkType)
			if cmd.Flags().Changed("duration") {
				req.Duration = &duration
			}

			out := cmd.OutOrStdout()

			if req.SkipAPICall {
				params, err := a.client.DeepLinkParams(req)
				if err != nil {
					return err
				}
				return utils.WriteJSON(out, params)
			}

			resp, err := a.client.CreateDeepLinkURL(cmd.Context(), req)
			if err != nil {
				return err
			}

			if urlOnly {
				u, err := branchio.LinkURL(resp)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, u)
				return err
			}
			return utils.WriteJSON(out, resp)
		},
	}

	c.Flags().StringArrayVar(&data, "data", nil, "Data entry as key=value, e.g. '$ios_url=https://example.com' (repeatable)")
	c.Flags().StringVar(&dataJSON, "data-json", "", "Data payload as a JSON object; --data entries are applied on top")
	c.Flags().StringVar(&req.Alias, "alias", "", "Link alias")
	c.Flags().IntVar(&linkType, "type", int(branchio.TypeURLStandard), "Link type: 0 standard, 1 one-time, 2 marketing")
	c.Flags().IntVar(&duration, "duration", 0, "Link duration")
	c.Flags().StringVar(&req.Identity, "identity", "", "Identity of the link creator (max 127 characters)")
	c.Flags().StringArrayVar(&req.Tags, "tag", nil, "Tag (max 64 characters, repeatable)")
	c.Flags().StringVar(&req.Campaign, "campaign", "", "Campaign (max 128 characters)")
	c.Flags().StringVar(&req.Feature, "feature", "", "Feature (max 128 characters)")
	c.Flags().StringVar(&req.Channel, "channel", "", "Channel (max 128 characters)")
	c.Flags().StringVar(&req.Stage, "stage", "", "Stage (max 128 characters)")
	c.Flags().BoolVar(&req.SkipAPICall, "skip-api-call", false, "Print the validated params instead of creating the link")
	c.Flags().BoolVar(&urlOnly, "url-only", false, "Print only the created URL")

	return c
}

// parseData merges the --data-json object with the --data key=value
// entries. It returns nil when neither is given.
func parseData(dataJSON string, entries []string) (map[string]any, error) {
	var payload map[string]any

	if strings.TrimSpace(dataJSON) != "" {
		if err := json.Unmarshal([]byte(dataJSON), &payload); err != nil {
			return nil, fmt.Errorf("invalid --data-json: %w", err)
		}
	}

	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --data %q: expected key=value", entry)
		}
		if payload == nil {
			payload = map[string]any{}
		}
		payload[key] = value
	}

	return payload, nil
}
