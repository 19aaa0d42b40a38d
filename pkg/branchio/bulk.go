package branchio

import (
	"context"
	"net/http"
	"net/url"

	"github.com/deppfellow/go-branchio/pkg/validation"
	"github.com/pkg/errors"
)

var bulkConstraint = validation.Constraint{
	Required: true,
	Types:    []validation.Type{validation.List},
	SubTypes: []validation.Type{validation.Map},
}

// CreateDeepLinkURLs creates many deep links in one call. Each element is
// normally the result of DeepLinkParams. The response is a list with one
// entry per link, in order.
//
// A nil slice fails with MissingRequiredField and a nil element with
// SubTypeMismatch. The Branch key is sent in the path.
//
// See https://dev.branch.io/references/http_api/#bulk-creating-deep-linking-urls
func (c *Client) CreateDeepLinkURLs(ctx context.Context, urlParams []Params) (any, error) {
	// Validate the list shape only. Each entry was already checked when it
	// was built with DeepLinkParams.
	if err := validation.Check("", bulkValue(urlParams), nil, bulkConstraint); err != nil {
		return nil, errors.Wrap(err, "branchio: create deep link urls")
	}

	c.logger.Debug().Int("links", len(urlParams)).Msg("creating deep link urls")

	// The key goes in the path here, not in the body. Escape it so an odd
	// key cannot change the route.
	resp, err := c.transport.Call(ctx, http.MethodPost, pathURLBulk+url.PathEscape(c.key), urlParams)
	if err != nil {
		return nil, errors.Wrap(err, "branchio: create deep link urls")
	}
	return resp, nil
}

// bulkValue exposes nil elements as absent values so the sub type check
// rejects them.
func bulkValue(urlParams []Params) any {
	if urlParams == nil {
		return nil
	}

	values := make([]any, len(urlParams))
	for i, p := range urlParams {
		if p != nil {
			values[i] = map[string]any(p)
		}
	}
	return values
}
