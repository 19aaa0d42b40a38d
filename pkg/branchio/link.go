package branchio

import (
	"context"
	"net/http"

	"github.com/deppfellow/go-branchio/pkg/validation"
	"github.com/pkg/errors"
)

// Params is a validated set of link parameters, ready to be sent as a JSON
// body. Values returned by DeepLinkParams can be collected and passed to
// CreateDeepLinkURLs.
type Params map[string]any

// DeepLinkRequest describes one deep link.
//
// Empty strings, a nil Data map, nil Tags and a nil Duration are left out of
// the request. Type is always sent; its zero value is TypeURLStandard.
//
// See https://dev.branch.io/references/http_api/#creating-a-deep-linking-url
type DeepLinkRequest struct {
	// Data is the free-form payload attached to the link. The Data* keys
	// (e.g. DataIOSURL) have a special meaning for Branch.
	Data map[string]any

	Alias    string
	Type     LinkType
	Duration *int

	// Identity is at most 127 characters.
	Identity string

	// Tags are at most 64 characters each.
	Tags []string

	// Campaign, Feature, Channel and Stage are at most 128 characters.
	Campaign string
	Feature  string
	Channel  string
	Stage    string

	// SkipAPICall makes CreateDeepLinkURL return the validated Params
	// instead of calling the API.
	SkipAPICall bool
}

var (
	stringType = []validation.Type{validation.String}

	dataConstraint     = validation.Constraint{Types: []validation.Type{validation.Map}}
	aliasConstraint    = validation.Constraint{Types: stringType}
	typeConstraint     = validation.Constraint{Types: []validation.Type{validation.Int}, Gte: validation.Bound(int64(TypeURLStandard)), Lte: validation.Bound(int64(TypeURLMarketing))}
	durationConstraint = validation.Constraint{Types: []validation.Type{validation.Int}}
	identityConstraint = validation.Constraint{Types: stringType, MaxLength: validation.Limit(127)}
	tagsConstraint     = validation.Constraint{Types: []validation.Type{validation.List}, SubTypes: stringType, SubMaxLength: validation.Limit(64)}
	labelConstraint    = validation.Constraint{Types: stringType, MaxLength: validation.Limit(128)}
	keyConstraint      = validation.Constraint{Required: true, Types: stringType}
)

func (r DeepLinkRequest) fields() []validation.Field {
	return []validation.Field{
		{Name: "data", Value: mapOrNil(r.Data), Constraint: dataConstraint},
		{Name: "alias", Value: stringOrNil(r.Alias), Constraint: aliasConstraint},
		{Name: "type", Value: int(r.Type), Constraint: typeConstraint},
		{Name: "duration", Value: intOrNil(r.Duration), Constraint: durationConstraint},
		{Name: "identity", Value: stringOrNil(r.Identity), Constraint: identityConstraint},
		{Name: "tags", Value: stringsOrNil(r.Tags), Constraint: tagsConstraint},
		{Name: "campaign", Value: stringOrNil(r.Campaign), Constraint: labelConstraint},
		{Name: "feature", Value: stringOrNil(r.Feature), Constraint: labelConstraint},
		{Name: "channel", Value: stringOrNil(r.Channel), Constraint: labelConstraint},
		{Name: "stage", Value: stringOrNil(r.Stage), Constraint: labelConstraint},
	}
}

// DeepLinkParams validates req and returns its params without calling the
// API and without requiring a Branch key. Collect the results to create many
// links at once with CreateDeepLinkURLs.
func (c *Client) DeepLinkParams(req DeepLinkRequest) (Params, error) {
	// Fields are checked in a fixed order and only the ones that were set
	// end up in params. "type" is always set, it defaults to 0.
	params := Params{}
	if err := validation.CheckAll(params, req.fields()...); err != nil {
		return nil, errors.Wrap(err, "branchio: invalid deep link params")
	}
	return params, nil
}

// CreateDeepLinkURL creates a deep link and returns the decoded response,
// normally a map holding the link under ReturnURL.
//
// The Branch key is validated as a required field and sent in the body as
// "branch_key". With req.SkipAPICall set, the validated Params are returned
// instead and no key is needed.
func (c *Client) CreateDeepLinkURL(ctx context.Context, req DeepLinkRequest) (any, error) {
	params, err := c.DeepLinkParams(req)
	if err != nil {
		return nil, err
	}

	// Nothing is sent, so no key is needed either.
	if req.SkipAPICall {
		return params, nil
	}

	// The key is checked last: a bad request is reported before a missing
	// key.
	if err := validation.Check("branch_key", stringOrNil(c.key), params, keyConstraint); err != nil {
		return nil, errors.Wrap(err, "branchio: create deep link url")
	}

	c.logger.Debug().Int("params", len(params)).Msg("creating deep link url")

	resp, err := c.transport.Call(ctx, http.MethodPost, pathURL, params)
	if err != nil {
		return nil, errors.Wrap(err, "branchio: create deep link url")
	}
	return resp, nil
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intOrNil(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func mapOrNil(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}

func stringsOrNil(s []string) any {
	if s == nil {
		return nil
	}
	return s
}
