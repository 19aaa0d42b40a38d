package branchio

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/pkg/errors"
)

// LinkURL returns the created link of a CreateDeepLinkURL response.
func LinkURL(resp any) (string, error) {
	value, err := jsonpath.Get("$."+ReturnURL, resp)
	if err != nil {
		// No url: an API error entry explains why better than the
		// JSONPath error does.
		if e, ok := ResponseError(resp); ok {
			return "", errors.Errorf("branchio: api error: %v", e)
		}
		return "", errors.Wrap(err, "branchio: no url in response")
	}

	s, ok := value.(string)
	if !ok {
		return "", errors.Errorf("branchio: url is %T, not a string", value)
	}
	return s, nil
}

// LinkURLs returns the created links of a CreateDeepLinkURLs response, in
// request order. It fails on the first entry without a link.
func LinkURLs(resp any) ([]string, error) {
	entries, ok := resp.([]any)
	if !ok {
		return nil, errors.Errorf("branchio: bulk response is %T, not a list", resp)
	}

	urls := make([]string, 0, len(entries))
	for i, entry := range entries {
		u, err := LinkURL(entry)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("entry %d", i))
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// ResponseError returns the ReturnError entry of a response object, if any.
func ResponseError(resp any) (any, bool) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return nil, false
	}
	e, ok := obj[ReturnError]
	return e, ok
}
