package request

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/google/go-querystring/query"
)

// EncodeQuery converts a typed query struct into url.Values. Fields tagged
// omitempty with nil pointers are left out entirely. A url.Values argument is
// copied, so later changes by the caller do not reach a built Call.
func EncodeQuery(v any) (url.Values, error) {
	if v == nil {
		return nil, nil
	}
	if values, ok := v.(url.Values); ok {
		return cloneValues(values), nil
	}

	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

// Ptr returns a pointer to v. It is used to set optional parameters.
func Ptr[T any](v T) *T {
	return &v
}

func cloneValues(values url.Values) url.Values {
	if len(values) == 0 {
		return nil
	}
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = slices.Clone(v)
	}
	return out
}
