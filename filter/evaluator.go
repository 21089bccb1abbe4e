package filter

import (
	"errors"
	"fmt"
)

var errNotBool = errors.New("expression did not evaluate to a boolean")

// DefaultCompiler compiles and caches expressions used by the CLI
var DefaultCompiler = NewExprCompiler(WithCache(64))

// Apply returns the items matching filter, in their original order.
// Evaluation stops at the first item that cannot be evaluated.
func Apply(filter CompiledFilter, items []Item) ([]Item, error) {
	matches := make([]Item, 0, len(items))
	for _, item := range items {
		ok, err := filter.Evaluate(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// ParseAndApply compiles expression with DefaultCompiler and applies it to items.
// An empty expression matches everything.
func ParseAndApply(expression string, items []Item) ([]Item, error) {
	if expression == "" {
		return items, nil
	}
	filter, err := DefaultCompiler.Compile(expression)
	if err != nil {
		return nil, err
	}
	return Apply(filter, items)
}

func itemID(item Item) string {
	for _, key := range []string{"id", "_id"} {
		if v, ok := item[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
