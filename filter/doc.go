// Package filter evaluates expr-lang expressions against decoded listing items.
//
// Every top-level field of an item is available by name, the whole item is
// available as `item`, and a few helpers are provided:
//
//	icontains(title, "budget") && state == 1
//	title startsWith "Lunch" or title endsWith "?"
//	daysSince(createdAt) < 7
//	has("attachments") && len(attachments) > 0
//
// Compiled expressions are cached by the DefaultCompiler.
package filter
