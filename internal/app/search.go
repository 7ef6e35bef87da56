package app

import (
	"strings"

	"github.com/jmoiron/rjview/rjson"
)

// splitTerms breaks a query into terms, lowercased unless the search is
// case sensitive.
func splitTerms(q string, caseSensitive bool) []string {
	if !caseSensitive {
		q = strings.ToLower(q)
	}
	return strings.Fields(q)
}

// matchDocument reports whether every term appears as a substring of the
// document's name, one of its object keys, or one of its string values.
// Terms should come from splitTerms with the same caseSensitive setting.
func matchDocument(d *Document, terms []string, caseSensitive bool) bool {
	if len(terms) == 0 {
		return true
	}
	fields := append([]string{d.Name}, collectText(d.Value, nil)...)
	if !caseSensitive {
		for i, f := range fields {
			fields[i] = strings.ToLower(f)
		}
	}
	for _, term := range terms {
		found := false
		for _, f := range fields {
			if strings.Contains(f, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// objectKey marks a pending key on the collectText stack.
type objectKey string

// collectText appends every object key and string value in v to dst, in
// document order.
func collectText(v rjson.Value, dst []string) []string {
	stack := []any{v}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch v := top.(type) {
		case objectKey:
			dst = append(dst, string(v))
		case string:
			dst = append(dst, v)
		case []rjson.Value:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, v[i])
			}
		case *rjson.Object:
			for p := v.Newest(); p != nil; p = p.Prev() {
				stack = append(stack, p.Value, objectKey(p.Key))
			}
		}
	}
	return dst
}
