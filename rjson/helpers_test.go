package rjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// kv is a flattened Object entry; a slice of them keeps key order visible
// to cmp.Diff.
type kv struct {
	Key   string
	Value any
}

// plain rewrites v so that objects become ordered []kv.
func plain(v Value) any {
	switch v := v.(type) {
	case *Object:
		out := []kv{}
		for p := v.Oldest(); p != nil; p = p.Next() {
			out = append(out, kv{Key: p.Key, Value: plain(p.Value)})
		}
		return out
	case []Value:
		out := make([]any, 0, len(v))
		for _, e := range v {
			out = append(out, plain(e))
		}
		return out
	}
	return v
}

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	n, err := Parse(tokens)
	require.NoError(t, err)
	return n
}

func requireSyntaxError(t *testing.T, err error, kind ErrorKind, loc Location) {
	t.Helper()
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, kind, se.Kind, "error: %v", err)
	require.Equal(t, loc, se.Loc, "error: %v", err)
}
