package rjson

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestToValue(t *testing.T) {
	got := ToValue(mustParse(t, `{"n":[1,2.5,"s",true,false,null],"o":{"k":[]}}`))
	want := []kv{
		{Key: "n", Value: []any{int64(1), 2.5, "s", true, false, nil}},
		{Key: "o", Value: []kv{{Key: "k", Value: []any{}}}},
	}
	if diff := cmp.Diff(want, plain(got)); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestToValueNumbers(t *testing.T) {
	for _, tc := range []struct {
		text string
		want Value
	}{
		{"0", int64(0)},
		{"007", int64(7)},
		{"9223372036854775807", int64(math.MaxInt64)},
		{"1.5", 1.5},
		{"1.", 1.0},
		{"0.000", 0.0},
		// too large for int64, so it falls back to the nearest float64
		{"99999999999999999999", 1e20},
	} {
		t.Run(tc.text, func(t *testing.T) {
			got := ToValue(&Scalar{Kind: Number, Text: tc.text})
			require.IsType(t, tc.want, got)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestToValueHugeFloat(t *testing.T) {
	text := "1"
	for range 400 {
		text += "0"
	}
	got := ToValue(&Scalar{Kind: Number, Text: text + ".0"})
	f, ok := got.(float64)
	require.True(t, ok)
	require.True(t, math.IsInf(f, 1))
}

func TestToValueDuplicateKeys(t *testing.T) {
	got := ToValue(mustParse(t, `{"a":1,"b":2,"a":3}`))
	m, ok := got.(*Object)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, Keys(m))
	a, _ := m.Get("a")
	require.Equal(t, int64(3), a)
}

func TestToValueEmptyContainers(t *testing.T) {
	l, ok := ToValue(&ListNode{}).([]Value)
	require.True(t, ok)
	require.NotNil(t, l)
	require.Empty(t, l)

	m, ok := ToValue(&ObjectNode{}).(*Object)
	require.True(t, ok)
	require.Equal(t, 0, m.Len())
}

func TestToValueStringIsRaw(t *testing.T) {
	require.Equal(t, `a\nb`, ToValue(mustParse(t, `"a\nb"`)))
	require.Equal(t, "  spaced  ", ToValue(mustParse(t, `"  spaced  "`)))
}
