package rjson

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want any
	}{
		{`{"a":1,"b":2}`, []kv{{"a", int64(1)}, {"b", int64(2)}}},
		{`{"b":1,"a":2}`, []kv{{"b", int64(1)}, {"a", int64(2)}}},
		{`{"a":1,"a":2}`, []kv{{"a", int64(2)}}},
		{`[1,2,3]`, []any{int64(1), int64(2), int64(3)}},
		{`{"x":true,"y":null}`, []kv{{"x", true}, {"y", nil}}},
		{` [ 1 , 2 ] `, []any{int64(1), int64(2)}},
		{"[\n\t1,\r\n\t2\n]", []any{int64(1), int64(2)}},
		{`[1,2] garbage`, []any{int64(1), int64(2)}},
		{`[1,2] ]]] {`, []any{int64(1), int64(2)}},
		{`3.25`, 3.25},
		{`"hello world"`, "hello world"},
		{`[]`, []any{}},
		{`{}`, []kv{}},
		{`[[],{}]`, []any{[]any{}, []kv{}}},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Decode(tc.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, plain(got)); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeNumberKinds(t *testing.T) {
	v, err := Decode("[10, 10.0, 10.]")
	require.NoError(t, err)
	l := v.([]Value)
	assert.IsType(t, int64(0), l[0])
	assert.IsType(t, float64(0), l[1])
	assert.IsType(t, float64(0), l[2])
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		in       string
		sentinel error
		msg      string
	}{
		{`[1,2`, ErrUnexpectedEnd, "rjson: unexpected end of input, expected ',' or ']' at 1:4"},
		{`{"a" "b":1}`, ErrMissingSeparator, `rjson: expected ':' after key "a" but found string "b" at 1:6`},
		{`123.45.6`, ErrInvalidNumber, `rjson: invalid number "123.45.6" at 1:1`},
		{`nul`, ErrUnknownIdentifier, `rjson: unknown identifier "nul" at 1:1`},
		{`[1 2]`, ErrMissingComma, "rjson: expected ',' or ']' but found number 2 at 1:4"},
		{`{3:1}`, ErrKeyMustBeString, "rjson: object key must be a string, found number 3 at 1:2"},
		{`[,]`, ErrUnexpectedToken, "rjson: unexpected ',', expected a value at 1:2"},
		{`"open`, ErrUnterminatedString, `rjson: unterminated string "open" at 1:1`},
		// there are no escapes, so the backslash-quote closes the string
		// and the rest of the text is lexed as bare words
		{`"say \"hi\""`, ErrUnknownIdentifier, `rjson: unknown identifier "hi" at 1:8`},
		{`-1`, nil, ""},
	} {
		t.Run(tc.in, func(t *testing.T) {
			v, err := Decode(tc.in)
			if tc.sentinel == nil {
				require.NoError(t, err)
				require.Equal(t, int64(1), v)
				return
			}
			require.Nil(t, v)
			require.ErrorIs(t, err, tc.sentinel)
			require.EqualError(t, err, tc.msg)
		})
	}
}

func TestDecodeWithConfig(t *testing.T) {
	doc := strings.Repeat("[", 20) + strings.Repeat("]", 20)

	_, err := DecodeWithConfig(doc, Config{MaxDepth: 20})
	require.NoError(t, err)

	_, err = DecodeWithConfig(doc, Config{MaxDepth: 19})
	require.ErrorIs(t, err, ErrNestingTooDeep)
	require.Equal(t, NestingTooDeep, KindOf(err))
}

func TestDecodeReader(t *testing.T) {
	v, err := DecodeReader(strings.NewReader(`{"k":"v"}`))
	require.NoError(t, err)
	require.Equal(t, []kv{{"k", "v"}}, plain(v))

	boom := errors.New("boom")
	_, err = DecodeReader(iotest.ErrReader(boom))
	require.ErrorIs(t, err, boom)
	require.Equal(t, ErrorKind(0), KindOf(err))
}

func TestKindOf(t *testing.T) {
	_, err := Decode("[1,2")
	require.Equal(t, UnexpectedEnd, KindOf(err))
	require.Equal(t, "UnexpectedEnd", KindOf(err).String())

	wrapped := fmt.Errorf("loading: %w", err)
	require.Equal(t, UnexpectedEnd, KindOf(wrapped))
	require.Equal(t, ErrorKind(0), KindOf(errors.New("other")))
	require.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

func TestDecodeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc := fmt.Sprintf(`{"i":%d,"l":[%d,%d.5]}`, i, i, i)
			v, err := Decode(doc)
			if err != nil {
				errs <- err
				return
			}
			got, _ := v.(*Object).Get("i")
			if got != int64(i) {
				errs <- fmt.Errorf("doc %d decoded i=%v", i, got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestDecodeDeepNesting(t *testing.T) {
	const depth = 1000000
	v, err := Decode(strings.Repeat("[", depth) + strings.Repeat("]", depth))
	require.NoError(t, err)

	n := 0
	for {
		l, ok := v.([]Value)
		if !ok {
			t.Fatalf("level %d: got %T, want []Value", n, v)
		}
		n++
		if len(l) == 0 {
			break
		}
		if len(l) != 1 {
			t.Fatalf("level %d: got %d elements, want 1", n, len(l))
		}
		v = l[0]
	}
	require.Equal(t, depth, n)
}

func TestDecodeDeepObjects(t *testing.T) {
	const depth = 100000
	v, err := Decode(strings.Repeat(`{"k":`, depth) + "1" + strings.Repeat("}", depth))
	require.NoError(t, err)

	for i := 0; i < depth; i++ {
		m, ok := v.(*Object)
		if !ok {
			t.Fatalf("level %d: got %T, want *Object", i, v)
		}
		if v, ok = m.Get("k"); !ok {
			t.Fatalf("level %d: missing key", i)
		}
	}
	require.Equal(t, int64(1), v)
}
