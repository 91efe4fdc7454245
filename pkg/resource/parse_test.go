package resource

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderRoundTrip(t *testing.T) {
	set := sampleSet()
	out, err := Render(set, DefaultOptions())
	require.NoError(t, err)

	parsed, err := ParseHeader(bytes.NewReader(out))
	require.NoError(t, err)

	for i, f := range set.Fixtures() {
		assert.True(t, bytes.Equal(f.Data, parsed.Arrays[i]), "fixture %d", i)
		assert.Equal(t, len(f.Data), parsed.Sizes[i])
		assert.Equal(t, f.Symbol(), parsed.References[i])
	}
	assert.NoError(t, parsed.Verify(set))
}

func TestParseHeaderRoundTripAllBytes(t *testing.T) {
	var contents [FixtureCount][]byte
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	for i := range contents {
		contents[i] = all[:i*17]
	}
	set := NewSet(contents)

	out, err := Render(set, DefaultOptions())
	require.NoError(t, err)

	parsed, err := ParseHeader(bytes.NewReader(out))
	require.NoError(t, err)
	require.NoError(t, parsed.Verify(set))
}

func TestVerifyStale(t *testing.T) {
	set := sampleSet()
	out, err := Render(set, DefaultOptions())
	require.NoError(t, err)

	parsed, err := ParseHeader(bytes.NewReader(out))
	require.NoError(t, err)

	var changed [FixtureCount][]byte
	for i, f := range set.Fixtures() {
		changed[i] = append([]byte{}, f.Data...)
	}
	changed[6][3] ^= 0xFF

	err = parsed.Verify(NewSet(changed))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStaleHeader))
	assert.Contains(t, err.Error(), "test6.dds")

	changed = [FixtureCount][]byte{}
	for i, f := range set.Fixtures() {
		changed[i] = f.Data
	}
	changed[1] = []byte("ABC")

	err = parsed.Verify(NewSet(changed))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStaleHeader))
	assert.Contains(t, err.Error(), "3 bytes")
}

func TestParseHeaderMalformed(t *testing.T) {
	good, err := Render(sampleSet(), DefaultOptions())
	require.NoError(t, err)
	text := string(good)

	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{
			name:   "empty input",
			input:  "",
			errMsg: "missing array resource_0",
		},
		{
			name:   "size mismatch",
			input:  strings.Replace(text, "\t\t2,\n", "\t\t3,\n", 1),
			errMsg: "resource_sizes[1] = 3",
		},
		{
			name:   "missing reference table",
			input:  text[:strings.Index(text, "\tconst Uint8* resources")],
			errMsg: "missing resources",
		},
		{
			name:   "truncated array",
			input:  text[:strings.Index(text, "const Uint8 resource_3[]")+60],
			errMsg: "unterminated block",
		},
		{
			name:   "wrong table length",
			input:  strings.Replace(text, "resource_sizes[15]", "resource_sizes[14]", 1),
			errMsg: "table length 14",
		},
		{
			name:   "duplicate array",
			input:  strings.Replace(text, "resource_2[]", "resource_1[]", 1),
			errMsg: "duplicate array resource_1",
		},
		{
			name:   "reference out of order",
			input:  strings.Replace(text, "\t\tresource_4,\n\t\tresource_5,", "\t\tresource_5,\n\t\tresource_4,", 1),
			errMsg: "resources[4] = resource_5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedHeader), "got %v", err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
