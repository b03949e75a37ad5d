package grammar_test

import (
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegen/grammar"
)

func TestParseRanged(t *testing.T) {
	src := `#[derive(Describe)] LogTen {
    Zero: 0,
    Ones: 1..10, // one digit
    Tens: 10..0x64,
}`
	ranged, err := grammar.ParseRanged("test.shape", src)
	require.NoError(t, err)

	require.Len(t, ranged.Attrs, 1)
	assert.Equal(t, "derive", ranged.Attrs[0].Name.Value)
	require.Len(t, ranged.Attrs[0].Args, 1)
	assert.Equal(t, "Describe", ranged.Attrs[0].Args[0].Value)

	assert.Equal(t, "LogTen", ranged.Name.Value)
	require.Len(t, ranged.Variants, 3)

	zero := ranged.Variants[0]
	assert.Equal(t, "Zero", zero.Name.Value)
	assert.Equal(t, "0", zero.Start.Text)
	assert.Nil(t, zero.End)

	tens := ranged.Variants[2]
	assert.Equal(t, "10", tens.Start.Text)
	require.NotNil(t, tens.End)
	assert.Equal(t, "0x64", tens.End.Text)

	// positions are byte offsets into the input
	assert.Equal(t, 33, zero.Name.Pos.Offset)
	assert.Equal(t, 2, zero.Name.Pos.Line)
}

func TestParseRangedEmpty(t *testing.T) {
	ranged, err := grammar.ParseRanged("test.shape", "Nothing {}")
	require.NoError(t, err)
	assert.Equal(t, "Nothing", ranged.Name.Value)
	assert.Empty(t, ranged.Variants)
}

func TestParseRangedErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		offset int // lower bound
	}{
		{"missing colon", "E { A 0 }", 4},
		{"missing bound", "E { A: 0.. }", 4},
		{"missing name", "{ A: 0 }", 0},
		{"double comma", "E { A: 0,, }", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grammar.ParseRanged("test.shape", tt.src)
			require.Error(t, err)
			var pe participle.Error
			require.ErrorAs(t, err, &pe)
			// the failure is never reported before the first offending token
			assert.GreaterOrEqual(t, pe.Position().Offset, tt.offset)
		})
	}
}
