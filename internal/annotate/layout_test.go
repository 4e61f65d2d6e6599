package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapTextFitsWidth(t *testing.T) {
	const size = 16.0
	text := "the quick brown fox jumps over the lazy dog and keeps on running"
	width := MeasureString(size, "the quick brown")

	lines := WrapText(size, text, width)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, MeasureString(size, line), width, "line %q overflows", line)
	}
	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(strings.Fields(strings.Join(lines, " ")), " "))
}

func TestWrapTextHardBreaksLongWords(t *testing.T) {
	const size = 16.0
	word := "Pneumonoultramicroscopicsilicovolcanoconiosis"
	width := MeasureString(size, "Pneumo")

	lines := WrapText(size, word, width)
	require.Greater(t, len(lines), 1)
	assert.Equal(t, word, strings.Join(lines, ""))
	for _, line := range lines {
		if len([]rune(line)) > 1 {
			assert.LessOrEqual(t, MeasureString(size, line), width)
		}
	}
}

func TestWrapTextKeepsParagraphBreaks(t *testing.T) {
	lines := WrapText(16, "first\n\nsecond", 10000)
	assert.Equal(t, []string{"first", "", "second"}, lines)
}

func TestWrapTextNonPositiveWidth(t *testing.T) {
	lines := WrapText(16, "anything at all", 0)
	assert.Equal(t, []string{"anything at all"}, lines)
}

func TestLayoutIdempotent(t *testing.T) {
	const size = 14.0
	cases := []string{
		"a wrapped annotation with several words that will not fit on one line",
		"Supercalifragilisticexpialidocious mixed with short words",
		"explicit\nbreaks stay\nput",
		"",
		"   leading and trailing   spaces   ",
	}
	for _, text := range cases {
		width := MeasureString(size, "a wrapped anno")
		first := LayoutText(size, text, width)
		second := LayoutText(size, strings.Join(first.Lines, "\n"), width)
		assert.Equal(t, first.Lines, second.Lines, "input %q", text)
	}
}

func TestLayoutHeightNeverBelowOneLine(t *testing.T) {
	l := LayoutText(20, "", 100)
	assert.Equal(t, LineHeight(20), l.Height)

	l = LayoutText(20, "one\ntwo\nthree", 10000)
	assert.Equal(t, 3*LineHeight(20), l.Height)
}

func TestFaceCachedPerSize(t *testing.T) {
	a := Face(14)
	b := Face(14.3)
	c := Face(15)
	assert.Equal(t, a, b, "sizes rounding to the same pixel share a face")
	assert.NotNil(t, c)
	assert.NotNil(t, Face(0))
}

func TestMeasureStringMonotonic(t *testing.T) {
	short := MeasureString(16, "hi")
	long := MeasureString(16, "hi there")
	assert.Greater(t, long, short)
	assert.Zero(t, MeasureString(16, ""))
}
