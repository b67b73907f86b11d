package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsOverlapNotBelowWindow(t *testing.T) {
	_, err := New(1000, 1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOverlap)

	_, err = New(1000, 1200)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOverlap)

	_, err = New(0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = New(1000, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOverlap)
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c, err := New(1000, 200)
	require.NoError(t, err)

	for _, text := range []string{"a", strings.Repeat("x", 999), strings.Repeat("x", 1000)} {
		chunks := c.Split(text)
		require.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0])
	}
}

func TestSplit_EmptyText(t *testing.T) {
	c, err := New(1000, 200)
	require.NoError(t, err)
	assert.Empty(t, c.Split(""))
}

func TestSplit_KnownOffsets(t *testing.T) {
	c, err := New(1000, 200)
	require.NoError(t, err)

	text := strings.Repeat("A", 2400)
	chunks := c.Split(text)

	require.Len(t, chunks, 3)
	assert.Equal(t, text[0:1000], chunks[0])
	assert.Equal(t, text[800:1800], chunks[1])
	assert.Equal(t, text[1600:2400], chunks[2])
}

func TestSplit_ConsecutiveChunksShareOverlap(t *testing.T) {
	c, err := New(100, 30)
	require.NoError(t, err)

	// Distinct characters so overlapping regions are position-sensitive.
	var b strings.Builder
	for i := 0; i < 457; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		overlap := prev[len(prev)-30:]
		require.GreaterOrEqual(t, len(cur), 30)
		assert.Equal(t, overlap, cur[:30], "chunk %d must start with the previous chunk's tail", i)
	}
}

func TestSplit_ReconstructsOriginal(t *testing.T) {
	c, err := New(100, 30)
	require.NoError(t, err)

	var b strings.Builder
	for i := 0; i < 1234; i++ {
		b.WriteByte(byte('A' + i%26))
	}
	text := b.String()

	chunks := c.Split(text)
	require.NotEmpty(t, chunks)

	// Concatenating the non-overlapping portions reconstructs the input.
	rebuilt := chunks[0]
	for i := 1; i < len(chunks); i++ {
		rebuilt += chunks[i][30:]
	}
	assert.Equal(t, text, rebuilt)

	// All chunks except the last fill the window.
	for i := 0; i < len(chunks)-1; i++ {
		assert.Len(t, chunks[i], 100)
	}
	assert.LessOrEqual(t, len(chunks[len(chunks)-1]), 100)
}

func TestSplit_MultiByteCharacterAtWindowBoundary(t *testing.T) {
	c, err := New(1000, 200)
	require.NoError(t, err)

	// "é" is 2 bytes but 1 character; placed so a byte-offset cut would
	// land inside it.
	text := strings.Repeat("A", 999) + "é" + strings.Repeat("B", 1400)
	chunks := c.Split(text)

	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d must be valid UTF-8", i)
	}

	runes := []rune(text)
	assert.Equal(t, string(runes[0:1000]), chunks[0])
	assert.Equal(t, string(runes[800:1800]), chunks[1])
	assert.Equal(t, string(runes[1600:2400]), chunks[2])
	assert.Equal(t, "é", chunks[0][len(chunks[0])-len("é"):])
}

func TestSplit_WindowCountsCharactersNotBytes(t *testing.T) {
	c, err := New(10, 3)
	require.NoError(t, err)

	// 25 characters, 3 bytes each.
	text := strings.Repeat("世界和平永", 5)
	chunks := c.Split(text)

	require.Len(t, chunks, 4)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d must be valid UTF-8", i)
	}
	for i := 0; i < len(chunks)-1; i++ {
		assert.Equal(t, 10, utf8.RuneCountInString(chunks[i]))
	}

	rebuilt := chunks[0]
	for i := 1; i < len(chunks); i++ {
		rebuilt += string([]rune(chunks[i])[3:])
	}
	assert.Equal(t, text, rebuilt)
}

func TestSplit_ZeroOverlap(t *testing.T) {
	c, err := New(10, 0)
	require.NoError(t, err)

	text := strings.Repeat("ab", 15) // 30 chars
	chunks := c.Split(text)
	require.Len(t, chunks, 3)
	assert.Equal(t, text, strings.Join(chunks, ""))
}
