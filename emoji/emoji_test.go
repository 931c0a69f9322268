package emoji

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCluster(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pos     int
		wantLen int
		wantOK  bool
	}{
		{"ascii is not a cluster", "abc", 1, 0, false},
		{"simple emoji is one rune", "a😀b", 1, 0, false},
		{"zwj family", "a👨‍👩‍👧‍👦b", 1, 7, true},
		{"skin tone modifier", "👍🏽", 0, 2, true},
		{"variation selector", "❤️", 0, 2, true},
		{"regional indicator flag", "🇩🇪x", 0, 2, true},
		{"combining accent", "é", 0, 2, true},
		{"past end", "ab", 2, 0, false},
		{"negative pos", "ab", -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := NextCluster([]rune(tt.text), tt.pos)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.pos, c.Start)
				assert.Equal(t, tt.wantLen, c.Len())
			}
		})
	}
}

func TestPrevCluster(t *testing.T) {
	family := "👨‍👩‍👧‍👦" // 7 runes
	tests := []struct {
		name    string
		text    string
		pos     int
		wantLen int
		wantOK  bool
	}{
		{"ascii is not a cluster", "abc", 2, 0, false},
		{"zwj family before pos", "a" + family, 8, 7, true},
		{"mid-cluster position yields nothing", "a" + family, 4, 0, false},
		{"flag", "x🇩🇪", 3, 2, true},
		{"start of text", "abc", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := PrevCluster([]rune(tt.text), tt.pos)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.pos, c.End)
				assert.Equal(t, tt.wantLen, c.Len())
			}
		})
	}
}

func TestSourceAdapts(t *testing.T) {
	src := Source{}
	text := []rune("ab👍🏽cd")

	n, ok := src.NextCluster(text, 2)
	require.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = src.PrevCluster(text, 4)
	require.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = src.NextCluster(text, 0)
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("rocket")
	require.True(t, ok)
	assert.Equal(t, "🚀", s)

	_, ok = Lookup("no-such-code")
	assert.False(t, ok)
}

func TestIsRune(t *testing.T) {
	assert.True(t, IsRune('🔥'))
	assert.True(t, IsRune('😀'))
	assert.True(t, IsRune('🚀'))
	assert.True(t, IsRune('☀'))

	assert.False(t, IsRune('a'))
	assert.False(t, IsRune('9'))
	assert.False(t, IsRune('東'))
	assert.False(t, IsRune('‍')) // joiner alone is not an emoji
}
