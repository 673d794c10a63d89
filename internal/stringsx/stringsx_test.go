package stringsx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClip_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"equal", "hello", 5, "hello"},
		{"clip", "hello", 3, "hel..."},
		{"zero", "hello", 0, ""},
		{"neg", "hello", -1, ""},
		{"empty", "", 3, ""},
		{"multibyte", "привет", 2, "пр..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Clip(tt.in, tt.max))
		})
	}
}

func TestLen_CountsRunes(t *testing.T) {
	require.Equal(t, 0, Len(""))
	require.Equal(t, 5, Len("hello"))
	require.Equal(t, 5, Len("héllo"))
	require.Equal(t, 4, Len("日本語!"))
}

func TestIsEmpty(t *testing.T) {
	require.True(t, IsEmpty("   \n\t  "))
	require.True(t, IsEmpty(""))
	require.False(t, IsEmpty(" x "))
}
