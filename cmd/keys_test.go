package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{in: "enter", want: 0x0D},
		{in: "ENTER", want: 0x0D},
		{in: " esc ", want: 0x1B},
		{in: "f1", want: 0x70},
		{in: "f12", want: 0x7B},
		{in: "f24", want: 0x87},
		{in: "a", want: 'A'},
		{in: "Z", want: 'Z'},
		{in: "7", want: '7'},
		{in: "0x7B", want: 0x7B},
		{in: "13", want: 13},
		{in: "0", want: '0'},
		{in: "0x0", wantErr: true},
		{in: "0xFF", wantErr: true},
		{in: "f25", wantErr: true},
		{in: "banana", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseKey(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChord(t *testing.T) {
	vks, err := parseChord("ctrl+shift+esc")
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x11, 0x10, 0x1B}, vks)

	vks, err = parseChord("win")
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x5B}, vks)

	_, err = parseChord("ctrl+")
	require.Error(t, err)

	_, err = parseChord("ctrl+nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestExtendedKeys(t *testing.T) {
	for _, name := range []string{"left", "up", "right", "down", "home", "end", "insert", "del", "pageup", "pagedown", "win"} {
		assert.True(t, extendedKeys[virtualKeys[name]], "%s should be extended", name)
	}

	assert.False(t, extendedKeys[virtualKeys["enter"]])
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		x, y    int32
		wantErr bool
	}{
		{in: "0,0"},
		{in: "32768,16384", x: 32768, y: 16384},
		{in: " 65535 , 65535 ", x: 65535, y: 65535},
		{in: "65536,0", wantErr: true},
		{in: "-1,0", wantErr: true},
		{in: "10", wantErr: true},
		{in: "a,b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			x, y, err := parsePoint(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}
