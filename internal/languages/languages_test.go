package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByCode(t *testing.T) {
	italian, ok := ByCode("it")
	require.True(t, ok)
	assert.Equal(t, "Italian", italian.Name)
	assert.Equal(t, "Italiano", italian.NativeName)

	_, ok = ByCode("en")
	assert.False(t, ok)
	_, ok = ByCode("xx")
	assert.False(t, ok)

	assert.Len(t, All(), 15)
	assert.Len(t, Native(), 16)
}

func TestSpeechCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "it", want: "it-IT"},
		{code: "pt", want: "pt-PT"},
		{code: "no", want: "no-NO"},
		{code: "en", want: "en-US"},
		{code: "", want: "en-US"},
		{code: "ja", want: "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, SpeechCode(tt.code))
		})
	}
}

func TestIsNativeAndLabel(t *testing.T) {
	assert.True(t, IsNative("en"))
	assert.True(t, IsNative("fi"))
	assert.False(t, IsNative("ja"))

	assert.Equal(t, "🇮🇹 Italian", Label("it"))
	assert.Equal(t, "🇬🇧 English", Label("en"))
	assert.Equal(t, "ja", Label("ja"))
}
