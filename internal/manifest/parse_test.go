package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := Parse([]byte(`{"sha":"abc123","files":[{"file":"a.bin"},{"file":"sc/ui.sc","sha":"ignored"}],"version":"1.2"}`))
	require.NoError(t, err)

	assert.Equal(t, "abc123", m.ContentID)
	require.Len(t, m.Files, 2)
	assert.Equal(t, "a.bin", m.Files[0].RelativeName)
	assert.Equal(t, "sc/ui.sc", m.Files[1].RelativeName)
}

func TestParse_StripsQuotes(t *testing.T) {
	m, err := Parse([]byte(`{"sha":"\"abc123\"","files":[{"file":"\"a.bin\""}]}`))
	require.NoError(t, err)

	assert.Equal(t, "abc123", m.ContentID)
	assert.Equal(t, "a.bin", m.Files[0].RelativeName)
}

func TestParse_EmptyFiles(t *testing.T) {
	m, err := Parse([]byte(`{"sha":"abc123","files":[]}`))
	require.NoError(t, err)

	assert.True(t, m.IsEmpty())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"not json", `sha=abc123`},
		{"missing sha", `{"files":[]}`},
		{"empty sha", `{"sha":"","files":[]}`},
		{"quotes only sha", `{"sha":"\"\"","files":[]}`},
		{"sha not a string", `{"sha":42,"files":[]}`},
		{"sha with slash", `{"sha":"a/b","files":[]}`},
		{"missing files", `{"sha":"abc123"}`},
		{"null files", `{"sha":"abc123","files":null}`},
		{"files not a list", `{"sha":"abc123","files":"a.bin"}`},
		{"entry without file", `{"sha":"abc123","files":[{"name":"a.bin"}]}`},
		{"empty file", `{"sha":"abc123","files":[{"file":""}]}`},
		{"traversal", `{"sha":"abc123","files":[{"file":"../a.bin"}]}`},
		{"absolute", `{"sha":"abc123","files":[{"file":"/etc/passwd"}]}`},
		{"duplicate", `{"sha":"abc123","files":[{"file":"a.bin"},{"file":"a.bin"}]}`},
		{"duplicate via dot segment", `{"sha":"abc123","files":[{"file":"a.bin"},{"file":"./a.bin"}]}`},
		{"duplicate via double slash", `{"sha":"abc123","files":[{"file":"sub/a.bin"},{"file":"sub//a.bin"}]}`},
		{"trailing slash", `{"sha":"abc123","files":[{"file":"sub/"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrManifestMalformed)
		})
	}
}
