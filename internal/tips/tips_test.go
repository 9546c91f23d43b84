package tips

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnconfiguredProviderServesFallback(t *testing.T) {
	p := NewOpenAIProvider("")

	got := p.BusinessTips(context.Background(), nil)

	require.NotEmpty(t, got)
	assert.Equal(t, FallbackTips, got)
	assert.Len(t, got, 9)
}

func TestParseTips(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "plain array",
			content: `["a","b","c"]`,
			want:    []string{"a", "b", "c"},
		},
		{
			name:    "fenced array",
			content: "```json\n[\"a\",\"b\",\"c\"]\n```",
			want:    []string{"a", "b", "c"},
		},
		{
			name:    "wrong length",
			content: `["only one"]`,
			wantErr: true,
		},
		{
			name:    "not json",
			content: "Here are some tips: 1. ...",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTips(tc.content)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
