// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-thread/pkg/types"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"OneThinker: Unified Reasoning", "onethinkerunifiedreasoning"},
		{"OneThinker - Unified Reasoning", "onethinkerunifiedreasoning"},
		{"CAMEO – Multi-View Diffusion!", "cameomultiviewdiffusion"},
		{"Über-Net (v2)", "übernetv2"},
		{"snake_case title", "snake_casetitle"},
		{" ... ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitle(tt.in), "NormalizeTitle(%q)", tt.in)
	}
}

func TestNewPool(t *testing.T) {
	pool := NewPool([]types.Candidate{
		{Title: "First Paper", ID: "a"},
		{Title: "---", ID: "skipped"},
		{Title: "First paper!", ID: "b"},
		{Title: "Second Paper", ID: "c"},
	})
	require.Equal(t, 2, pool.Len())

	id, ok := pool.Match("first paper")
	require.True(t, ok)
	assert.Equal(t, "b", id)
}

func TestMatch_ExactNormalized(t *testing.T) {
	pool := NewPool([]types.Candidate{
		{Title: "CAMEO: Multi-View Diffusion", ID: "http://arxiv.org/abs/0002.00002v1"},
		{Title: "OneThinker - Unified Reasoning", ID: "http://arxiv.org/abs/0001.00001v1"},
	})

	id, ok := pool.Match("OneThinker: Unified Reasoning")
	require.True(t, ok)
	assert.Equal(t, "http://arxiv.org/abs/0001.00001v1", id)

	id, ok = pool.Match("CAMEO - Multi-View Diffusion")
	require.True(t, ok)
	assert.Equal(t, "http://arxiv.org/abs/0002.00002v1", id)

	assert.Equal(t, 0, pool.Len())
}

func TestMatch_ConsumesCandidate(t *testing.T) {
	pool := NewPool([]types.Candidate{
		{Title: "OneThinker - Unified Reasoning", ID: "http://arxiv.org/abs/0001.00001v1"},
	})

	_, ok := pool.Match("OneThinker: Unified Reasoning")
	require.True(t, ok)

	_, ok = pool.Match("OneThinker: Unified Reasoning")
	assert.False(t, ok)
}

func TestMatch_NeverReturnsSameIDTwice(t *testing.T) {
	pool := NewPool([]types.Candidate{
		{Title: "Diffusion Models for Video", ID: "one"},
		{Title: "Diffusion Models for Videos", ID: "two"},
	})

	first, ok := pool.Match("Diffusion Models for Video")
	require.True(t, ok)
	second, ok := pool.Match("Diffusion Models for Video")
	require.True(t, ok)

	assert.Equal(t, "one", first)
	assert.Equal(t, "two", second)
	_, ok = pool.Match("Diffusion Models for Video")
	assert.False(t, ok)
}

func TestMatch_Fuzzy(t *testing.T) {
	pool := NewPool([]types.Candidate{
		{Title: "Some Other Paper", ID: "other"},
		{Title: "Attention Is All You Needed", ID: "attn"},
	})

	id, ok := pool.Match("Attention is all you need")
	require.True(t, ok)
	assert.Equal(t, "attn", id)
	assert.Equal(t, 1, pool.Len())
}

func TestMatch_BelowCutoff(t *testing.T) {
	pool := NewPool([]types.Candidate{
		{Title: "Some Other Paper", ID: "http://arxiv.org/abs/9999.99999v1"},
	})

	_, ok := pool.Match("Paper Without Match")
	assert.False(t, ok)
	assert.Equal(t, 1, pool.Len())
}

func TestMatch_TieGoesToEarlierCandidate(t *testing.T) {
	pool := NewPool([]types.Candidate{
		{Title: "abcdefghix", ID: "x"},
		{Title: "abcdefghiy", ID: "y"},
	})

	id, ok := pool.Match("abcdefghiz")
	require.True(t, ok)
	assert.Equal(t, "x", id)
}

func TestMatch_EmptyTitle(t *testing.T) {
	pool := NewPool([]types.Candidate{{Title: "Anything", ID: "a"}})

	_, ok := pool.Match(" -- ")
	assert.False(t, ok)
	assert.Equal(t, 1, pool.Len())
}

func TestMatchRecord(t *testing.T) {
	pool := NewPool([]types.Candidate{{Title: "CAMEO: Multi-View Diffusion", ID: "cameo"}})

	_, ok := MatchRecord(types.Record{"Field & Subfield": "CV"}, pool)
	assert.False(t, ok)

	id, ok := MatchRecord(types.Record{"Title": "CAMEO - Multi-View Diffusion"}, pool)
	require.True(t, ok)
	assert.Equal(t, "cameo", id)
}
