package apifydomain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetItem_ToMetrics(t *testing.T) {
	tests := []struct {
		name     string
		item     DatasetItem
		validate func(t *testing.T, item DatasetItem)
	}{
		{
			name: "TikTok - campos no topo do item",
			item: DatasetItem{
				"playCount":    float64(45000),
				"diggCount":    float64(3000),
				"commentCount": float64(120),
				"shareCount":   float64(80),
				"collectCount": float64(300),
			},
			validate: func(t *testing.T, item DatasetItem) {
				m, ok := item.ToMetrics()
				require.True(t, ok)
				assert.Equal(t, int64(45000), m.Views)
				assert.Equal(t, int64(3000), m.Likes)
				assert.Equal(t, int64(120), m.Comments)
				assert.Equal(t, int64(80), m.Shares)
				assert.Equal(t, int64(300), m.Bookmarks)
				assert.Equal(t, int64(0), m.Downloads)
				// (3000+120+80+300)/45000*100 = 7.777...
				assert.Equal(t, 7.78, m.EngagementRate)
			},
		},
		{
			name: "Instagram - videoPlayCount e likesCount",
			item: DatasetItem{
				"videoPlayCount": float64(1000),
				"likesCount":     float64(50),
				"commentsCount":  float64(5),
			},
			validate: func(t *testing.T, item DatasetItem) {
				m, ok := item.ToMetrics()
				require.True(t, ok)
				assert.Equal(t, int64(1000), m.Views)
				assert.Equal(t, int64(50), m.Likes)
				assert.Equal(t, int64(5), m.Comments)
				assert.Equal(t, 5.5, m.EngagementRate)
			},
		},
		{
			name: "Métricas aninhadas em stats",
			item: DatasetItem{
				"id": "123",
				"stats": map[string]interface{}{
					"playCount": float64(20000),
					"diggCount": float64(100),
				},
			},
			validate: func(t *testing.T, item DatasetItem) {
				m, ok := item.ToMetrics()
				require.True(t, ok)
				assert.Equal(t, int64(20000), m.Views)
				assert.Equal(t, int64(100), m.Likes)
			},
		},
		{
			name: "Números como string e json.Number",
			item: DatasetItem{
				"viewCount":     "12345",
				"likeCount":     json.Number("10"),
				"downloadCount": " 7 ",
			},
			validate: func(t *testing.T, item DatasetItem) {
				m, ok := item.ToMetrics()
				require.True(t, ok)
				assert.Equal(t, int64(12345), m.Views)
				assert.Equal(t, int64(10), m.Likes)
				assert.Equal(t, int64(7), m.Downloads)
			},
		},
		{
			name: "Primeiro alias presente vence",
			item: DatasetItem{
				"playCount": float64(500),
				"views":     float64(999),
			},
			validate: func(t *testing.T, item DatasetItem) {
				m, ok := item.ToMetrics()
				require.True(t, ok)
				assert.Equal(t, int64(500), m.Views)
			},
		},
		{
			name: "Views zero - engajamento zero",
			item: DatasetItem{
				"playCount": float64(0),
				"diggCount": float64(10),
			},
			validate: func(t *testing.T, item DatasetItem) {
				m, ok := item.ToMetrics()
				require.True(t, ok)
				assert.Equal(t, int64(0), m.Views)
				assert.Equal(t, float64(0), m.EngagementRate)
			},
		},
		{
			name: "Sem contagem de views",
			item: DatasetItem{
				"diggCount": float64(10),
				"playCount": "não é número",
			},
			validate: func(t *testing.T, item DatasetItem) {
				m, ok := item.ToMetrics()
				assert.False(t, ok)
				assert.Nil(t, m)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.item)
		})
	}
}

func TestProviderError_Classification(t *testing.T) {
	assert.True(t, IsTransient(NewStatusError("start_run", 429, "")))
	assert.True(t, IsTransient(NewStatusError("start_run", 503, "")))
	assert.False(t, IsTransient(NewStatusError("start_run", 404, "")))
	assert.False(t, IsTransient(NewStatusError("start_run", 401, "")))
	assert.Equal(t, KindRateLimited, KindOf(NewStatusError("get_run", 429, "")))

	wrapped := NewProviderError("run", KindRunFailed, true, nil)
	assert.True(t, IsTransient(wrapped))
	assert.False(t, IsTransient(assert.AnError))
	assert.Equal(t, ErrorKind(""), KindOf(assert.AnError))
}
