package apifydomain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
)

// Os actors mudam de nome de campo entre plataformas e versões; o primeiro presente vence
var (
	ViewAliases     = []string{"playCount", "viewCount", "videoViewCount", "videoPlayCount", "plays", "views"}
	LikeAliases     = []string{"diggCount", "likesCount", "likeCount", "likes"}
	CommentAliases  = []string{"commentCount", "commentsCount", "comments"}
	ShareAliases    = []string{"shareCount", "sharesCount", "shares"}
	BookmarkAliases = []string{"collectCount", "bookmarkCount", "savedCount", "savesCount"}
	DownloadAliases = []string{"downloadCount", "downloads"}

	nestedObjects = []string{"stats", "videoMeta"}
)

// DatasetItem é um item cru do dataset do actor
type DatasetItem map[string]interface{}

// Count procura o primeiro alias numérico no item e depois nos objetos aninhados
func (i DatasetItem) Count(aliases ...string) (int64, bool) {
	if v, ok := lookup(i, aliases); ok {
		return v, true
	}

	for _, key := range nestedObjects {
		nested, ok := i[key].(map[string]interface{})
		if !ok {
			continue
		}
		if v, ok := lookup(nested, aliases); ok {
			return v, true
		}
	}

	return 0, false
}

// ToMetrics normaliza o item; o segundo retorno é false quando não há contagem de views
func (i DatasetItem) ToMetrics() (*domain.Metrics, bool) {
	views, hasViews := i.Count(ViewAliases...)
	if !hasViews {
		return nil, false
	}

	likes, _ := i.Count(LikeAliases...)
	comments, _ := i.Count(CommentAliases...)
	shares, _ := i.Count(ShareAliases...)
	bookmarks, _ := i.Count(BookmarkAliases...)
	downloads, _ := i.Count(DownloadAliases...)

	return &domain.Metrics{
		Views:          views,
		Likes:          likes,
		Comments:       comments,
		Shares:         shares,
		Bookmarks:      bookmarks,
		Downloads:      downloads,
		EngagementRate: EngagementRate(views, likes, comments, shares, bookmarks),
	}, true
}

// EngagementRate = (likes + comments + shares + bookmarks) / views * 100, 2 casas
func EngagementRate(views, likes, comments, shares, bookmarks int64) float64 {
	if views <= 0 {
		return 0
	}

	interactions := decimal.NewFromInt(likes + comments + shares + bookmarks)

	return interactions.
		Div(decimal.NewFromInt(views)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

func lookup(m map[string]interface{}, aliases []string) (int64, bool) {
	for _, alias := range aliases {
		raw, exists := m[alias]
		if !exists || raw == nil {
			continue
		}
		if v, ok := toCount(raw); ok {
			return v, true
		}
	}
	return 0, false
}

func toCount(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		return parseCount(v.String())
	case string:
		return parseCount(v)
	default:
		return 0, false
	}
}

func parseCount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}
