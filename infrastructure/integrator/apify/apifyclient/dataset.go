package apifyclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apifydomain "github.com/vfg2006/creator-cpm-sync/infrastructure/integrator/apify/domain"
)

func (c *ApifyClient) GetDatasetItems(ctx context.Context, datasetID string) ([]apifydomain.DatasetItem, error) {
	items := make([]apifydomain.DatasetItem, 0)

	query := url.Values{}
	query.Set("format", "json")
	query.Set("clean", "true")

	path := fmt.Sprintf("/datasets/%s/items", url.PathEscape(datasetID))
	if err := c.do(ctx, "get_dataset_items", http.MethodGet, path, query, nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}
