package apifyclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apifydomain "github.com/vfg2006/creator-cpm-sync/infrastructure/integrator/apify/domain"
)

// StartRun dispara o actor de forma assíncrona; o resultado vem pelo polling de GetRun
func (c *ApifyClient) StartRun(ctx context.Context, actorID string, input interface{}) (*apifydomain.Run, error) {
	var response apifydomain.RunResponse

	path := fmt.Sprintf("/acts/%s/runs", url.PathEscape(actorID))
	if err := c.do(ctx, "start_run", http.MethodPost, path, nil, input, &response); err != nil {
		return nil, err
	}

	if response.Data.ID == "" {
		return nil, apifydomain.NewProviderError("start_run", apifydomain.KindDecode, false, fmt.Errorf("resposta sem id de execução"))
	}

	return &response.Data, nil
}

func (c *ApifyClient) GetRun(ctx context.Context, runID string) (*apifydomain.Run, error) {
	var response apifydomain.RunResponse

	path := fmt.Sprintf("/actor-runs/%s", url.PathEscape(runID))
	if err := c.do(ctx, "get_run", http.MethodGet, path, nil, nil, &response); err != nil {
		return nil, err
	}

	return &response.Data, nil
}
