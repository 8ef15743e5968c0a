package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
)

// FromRequester fetches the profile from the profile endpoint. The gateway
// supplies the bearer header from the token store.
func FromRequester(api client.Requester) Fetcher {
	return func(ctx context.Context) (*models.Profile, error) {
		raw, err := api.Request(ctx, client.PathProfileMe, http.MethodGet, nil, nil)
		if err != nil {
			return nil, err
		}

		var p models.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		return &p, nil
	}
}
