package api

import (
	"context"
	"net/http"

	"stellarburgers/internal/types"
)

type ingredientsResponse struct {
	envelope
	Data []types.Ingredient `json:"data"`
}

// Ingredients fetches the full component catalog.
func (c *Client) Ingredients(ctx context.Context) ([]types.Ingredient, error) {
	var resp ingredientsResponse
	if err := c.call(ctx, http.MethodGet, "/ingredients", nil, false, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
