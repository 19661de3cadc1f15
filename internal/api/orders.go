package api

import (
	"context"
	"fmt"
	"net/http"

	"stellarburgers/internal/types"
)

// FeedData is the system-wide order feed with its aggregate counts.
type FeedData struct {
	Orders     []types.Order `json:"orders"`
	Total      int           `json:"total"`
	TotalToday int           `json:"totalToday"`
}

type feedResponse struct {
	envelope
	FeedData
}

// Feed fetches the public list of all orders plus totals.
func (c *Client) Feed(ctx context.Context) (FeedData, error) {
	var resp feedResponse
	if err := c.call(ctx, http.MethodGet, "/orders/all", nil, false, &resp); err != nil {
		return FeedData{}, err
	}
	return resp.FeedData, nil
}

type newOrderResponse struct {
	envelope
	Name  string      `json:"name"`
	Order types.Order `json:"order"`
}

// SubmitOrder places an order for the given ingredient ID sequence, exactly
// as assembled (bun ID at both ends bracketing the fillings).
func (c *Client) SubmitOrder(ctx context.Context, ingredientIDs []string) (types.Order, error) {
	var resp newOrderResponse
	body := map[string][]string{"ingredients": ingredientIDs}
	if err := c.callAuthed(ctx, http.MethodPost, "/orders", body, &resp); err != nil {
		return types.Order{}, err
	}
	return resp.Order, nil
}

// MyOrders fetches the authenticated user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]types.Order, error) {
	var resp feedResponse
	if err := c.callAuthed(ctx, http.MethodGet, "/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

type orderResponse struct {
	envelope
	Orders []types.Order `json:"orders"`
}

// OrderByNumber fetches a single order by its display number.
func (c *Client) OrderByNumber(ctx context.Context, number int) (types.Order, error) {
	var resp orderResponse
	path := fmt.Sprintf("/orders/%d", number)
	if err := c.call(ctx, http.MethodGet, path, nil, false, &resp); err != nil {
		return types.Order{}, err
	}
	if len(resp.Orders) == 0 {
		return types.Order{}, &APIError{Message: fmt.Sprintf("order %d not found", number), Status: http.StatusNotFound}
	}
	return resp.Orders[0], nil
}
