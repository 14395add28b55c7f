package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/internal/validation"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// CardsClient implements the xmoney.CardsClient interface.
type CardsClient struct {
	requester xmoney.Requester
}

// NewCardsClient creates a new CardsClient.
func NewCardsClient(requester xmoney.Requester) *CardsClient {
	return &CardsClient{
		requester: requester,
	}
}

// List lists one page of a customer's cards. params.CustomerID is required.
func (c *CardsClient) List(ctx context.Context, params *xmoney.CardListParams) (*xmoney.ListResponse[xmoney.Card], error) {
	err := validation.Struct(params)
	if err != nil {
		return nil, err
	}

	result, err := xmoney.RequestPaginated[xmoney.Card](ctx, c.requester, http.MethodGet, constants.APIPathCards, nil, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}

	return result, nil
}

// ListAutoPaging iterates over every card matching params.
func (c *CardsClient) ListAutoPaging(ctx context.Context, params *xmoney.CardListParams) *xmoney.Iterator[xmoney.Card] {
	return autoPage[xmoney.Card](ctx, c.requester, constants.APIPathCards, validation.Struct(params), params)
}

// Retrieve retrieves a card belonging to customerID.
func (c *CardsClient) Retrieve(ctx context.Context, id, customerID int64) (*xmoney.Card, error) {
	err := validation.ID(id)
	if err != nil {
		return nil, err
	}

	err = validation.ID(customerID)
	if err != nil {
		return nil, err
	}

	query := url.Values{"customerId": []string{strconv.FormatInt(customerID, 10)}}

	card, err := xmoney.Request[xmoney.Card](ctx, c.requester, http.MethodGet, resourcePath(constants.APIPathCards, id), nil, query)
	if err != nil {
		return nil, fmt.Errorf("retrieving card: %w", err)
	}

	return card, nil
}

// Delete deletes a card.
func (c *CardsClient) Delete(ctx context.Context, id int64) error {
	err := validation.ID(id)
	if err != nil {
		return err
	}

	_, err = c.requester.Do(ctx, http.MethodDelete, resourcePath(constants.APIPathCards, id), nil, nil)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}

	return nil
}
