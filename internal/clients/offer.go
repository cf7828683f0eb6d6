package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
)

// OfferClient talks to the offer service. Offers are re-read on every
// seat-consuming operation, never trusted from an earlier fetch.
type OfferClient struct {
	address string
	client  *http.Client
}

func NewOfferClient(address string) *OfferClient {
	return &OfferClient{
		address: address,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *OfferClient) GetOffer(ctx context.Context, offerID string) (model.Offer, error) {
	url := fmt.Sprintf("%s/api/offers/%s", c.address, offerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Offer{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return model.Offer{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var offer model.Offer
		if err := json.NewDecoder(resp.Body).Decode(&offer); err != nil {
			return model.Offer{}, fmt.Errorf("decode response: %w", err)
		}
		return offer, nil

	case http.StatusNotFound:
		return model.Offer{}, fmt.Errorf("%w: offer %s not found", errs.ErrOfferInvalid, offerID)

	default:
		return model.Offer{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// DecrementSeat atomically takes one seat on the offer service side.
// A 409 means the seats ran out between validation and decrement.
func (c *OfferClient) DecrementSeat(ctx context.Context, offerID string) error {
	url := fmt.Sprintf("%s/api/offers/%s/seats/decrement", c.address, offerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: offer %s exhausted", errs.ErrOfferInvalid, offerID)
	case http.StatusNotFound:
		return fmt.Errorf("%w: offer %s not found", errs.ErrOfferInvalid, offerID)
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
