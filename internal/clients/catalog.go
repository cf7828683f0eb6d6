package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edupanel/enrollcore/internal/errs"
)

// CatalogClient fetches course module lists from the catalog service. The
// result becomes the enrollment's immutable module snapshot.
type CatalogClient struct {
	address string
	client  *http.Client
}

func NewCatalogClient(address string) *CatalogClient {
	return &CatalogClient{
		address: address,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *CatalogClient) GetCourseModules(ctx context.Context, courseID string) ([]string, error) {
	url := fmt.Sprintf("%s/api/courses/%s/modules", c.address, courseID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var response struct {
			CourseID string   `json:"course_id"`
			Modules  []string `json:"modules"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		return response.Modules, nil

	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: course %s not in catalog", errs.ErrNotFound, courseID)

	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
