package renewalsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.get(ctx, "/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	var out PlanList
	if err := c.get(ctx, "/plans", &out); err != nil {
		return nil, err
	}
	return out.Plans, nil
}

func (c *Client) ListGuides(ctx context.Context) ([]Guide, error) {
	var out GuideList
	if err := c.get(ctx, "/cancellation-guides", &out); err != nil {
		return nil, err
	}
	return out.Guides, nil
}

func (c *Client) GetGuide(ctx context.Context, slug string) (*Guide, error) {
	var out Guide
	if err := c.get(ctx, "/cancellation-guides/"+url.PathEscape(slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PutGuide(ctx context.Context, slug string, req GuideRequest) (*Guide, error) {
	var out Guide
	if err := c.send(ctx, http.MethodPut, "/cancellation-guides/"+url.PathEscape(slug), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunNotifications triggers the reminder batch with the shared cron secret.
// The client's Token is not used.
func (c *Client) RunNotifications(ctx context.Context, secret string) (*NotificationRunResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/internal/cron/notifications", nil, map[string]string{
		"Authorization": "Bearer " + secret,
	})
	if err != nil {
		return nil, err
	}
	var out NotificationRunResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "/livez", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "/readyz", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
