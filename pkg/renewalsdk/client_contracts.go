package renewalsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListContracts(ctx context.Context, status string) ([]Contract, error) {
	path := "/contracts"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out ContractList
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Contracts, nil
}

func (c *Client) CreateContract(ctx context.Context, req ContractRequest) (*Contract, error) {
	var out Contract
	if err := c.send(ctx, http.MethodPost, "/contracts", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetContract(ctx context.Context, id string) (*Contract, error) {
	var out Contract
	if err := c.get(ctx, "/contracts/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateContract(ctx context.Context, id string, req ContractRequest) (*Contract, error) {
	var out Contract
	if err := c.send(ctx, http.MethodPut, "/contracts/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContract removes a contract. confirm must be true for contracts with
// recorded savings.
func (c *Client) DeleteContract(ctx context.Context, id string, confirm bool) error {
	path := "/contracts/" + url.PathEscape(id)
	if confirm {
		path += "?confirm=true"
	}
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) RenewContract(ctx context.Context, id, nextExpiresAt string) (*Contract, error) {
	var out Contract
	err := c.send(ctx, http.MethodPost, "/contracts/"+url.PathEscape(id)+"/renew",
		RenewRequest{NextExpiresAt: nextExpiresAt}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TerminateContract(ctx context.Context, id string, req TerminateRequest) (*TerminateResponse, error) {
	var out TerminateResponse
	if err := c.send(ctx, http.MethodPost, "/contracts/"+url.PathEscape(id)+"/terminate", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) KeepContract(ctx context.Context, id string) (*Contract, error) {
	var out Contract
	if err := c.send(ctx, http.MethodPost, "/contracts/"+url.PathEscape(id)+"/keep", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	if err := c.get(ctx, "/dashboard/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExchangeRate returns the USD to KRW rate, reusing the last answer for
// ExchangeRateCacheWindow. Only live rates are cached.
func (c *Client) ExchangeRate(ctx context.Context) (*ExchangeRate, error) {
	c.rateMu.Lock()
	if c.rate != nil && c.now().Sub(c.rateFetchedAt) < ExchangeRateCacheWindow {
		rate := *c.rate
		c.rateMu.Unlock()
		return &rate, nil
	}
	c.rateMu.Unlock()

	var out ExchangeRate
	if err := c.get(ctx, "/exchange-rate", &out); err != nil {
		return nil, err
	}

	if out.Source == "live" {
		c.rateMu.Lock()
		stored := out
		c.rate = &stored
		c.rateFetchedAt = c.now()
		c.rateMu.Unlock()
	}
	return &out, nil
}
