package qrsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// SaveProject requires a session.
func (c *Client) SaveProject(ctx context.Context, req SaveProjectRequest) (*Project, error) {
	var out ProjectResponse
	if err := c.call(ctx, http.MethodPost, "/api/save-project", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out ProjectsResponse
	if err := c.call(ctx, http.MethodGet, "/api/get-projects", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var out ProjectResponse
	if err := c.call(ctx, http.MethodGet, "/api/get-project/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	var out ProjectResponse
	if err := c.call(ctx, http.MethodPut, "/api/update-project/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

// UpdateColors only applies QRImage, FgColor and BgColor.
func (c *Client) UpdateColors(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	var out ProjectResponse
	if err := c.call(ctx, http.MethodPut, "/api/update-color/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/delete-project/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// Track records a scan and returns the redirect target without following
// it.
func (c *Client) Track(ctx context.Context, id string, userAgent string) (string, error) {
	hc := *c.HTTPClient
	hc.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/track/"+url.PathEscape(id)), nil)
	if err != nil {
		return "", err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusFound {
		return "", decodeJSON(resp, nil, http.StatusFound)
	}
	defer resp.Body.Close()

	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", errors.New("qrsdk: redirect without location")
	}
	return loc, nil
}

func (c *Client) GetScanCount(ctx context.Context, id string) (int64, error) {
	var out ScanCountResponse
	if err := c.call(ctx, http.MethodGet, "/api/get-scan-count/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.ScanCount, nil
}

func (c *Client) GetScanAnalytics(ctx context.Context, id string) (*ScanAnalyticsResponse, error) {
	var out ScanAnalyticsResponse
	if err := c.call(ctx, http.MethodGet, "/api/get-scan-analytics/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CustomData proxies a scan of a caller owned Cosmos container.
func (c *Client) CustomData(ctx context.Context, req CustomDataRequest) (*CustomDataResponse, error) {
	var out CustomDataResponse
	if err := c.call(ctx, http.MethodPost, "/api/custom-data", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
