package kachaka

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const rpcPathPrefix = "/kachaka_api.KachakaApi/"

// Client issues request/response calls against one robot's API bridge.
// Calls carry no retries and no client-side timeout; deadlines, when wanted,
// come in through the caller's context.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a client for the robot reachable at addr (host:port).
func NewClient(addr string) *Client {
	return &Client{
		baseURL: "http://" + addr,
		client:  &http.Client{},
	}
}

func (c *Client) call(ctx context.Context, method string, out any) error {
	body, err := json.Marshal(getRequest{})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+rpcPathPrefix+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %s: %s", method, resp.Status, bytes.TrimSpace(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	return nil
}

// GetRobotSerialNumber reads the robot's serial number.
func (c *Client) GetRobotSerialNumber(ctx context.Context) (string, error) {
	var resp serialNumberResponse
	if err := c.call(ctx, "GetRobotSerialNumber", &resp); err != nil {
		return "", err
	}
	return resp.SerialNumber, nil
}

// GetCurrentMapId reads the ID of the map the robot is currently using.
func (c *Client) GetCurrentMapId(ctx context.Context) (string, error) {
	var resp currentMapIDResponse
	if err := c.call(ctx, "GetCurrentMapId", &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// GetRobotVersion reads the robot's software version string.
func (c *Client) GetRobotVersion(ctx context.Context) (string, error) {
	var resp robotVersionResponse
	if err := c.call(ctx, "GetRobotVersion", &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}

// GetPngMap reads the current map as a PNG with its geometry, plus the
// cursor token versioning it.
func (c *Client) GetPngMap(ctx context.Context) (Map, int64, error) {
	var resp pngMapResponse
	if err := c.call(ctx, "GetPngMap", &resp); err != nil {
		return Map{}, 0, err
	}
	return resp.Map, resp.Metadata.Cursor, nil
}
