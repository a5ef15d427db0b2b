// Package client is an HTTP client for the hooktrap API, used by the CLI.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rsclarke/hooktrap/internal/api"
	"github.com/rsclarke/hooktrap/internal/models"
)

type Client struct {
	BaseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL}
}

// CreateToken mints a new token and returns the full record, including the
// webhook URL derived by the server.
func (c *Client) CreateToken() (*models.Token, error) {
	resp, err := http.Post(c.BaseURL+"/api/tokens", "application/json", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var result models.Token
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTokens returns all tokens, most recently created first.
func (c *Client) ListTokens() ([]models.Token, error) {
	resp, err := http.Get(c.BaseURL + "/api/tokens")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var result []models.Token
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteToken removes a token and all of its captured requests. Deleting a
// token that never existed still succeeds.
func (c *Client) DeleteToken(token string) error {
	req, err := http.NewRequest(http.MethodDelete, c.BaseURL+"/api/tokens/"+token, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseError(resp)
	}
	return nil
}

// GetLogs returns up to count captured requests for the token, most recent
// first. The server clamps count to its own maximum.
func (c *Client) GetLogs(token string, count int) ([]models.CapturedRequest, error) {
	resp, err := http.Get(fmt.Sprintf("%s/%s/log/%d", c.BaseURL, token, count))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var result []models.CapturedRequest
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}

func parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return fmt.Errorf("%s", errResp.Error)
}
