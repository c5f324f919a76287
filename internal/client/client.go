// Package client talks to the tracker GraphQL API over HTTP.
//
// Authenticated calls take the caller's Credentials explicitly; the client
// itself holds no session state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client represents a client for the tracker API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// Credentials identify the caller of an authenticated request
type Credentials struct {
	Token string
}

// APIError is an error reported by the API in the GraphQL errors array
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the API error code carried by err, or "" if there is none
func CodeOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// New creates a new tracker API client
func New(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// doGraphQLRequest posts a query with variables and decodes the data object into out
func (c *Client) doGraphQLRequest(ctx context.Context, query string, variables map[string]interface{}, creds *Credentials, out interface{}) error {
	requestBody := map[string]interface{}{
		"query":     query,
		"variables": variables,
	}

	bodyBytes, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/graphql", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if creds != nil && creds.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", creds.Token))
	}

	c.logger.WithFields(logrus.Fields{
		"url": url,
	}).Debug("Making tracker API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("Tracker API error")
		return fmt.Errorf("tracker API error: status %d", resp.StatusCode)
	}

	var result graphQLResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for GraphQL errors
	if len(result.Errors) > 0 {
		first := result.Errors[0]
		return &APIError{Code: first.Extensions.Code, Message: first.Message}
	}

	if len(result.Data) == 0 || string(result.Data) == "null" {
		return fmt.Errorf("invalid response format")
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
