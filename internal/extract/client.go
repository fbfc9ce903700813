package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
)

// Client talks to the external text-extraction service. Extraction itself
// (PDF parsing, validation heuristics) lives on the other side of this
// boundary.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// ExtractRequest asks the service to extract text for an uploaded file
type ExtractRequest struct {
	DocumentID string `json:"document_id"`
	FilePath   string `json:"file_path"`
}

// ExtractResponse carries the extracted text and its page segmentation
type ExtractResponse struct {
	DocumentID string            `json:"document_id"`
	Text       string            `json:"text"`
	WordCount  int               `json:"word_count"`
	Pages      []models.PageText `json:"pages"`
}

type extractError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) Extract(ctx context.Context, req *ExtractRequest) (*ExtractResponse, error) {
	url := fmt.Sprintf("%s/api/v1/extract", c.baseURL)

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest ||
		resp.StatusCode == http.StatusUnsupportedMediaType ||
		resp.StatusCode == http.StatusUnprocessableEntity {
		var errResp extractError
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("extraction error (status %d): %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("extraction error: %s - %s", errResp.Error, errResp.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var extractResp ExtractResponse
	if err := json.Unmarshal(body, &extractResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &extractResp, nil
}
