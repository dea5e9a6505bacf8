package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultVolumesBase = "https://www.googleapis.com/books/v1"

// VolumesClient queries the public book-metadata search service for volume
// descriptions.
type VolumesClient struct {
	baseURL string
	http    *http.Client
}

// NewVolumesClient creates a client for the public metadata service.
func NewVolumesClient() *VolumesClient {
	return NewVolumesClientWithBase(defaultVolumesBase)
}

// NewVolumesClientWithBase creates a client against a custom base URL.
// Tests point this at a local server.
func NewVolumesClientWithBase(baseURL string) *VolumesClient {
	return &VolumesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Description string `json:"description"`
		} `json:"volumeInfo"`
		SearchInfo struct {
			TextSnippet string `json:"textSnippet"`
		} `json:"searchInfo"`
	} `json:"items"`
}

// Description searches volumes by title and returns the first result's
// long-form description, falling back to its text snippet. Returns ""
// when the service has no match.
func (c *VolumesClient) Description(ctx context.Context, title string) (string, error) {
	reqURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=1", c.baseURL, titleQuery(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("volumes search: status %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Items) == 0 {
		return "", nil
	}

	first := payload.Items[0]
	if first.VolumeInfo.Description != "" {
		return first.VolumeInfo.Description, nil
	}
	return first.SearchInfo.TextSnippet, nil
}

// titleQuery builds the intitle query term: the title case-folded, with
// each word escaped and words joined by "+" (which the service reads as a
// space).
func titleQuery(title string) string {
	words := strings.Fields(strings.ToLower(title))
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return "intitle:" + strings.Join(words, "+")
}
