package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client defines the interface for the Plex catalog operations consumed by
// the reconciliation engine. It is intentionally narrow: list sections, list
// the files a section knows about, and trigger a targeted folder refresh.
type Client interface {
	// Ping tests connectivity and authentication against the Plex server.
	Ping(ctx context.Context) error
	// Sections retrieves all library sections with their root locations.
	Sections(ctx context.Context) ([]Section, error)
	// SectionFiles retrieves every media file path the given section reports.
	// Show sections are traversed show -> episode -> media -> part; all other
	// section types item -> media -> part.
	SectionFiles(ctx context.Context, section Section) ([]string, error)
	// RefreshPath asks Plex to re-scan a specific folder within a section.
	RefreshPath(ctx context.Context, sectionID, folder string) error
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// HTTPClient provides access to the Plex REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new Plex API client.
//
// The base URL is normalized (trailing slash removed) and every request
// carries the X-Plex-Token header plus "Accept: application/json" so the
// server answers JSON instead of its default XML.
func NewClient(cfg Config) *HTTPClient {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &HTTPClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// Ping tests connectivity to the Plex server.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.doRequest(ctx, "/identity", nil)
	if err != nil {
		return fmt.Errorf("plex ping failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("plex ping returned status %d", resp.StatusCode)
	}

	return nil
}

// Sections retrieves all library sections from Plex.
func (c *HTTPClient) Sections(ctx context.Context) ([]Section, error) {
	resp, err := c.doRequest(ctx, "/library/sections", nil)
	if err != nil {
		return nil, fmt.Errorf("plex sections request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, "plex sections"); err != nil {
		return nil, err
	}

	var container sectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&container); err != nil {
		return nil, fmt.Errorf("failed to decode plex sections: %w", err)
	}

	sections := make([]Section, 0, len(container.MediaContainer.Directory))
	for _, dir := range container.MediaContainer.Directory {
		section := Section{
			ID:    dir.Key,
			Title: dir.Title,
			Type:  dir.Type,
		}
		for _, loc := range dir.Location {
			if loc.Path != "" {
				section.Locations = append(section.Locations, loc.Path)
			}
		}
		sections = append(sections, section)
	}

	return sections, nil
}

// SectionFiles retrieves every media file path belonging to a section.
func (c *HTTPClient) SectionFiles(ctx context.Context, section Section) ([]string, error) {
	if section.Type == TypeShow {
		return c.showFiles(ctx, section)
	}
	return c.flatFiles(ctx, section)
}

// flatFiles collects file paths for flat sections (movies, videos):
// item -> media -> part.
func (c *HTTPClient) flatFiles(ctx context.Context, section Section) ([]string, error) {
	items, err := c.sectionItems(ctx, section.ID)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, item := range items {
		files = appendPartFiles(files, item)
	}
	return files, nil
}

// showFiles collects file paths for show sections by descending
// show -> episode -> media -> part via the allLeaves endpoint.
func (c *HTTPClient) showFiles(ctx context.Context, section Section) ([]string, error) {
	shows, err := c.sectionItems(ctx, section.ID)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, show := range shows {
		episodes, err := c.metadataLeaves(ctx, show.RatingKey)
		if err != nil {
			return nil, err
		}
		for _, episode := range episodes {
			files = appendPartFiles(files, episode)
		}
	}
	return files, nil
}

// sectionItems lists the top-level items of a section
// (movies for movie sections, shows for show sections).
func (c *HTTPClient) sectionItems(ctx context.Context, sectionID string) ([]metadataItem, error) {
	endpoint := fmt.Sprintf("/library/sections/%s/all", url.PathEscape(sectionID))

	resp, err := c.doRequest(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("plex section items request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, "plex section items"); err != nil {
		return nil, err
	}

	var container metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&container); err != nil {
		return nil, fmt.Errorf("failed to decode plex section items: %w", err)
	}

	return container.MediaContainer.Metadata, nil
}

// metadataLeaves lists the leaf items (episodes) beneath a show.
func (c *HTTPClient) metadataLeaves(ctx context.Context, ratingKey string) ([]metadataItem, error) {
	endpoint := fmt.Sprintf("/library/metadata/%s/allLeaves", url.PathEscape(ratingKey))

	resp, err := c.doRequest(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("plex leaves request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, "plex leaves"); err != nil {
		return nil, err
	}

	var container metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&container); err != nil {
		return nil, fmt.Errorf("failed to decode plex leaves: %w", err)
	}

	return container.MediaContainer.Metadata, nil
}

// RefreshPath triggers a targeted library scan of a single folder.
func (c *HTTPClient) RefreshPath(ctx context.Context, sectionID, folder string) error {
	endpoint := fmt.Sprintf("/library/sections/%s/refresh", url.PathEscape(sectionID))
	query := url.Values{"path": []string{folder}}

	resp, err := c.doRequest(ctx, endpoint, query)
	if err != nil {
		return fmt.Errorf("plex refresh request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Plex answers 200 OK with an empty body on accepted refreshes
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("plex refresh returned status %d (failed to read body)", resp.StatusCode)
		}
		return fmt.Errorf("plex refresh returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// doRequest performs a GET request against the Plex API with authentication
// and JSON content negotiation.
func (c *HTTPClient) doRequest(ctx context.Context, endpoint string, query url.Values) (*http.Response, error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// checkStatus converts a non-200 response into an error carrying the body.
func checkStatus(resp *http.Response, operation string) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body)", operation, resp.StatusCode)
	}
	return fmt.Errorf("%s returned status %d: %s", operation, resp.StatusCode, string(body))
}

// appendPartFiles appends every non-empty media part file of an item.
func appendPartFiles(files []string, item metadataItem) []string {
	for _, media := range item.Media {
		for _, part := range media.Part {
			if part.File != "" {
				files = append(files, part.File)
			}
		}
	}
	return files
}
