package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
)

// CoverArtClient fetches release artwork from the Cover Art Archive.
type CoverArtClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewCoverArtClient(baseURL string) *CoverArtClient {
	return &CoverArtClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: constants.UserAgent,
		httpClient: &http.Client{
			Timeout: constants.CoverArtHTTPTimeout,
		},
	}
}

// FrontCover fetches the front cover image for a release. The sized
// thumbnail endpoint is tried first; when absent, the release's image index
// is consulted for a front image. A release with no artwork returns
// (nil, "", nil).
func (c *CoverArtClient) FrontCover(ctx context.Context, releaseID string) ([]byte, string, error) {
	if releaseID == "" {
		return nil, "", nil
	}

	u := fmt.Sprintf("%s/release/%s/front-%d", c.baseURL, releaseID, constants.CoverArtPreferredSize)
	data, err := c.fetchImage(ctx, u)
	if err == nil && len(data) > 0 {
		return data, http.DetectContentType(data), nil
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	imageURL, err := c.lookupFrontURL(ctx, releaseID)
	if err != nil || imageURL == "" {
		return nil, "", err
	}

	data, err = c.fetchImage(ctx, imageURL)
	if err != nil {
		return nil, "", err
	}
	return data, http.DetectContentType(data), nil
}

// lookupFrontURL reads the release's image index and returns the URL of its
// front image, if any.
func (c *CoverArtClient) lookupFrontURL(ctx context.Context, releaseID string) (string, error) {
	u := fmt.Sprintf("%s/release/%s", c.baseURL, releaseID)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cover art request failed: %w: %w", domain.ErrRemoteUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cover art archive returned status %d: %w", resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	var index struct {
		Images []struct {
			Front bool   `json:"front"`
			Image string `json:"image"`
		} `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return "", fmt.Errorf("failed to decode cover index: %w", err)
	}

	for _, img := range index.Images {
		if img.Front {
			return img.Image, nil
		}
	}
	return "", nil
}

func (c *CoverArtClient) fetchImage(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cover art request failed: %w: %w", domain.ErrRemoteUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no cover image: %w", domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cover art archive returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
