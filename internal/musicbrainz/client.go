// Package musicbrainz queries the MusicBrainz web service for recording
// metadata and the Cover Art Archive for release artwork.
package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cesargomez89/icho/internal/constants"
	"github.com/cesargomez89/icho/internal/domain"
)

// Client talks to the MusicBrainz recording search API. Requests are
// serialized and spaced out to stay under the service's rate limit.
type Client struct {
	httpClient  *http.Client
	lastRequest time.Time
	baseURL     string
	userAgent   string
	mu          sync.Mutex
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: constants.UserAgent,
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
	}
}

// RecordingMatch is the best search hit for an artist/title pair.
type RecordingMatch struct {
	RecordingID string
	Title       string
	Artist      string
	Album       string
	Date        string
	ReleaseID   string
	Score       int
}

// SearchRecording looks up the best recording match for an artist and title.
// A nil match with a nil error means the service answered but found nothing.
func (c *Client) SearchRecording(ctx context.Context, artist, title string) (*RecordingMatch, error) {
	if title == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`recording:%q`, title)
	if artist != "" {
		query = fmt.Sprintf(`artist:%q AND recording:%q`, artist, title)
	}
	u := fmt.Sprintf("%s/recording?query=%s&fmt=json&limit=1", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("musicbrainz request failed: %w: %w", domain.ErrRemoteUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("musicbrainz returned status %d: %w", resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Recordings) == 0 {
		return nil, nil
	}

	rec := result.Recordings[0]
	match := &RecordingMatch{
		RecordingID: rec.ID,
		Title:       rec.Title,
		Score:       rec.Score,
	}
	if len(rec.ArtistCredit) > 0 {
		match.Artist = rec.ArtistCredit[0].Artist.Name
	}
	if len(rec.Releases) > 0 {
		rel := rec.Releases[0]
		match.Album = rel.Title
		match.Date = rel.Date
		match.ReleaseID = rel.ID
	}
	return match, nil
}

func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < constants.DefaultRetryCount; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if elapsed := time.Since(c.lastRequest); elapsed < constants.MinRequestInterval {
			time.Sleep(constants.MinRequestInterval - elapsed)
		}
		c.lastRequest = time.Now()

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * constants.DefaultRetryBase)
	}
	return nil, lastErr
}

type searchResponse struct {
	Recordings []recording `json:"recordings"`
}

type recording struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Score        int            `json:"score"`
	Releases     []release      `json:"releases"`
	ArtistCredit []artistCredit `json:"artist-credit"`
}

type release struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

type artistCredit struct {
	Name   string `json:"name"`
	Artist artist `json:"artist"`
}

type artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
