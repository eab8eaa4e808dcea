package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	embedIDPattern = regexp.MustCompile(`embed/([a-zA-Z0-9_-]+)`)
	watchIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/)([a-zA-Z0-9_-]+)`)
)

// ExtractVideoID pulls the video id out of embed, watch and short-link
// YouTube URLs. Returns "" when the URL matches no known format.
func ExtractVideoID(youtubeURL string) string {
	var pattern *regexp.Regexp
	if strings.Contains(youtubeURL, "embed") {
		pattern = embedIDPattern
	} else {
		pattern = watchIDPattern
	}

	match := pattern.FindStringSubmatch(youtubeURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// Client fetches transcripts and watch-page stats from YouTube.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// TimedTextURL is the caption endpoint; %s is the video id.
	TimedTextURL string
	// WatchURL is the watch-page endpoint; %s is the video id.
	WatchURL string
}

// NewClient creates a transcript client with the Spanish caption track.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		TimedTextURL: "https://video.google.com/timedtext?lang=es&v=%s",
		WatchURL:     "https://www.youtube.com/watch?v=%s",
	}
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Fetch returns the Spanish transcript of a video as a single string. On
// failure the error text is returned in-band as the transcript value, so
// enrichment never aborts a batch.
func (c *Client) Fetch(ctx context.Context, videoID string) string {
	body, err := c.get(ctx, fmt.Sprintf(c.TimedTextURL, videoID))
	if err != nil {
		return fmt.Sprintf("Error retrieving transcript: %s.", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return fmt.Sprintf("Error retrieving transcript: %s.", err)
	}

	if len(tt.Texts) == 0 {
		return "Transcript not available for this video."
	}

	parts := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Value))
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}
