package transcript

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// likePatterns are tried in order against the watch-page markup; YouTube
// has served the like count under several keys over time.
var likePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"label":"([\d,]+) likes"`),
	regexp.MustCompile(`"likeCount":"(\d+)"`),
	regexp.MustCompile(`"likesText":"([\d,]+)"`),
	regexp.MustCompile(`"likes":(\d+)`),
	regexp.MustCompile(`like this video along with ([\d,]+)`),
}

// LikeCount scrapes the like count from a video's watch page. Embed URLs
// are converted to watch URLs first. A miss returns 0, never an error.
func (c *Client) LikeCount(ctx context.Context, youtubeURL string) int {
	watchURL := youtubeURL
	if videoID := ExtractVideoID(youtubeURL); videoID != "" {
		watchURL = fmt.Sprintf(c.WatchURL, videoID)
	}

	body, err := c.get(ctx, watchURL)
	if err != nil {
		log.Printf("⚠️  Error processing %s: %v", youtubeURL, err)
		return 0
	}

	page := string(body)
	for _, pattern := range likePatterns {
		match := pattern.FindStringSubmatch(page)
		if match == nil {
			continue
		}
		likes, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
		if err != nil {
			continue
		}
		return likes
	}

	return 0
}
