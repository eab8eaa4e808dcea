package transcript

import (
	"context"
	"log"
	"time"

	"gastronomia/pkg/schema"
)

// EnrichOptions controls which fields get filled and how calls are paced.
type EnrichOptions struct {
	// Summarize reduces each transcript to this many sentences. Zero keeps
	// the full transcript.
	SummarySentences int
	// Likes also scrapes watch-page like counts into Votos.
	Likes bool
	// Delay is the pause between videos.
	Delay time.Duration
}

// EnrichSummary reports what an enrichment pass touched.
type EnrichSummary struct {
	Processed   int
	Transcripts int
	Likes       int
}

// Enrich fills youtube_transcript (and optionally votos) for every scraped
// recipe that carries a video URL. Fetch errors land in-band in the
// transcript field, so the pass always completes.
func (c *Client) Enrich(ctx context.Context, recipes []schema.ScrapedRecipe, opts EnrichOptions) EnrichSummary {
	summary := EnrichSummary{}
	total := len(recipes)

	for i := range recipes {
		if ctx.Err() != nil {
			break
		}
		recipe := &recipes[i]
		summary.Processed++

		if recipe.YouTubeURL == "" {
			recipe.YouTubeTranscript = "No YouTube URL provided"
			continue
		}

		videoID := ExtractVideoID(recipe.YouTubeURL)
		if videoID == "" {
			recipe.YouTubeTranscript = "Invalid YouTube URL format"
			continue
		}

		log.Printf("Processing video: %s - %s", recipe.Title, videoID)
		text := c.Fetch(ctx, videoID)
		if opts.SummarySentences > 0 {
			text = Summarize(text, opts.SummarySentences)
		}
		recipe.YouTubeTranscript = text
		summary.Transcripts++

		if opts.Likes {
			likes := c.LikeCount(ctx, recipe.YouTubeURL)
			recipe.Votos = likes
			if likes > 0 {
				summary.Likes++
			}
			log.Printf("Updated '%s' with %d likes", recipe.Title, likes)
		}

		log.Printf("Progress: %d/%d recipes processed", i+1, total)

		if opts.Delay > 0 && i < total-1 {
			select {
			case <-time.After(opts.Delay):
			case <-ctx.Done():
			}
		}
	}

	return summary
}
