package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gastronomia/pkg/schema"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// instructionMarkers are the heading texts that introduce the preparation
// steps on recipe pages.
var instructionMarkers = []string{
	"preparación", "elaboración", "cómo hacer", "procedimiento",
	"vamos", "paso a paso", "instrucciones",
}

// Scraper fetches and parses recipe pages from a WordPress recipe blog.
type Scraper struct {
	HTTPClient *http.Client
	IndexURL   string
	UserAgent  string
}

// New creates a scraper for the given index page.
func New(indexURL string) *Scraper {
	return &Scraper{
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		IndexURL:  indexURL,
		UserAgent: defaultUserAgent,
	}
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.5")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	return doc, nil
}

// FetchIndex extracts all recipe links from the alphabetical index page.
// Only same-host links inside the entry content count; comment anchors are
// skipped.
func (s *Scraper) FetchIndex(ctx context.Context) ([]string, error) {
	doc, err := s.fetchDocument(ctx, s.IndexURL)
	if err != nil {
		return nil, err
	}

	indexHost := hostOf(s.IndexURL)

	var links []string
	seen := make(map[string]bool)
	doc.Find("div.entry-content a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		if strings.HasSuffix(href, "#comments") {
			return
		}
		if indexHost != "" && hostOf(href) != indexHost {
			return
		}
		if !seen[href] {
			seen[href] = true
			links = append(links, href)
		}
	})

	return links, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

// ScrapeRecipe fetches and extracts a single recipe page.
func (s *Scraper) ScrapeRecipe(ctx context.Context, recipeURL string) (*schema.ScrapedRecipe, error) {
	doc, err := s.fetchDocument(ctx, recipeURL)
	if err != nil {
		return nil, err
	}

	recipe := ExtractRecipe(doc, recipeURL)
	return recipe, nil
}

// ExtractRecipe pulls all recipe fields out of a parsed page.
func ExtractRecipe(doc *goquery.Document, recipeURL string) *schema.ScrapedRecipe {
	title := strings.TrimSpace(doc.Find("h1.entry-title").First().Text())
	if title == "" {
		title = "Unknown Title"
	}

	return &schema.ScrapedRecipe{
		Title:        title,
		URL:          recipeURL,
		ImageURL:     extractMainImage(doc, recipeURL),
		YouTubeURL:   extractYouTubeURL(doc),
		Ingredients:  extractIngredients(doc),
		Instructions: extractInstructions(doc),
		FullContent:  strings.TrimSpace(doc.Find("div.entry-content").First().Text()),
	}
}

// extractYouTubeURL finds the first YouTube embed iframe.
func extractYouTubeURL(doc *goquery.Document) string {
	var embedURL string
	doc.Find("iframe").EachWithBreak(func(_ int, iframe *goquery.Selection) bool {
		src, ok := iframe.Attr("src")
		if ok && strings.Contains(src, "youtube.com/embed") {
			embedURL = src
			return false
		}
		return true
	})
	return embedURL
}

// extractMainImage returns the featured image, the first content image, or
// the og:image meta tag, in that order.
func extractMainImage(doc *goquery.Document, pageURL string) string {
	if src, ok := doc.Find("div.featured-image img").First().Attr("src"); ok && src != "" {
		return src
	}

	if src, ok := doc.Find("div.entry-content img").First().Attr("src"); ok && src != "" {
		if !strings.HasPrefix(src, "http") {
			if base, err := url.Parse(pageURL); err == nil {
				if resolved, err := base.Parse(src); err == nil {
					return resolved.String()
				}
			}
		}
		return src
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		return content
	}

	return ""
}

var ingredientSplitRe = regexp.MustCompile(`[,\n]`)

// extractIngredients looks for a heading containing "ingrediente" followed
// by a list; failing that, it splits the paragraph after an ingredient
// mention.
func extractIngredients(doc *goquery.Document) []string {
	var ingredients []string

	doc.Find("h2, h3, h4, strong, b").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(heading.Text()), "ingrediente") {
			return true
		}
		list := heading.NextAllFiltered("ul").First()
		if list.Length() == 0 {
			// Headings nested in a paragraph: look from the parent.
			list = heading.Parent().NextAllFiltered("ul").First()
		}
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				ingredients = append(ingredients, text)
			}
		})
		return len(ingredients) == 0
	})

	if len(ingredients) > 0 {
		return ingredients
	}

	// Paragraph fallback: an "ingrediente"/"necesita" paragraph followed by
	// the actual list in the next paragraph.
	paragraphs := doc.Find("div.entry-content p")
	paragraphs.EachWithBreak(func(i int, p *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(p.Text()))
		if (strings.Contains(text, "ingrediente") || strings.Contains(text, "necesita")) && i+1 < paragraphs.Length() {
			next := strings.TrimSpace(paragraphs.Eq(i + 1).Text())
			for _, item := range ingredientSplitRe.Split(next, -1) {
				item = strings.TrimSpace(item)
				if item != "" && !strings.HasPrefix(item, "http") {
					ingredients = append(ingredients, item)
				}
			}
			return false
		}
		return true
	})

	return ingredients
}

// extractInstructions finds the preparation steps: an ordered list after a
// marker heading, the paragraphs following that heading, or the middle
// paragraphs of the post as a last resort.
func extractInstructions(doc *goquery.Document) string {
	content := doc.Find("div.entry-content").First()
	if content.Length() == 0 {
		return ""
	}

	var instructions string
	content.Find("h2, h3, h4, strong, b").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		headingText := strings.ToLower(heading.Text())
		matched := false
		for _, marker := range instructionMarkers {
			if strings.Contains(headingText, marker) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}

		if list := heading.NextAllFiltered("ol").First(); list.Length() > 0 {
			var steps []string
			list.Find("li").Each(func(_ int, li *goquery.Selection) {
				if text := strings.TrimSpace(li.Text()); text != "" {
					steps = append(steps, text)
				}
			})
			instructions = strings.Join(steps, "\n")
			return false
		}

		// No ordered list: collect the sibling paragraphs up to the next
		// heading or section.
		var steps []string
		for sib := heading.Next(); sib.Length() > 0; sib = sib.Next() {
			node := goquery.NodeName(sib)
			if node == "p" {
				if text := strings.TrimSpace(sib.Text()); text != "" {
					steps = append(steps, text)
				}
			} else if node == "h2" || node == "h3" || node == "h4" || node == "div" || node == "section" {
				break
			}
		}
		instructions = strings.Join(steps, "\n")
		return false
	})

	if instructions != "" {
		return instructions
	}

	// Middle-paragraph fallback: skip the intro and the closing remarks.
	paragraphs := content.Find("p")
	n := paragraphs.Length()
	startIdx := n / 3
	if startIdx > 2 {
		startIdx = 2
	}
	endIdx := n - 2
	if endIdx < startIdx+1 {
		endIdx = startIdx + 1
	}
	if endIdx > n {
		endIdx = n
	}

	var steps []string
	for i := startIdx; i < endIdx; i++ {
		if text := strings.TrimSpace(paragraphs.Eq(i).Text()); text != "" {
			steps = append(steps, text)
		}
	}
	return strings.Join(steps, "\n")
}
