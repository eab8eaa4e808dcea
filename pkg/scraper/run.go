package scraper

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"gastronomia/pkg/schema"
)

// RunConfig holds the settings for a scraping run.
type RunConfig struct {
	Output       string
	CheckpointDB string
	Delay        time.Duration
	MaxRecipes   int
	StartIndex   int
	Threads      int
}

// Run orchestrates the scraping: index fetch, already-scraped filtering,
// page extraction (sequential or pooled), and incremental saves.
func (s *Scraper) Run(ctx context.Context, cfg RunConfig) error {
	log.Printf("🔍 Fetching recipe index: %s", s.IndexURL)

	allLinks, err := s.FetchIndex(ctx)
	if err != nil {
		return err
	}
	log.Printf("📋 Found %d recipe links", len(allLinks))

	if cfg.MaxRecipes > 0 && len(allLinks) > cfg.MaxRecipes {
		allLinks = allLinks[:cfg.MaxRecipes]
		log.Printf("📋 Limited to %d recipes as requested", len(allLinks))
	}

	recipes, err := schema.LoadScrapedRecipes(cfg.Output)
	if err != nil {
		return err
	}
	log.Printf("📂 Loaded %d existing recipes", len(recipes))

	var checkpointer *Checkpointer
	if cfg.CheckpointDB != "" {
		checkpointer, err = NewCheckpointer(cfg.CheckpointDB)
		if err != nil {
			log.Printf("⚠️  Failed to initialize checkpointer: %v", err)
			checkpointer = nil
		} else {
			defer checkpointer.Close()
		}
	}

	scrapedURLs := make(map[string]bool, len(recipes))
	for _, recipe := range recipes {
		scrapedURLs[recipe.URL] = true
	}

	startIndex := cfg.StartIndex
	if startIndex > len(allLinks) {
		startIndex = len(allLinks)
	}

	var toScrape []string
	for _, link := range allLinks[startIndex:] {
		if scrapedURLs[link] {
			continue
		}
		if checkpointer != nil && checkpointer.IsScraped(link) {
			continue
		}
		toScrape = append(toScrape, link)
	}
	log.Printf("📊 Remaining recipes to scrape: %d", len(toScrape))

	if len(toScrape) == 0 {
		log.Println("✅ No new recipes to scrape")
		return nil
	}

	if cfg.Threads > 1 {
		newRecipes := s.scrapePool(ctx, toScrape, checkpointer, cfg)
		recipes = append(recipes, newRecipes...)
	} else {
		for i, link := range toScrape {
			if err := ctx.Err(); err != nil {
				break
			}

			log.Printf("Scraping recipe %d/%d: %s", i+1, len(toScrape), link)
			s.sleep(ctx, cfg.Delay)

			recipe, err := s.ScrapeRecipe(ctx, link)
			if err != nil {
				log.Printf("⚠️  Error scraping recipe %s: %v", link, err)
				continue
			}

			recipes = append(recipes, *recipe)
			if checkpointer != nil {
				if err := checkpointer.MarkScraped(link); err != nil {
					log.Printf("⚠️  Failed to checkpoint %s: %v", link, err)
				}
			}

			// Incremental save every 10 recipes.
			if (i+1)%10 == 0 {
				if err := schema.SaveScrapedRecipes(cfg.Output, recipes); err != nil {
					log.Printf("⚠️  Incremental save failed: %v", err)
				} else {
					log.Printf("💾 Saved %d recipes to %s", len(recipes), cfg.Output)
				}
			}
		}
	}

	if err := schema.SaveScrapedRecipes(cfg.Output, recipes); err != nil {
		return err
	}
	log.Printf("💾 Saved %d recipes to %s", len(recipes), cfg.Output)
	log.Println("✅ Recipe scraping completed")
	return nil
}

// scrapePool fetches pages with a fixed-size worker pool and a progress bar.
func (s *Scraper) scrapePool(ctx context.Context, links []string, checkpointer *Checkpointer, cfg RunConfig) []schema.ScrapedRecipe {
	log.Printf("🧵 Scraping with %d threads", cfg.Threads)

	p := mpb.New(mpb.WithWidth(80))
	bar := p.AddBar(int64(len(links)),
		mpb.PrependDecorators(
			decor.Name("Scraping recipes: "),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO), "done!"),
		),
	)

	jobs := make(chan string, cfg.Threads*2)
	results := make(chan schema.ScrapedRecipe, cfg.Threads*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range jobs {
				if ctx.Err() != nil {
					bar.Increment()
					continue
				}
				s.sleep(ctx, cfg.Delay)

				recipe, err := s.ScrapeRecipe(ctx, link)
				if err != nil {
					log.Printf("⚠️  Error scraping recipe %s: %v", link, err)
					bar.Increment()
					continue
				}
				if checkpointer != nil {
					if err := checkpointer.MarkScraped(link); err != nil {
						log.Printf("⚠️  Failed to checkpoint %s: %v", link, err)
					}
				}
				results <- *recipe
				bar.Increment()
			}
		}()
	}

	go func() {
		for _, link := range links {
			jobs <- link
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var recipes []schema.ScrapedRecipe
	for recipe := range results {
		recipes = append(recipes, recipe)
	}

	p.Wait()
	return recipes
}

// sleep waits for the configured delay plus up to one second of jitter.
func (s *Scraper) sleep(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	jitter := time.Duration(rand.Int63n(int64(time.Second)))
	select {
	case <-time.After(delay + jitter):
	case <-ctx.Done():
	}
}
