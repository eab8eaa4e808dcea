package generator

import (
	"context"
	"fmt"
	"log"
	"time"

	"gastronomia/pkg/questions"
	"gastronomia/pkg/schema"
	"gastronomia/pkg/session"
)

// BatchOptions controls a generation run.
type BatchOptions struct {
	// Resume loads the saved progress file and asks Confirm whether to
	// restart from the saved recipe index.
	Resume bool
	// Confirm decides whether to resume from a saved checkpoint. Nil means
	// always resume.
	Confirm func(p session.Progress) bool
	// Pace is the sleep between questions to stay under API rate limits.
	Pace time.Duration
}

// Summary reports the outcome counters of a batch run.
type Summary struct {
	Successful int
	Degraded   int
	Dropped    int
	Failed     int
	Elapsed    time.Duration
	LogPath    string
}

// RunBatch iterates recipes and their bank questions, generating and
// logging one DPO pair per question. Progress is checkpointed before each
// question, so a crash re-does at most the in-flight question on resume.
// Per-question failures are counted, never escalated.
func (s *Service) RunBatch(ctx context.Context, recipes []schema.Recipe, bank *questions.Bank, cfg session.Config, opts BatchOptions) (Summary, error) {
	start := time.Now()
	summary := Summary{}

	sessionLog, err := session.OpenLog(cfg)
	if err != nil {
		return summary, fmt.Errorf("failed to open session log: %w", err)
	}
	summary.LogPath = sessionLog.Path()

	startRecipeIdx := 0
	if opts.Resume {
		if progress, ok := session.LoadProgress(cfg); ok {
			resume := opts.Confirm == nil || opts.Confirm(progress)
			if resume {
				startRecipeIdx = progress.CurrentRecipeIdx
				log.Printf("🔄 Resuming from recipe %d/%d", startRecipeIdx+1, len(recipes))
			}
		}
	}

	totalRecipes := len(recipes)
	log.Printf("🚀 Starting DPO generation for %d recipes using pre-defined questions", totalRecipes)
	log.Printf("📁 Output file: %s", sessionLog.Path())

	for recipeIdx := startRecipeIdx; recipeIdx < totalRecipes; recipeIdx++ {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, err
		}

		recipe := recipes[recipeIdx]
		recipeStart := time.Now()
		log.Printf("📖 Processing recipe %d/%d: %s", recipeIdx+1, totalRecipes, recipe.Nombre)

		qs := bank.ForRecipe(recipe)

		for questionIdx, q := range qs {
			if err := ctx.Err(); err != nil {
				summary.Elapsed = time.Since(start)
				return summary, err
			}

			progress := session.NewProgress(cfg, recipeIdx, totalRecipes, questionIdx, len(qs), recipe.Nombre)
			if err := session.SaveProgress(cfg, progress); err != nil {
				log.Printf("⚠️  Error saving progress: %v", err)
			}

			log.Printf("  ⚡ Processing Q%d/%d - %s", questionIdx+1, len(qs), q.Category)

			pair, outcome := s.GeneratePair(ctx, recipe, q.Text, q.Category, q.Type)

			switch outcome {
			case OutcomeDropped:
				summary.Dropped++
				log.Printf("  ❌ Dropped invalid pair for Q%d", questionIdx+1)
			case OutcomeOK, OutcomeDegraded:
				if err := sessionLog.Append(session.NewRecord(pair, cfg.SessionID)); err != nil {
					summary.Failed++
					log.Printf("  ❌ Failed to save Q%d: %v", questionIdx+1, err)
					break
				}
				if outcome == OutcomeDegraded {
					summary.Degraded++
				} else {
					summary.Successful++
				}
				log.Printf("✅ Saved DPO pair for recipe '%s' - Category: %s", pair.Metadata.RecipeName, pair.Metadata.Category)
			}

			if opts.Pace > 0 {
				select {
				case <-time.After(opts.Pace):
				case <-ctx.Done():
					summary.Elapsed = time.Since(start)
					return summary, ctx.Err()
				}
			}
		}

		log.Printf("  ✅ Completed recipe in %.1fs - Success: %d, Degraded: %d, Dropped: %d, Failed: %d",
			time.Since(recipeStart).Seconds(), summary.Successful, summary.Degraded, summary.Dropped, summary.Failed)
	}

	summary.Elapsed = time.Since(start)
	log.Printf("🎉 Batch processing complete!")
	log.Printf("⏱️  Total time: %.1fs", summary.Elapsed.Seconds())
	log.Printf("✅ Successful pairs: %d", summary.Successful)
	log.Printf("🟡 Degraded pairs: %d", summary.Degraded)
	log.Printf("❌ Dropped pairs: %d, write failures: %d", summary.Dropped, summary.Failed)
	log.Printf("📁 Output saved to: %s", sessionLog.Path())

	return summary, nil
}

// EstimatePairs counts the bank questions available across all recipes.
func EstimatePairs(recipes []schema.Recipe, bank *questions.Bank) int {
	total := 0
	for _, recipe := range recipes {
		total += len(bank.ForRecipe(recipe))
	}
	return total
}
