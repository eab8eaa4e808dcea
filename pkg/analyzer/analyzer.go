package analyzer

import (
	"log"
	"strings"

	"gastronomia/pkg/schema"
)

// Counter is the token-counting surface the audit needs.
type Counter interface {
	Count(text string) int
}

// ConversationText joins the prompt messages and a completion into the flat
// text the tokenizer sees during training.
func ConversationText(messages []schema.Message, completion string) string {
	parts := make([]string, 0, len(messages)+1)
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			parts = append(parts, "System: "+msg.Content)
		case "user":
			parts = append(parts, "User: "+msg.Content)
		case "assistant":
			parts = append(parts, "Assistant: "+msg.Content)
		default:
			parts = append(parts, capitalize(msg.Role)+": "+msg.Content)
		}
	}
	if completion != "" {
		parts = append(parts, "Assistant: "+completion)
	}
	return strings.Join(parts, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LongExample records a pair whose chosen or rejected side exceeds the
// token limit.
type LongExample struct {
	Index             int
	ChosenLength      int
	RejectedLength    int
	ExceedsByChosen   int
	ExceedsByRejected int
}

// Report summarizes a token-length audit of a dataset.
type Report struct {
	Analyzed       int
	Skipped        int
	OverLimit      []LongExample
	ChosenExceeds  int
	RejectedExceed int
	BothExceed     int

	MaxChosen, MinChosen     int
	MaxRejected, MinRejected int
	AvgChosen, AvgRejected   float64
}

// Audit measures the tokenized length of every pair's chosen and rejected
// sides against maxTokens. Pairs with both sides empty are skipped.
func Audit(pairs []schema.DPOPair, maxTokens int, counter Counter) *Report {
	report := &Report{}

	var sumChosen, sumRejected int
	for i, pair := range pairs {
		chosenText := ConversationText(pair.Messages, pair.Chosen)
		rejectedText := ConversationText(pair.Messages, pair.Rejected)

		if strings.TrimSpace(pair.Chosen) == "" && strings.TrimSpace(pair.Rejected) == "" {
			log.Printf("⚠️  Example %d has empty chosen and rejected fields", i)
			report.Skipped++
			continue
		}

		chosenTokens := counter.Count(chosenText)
		rejectedTokens := counter.Count(rejectedText)

		if report.Analyzed == 0 {
			report.MinChosen = chosenTokens
			report.MinRejected = rejectedTokens
		}
		report.Analyzed++
		sumChosen += chosenTokens
		sumRejected += rejectedTokens

		if chosenTokens > report.MaxChosen {
			report.MaxChosen = chosenTokens
		}
		if chosenTokens < report.MinChosen {
			report.MinChosen = chosenTokens
		}
		if rejectedTokens > report.MaxRejected {
			report.MaxRejected = rejectedTokens
		}
		if rejectedTokens < report.MinRejected {
			report.MinRejected = rejectedTokens
		}

		chosenOver := chosenTokens > maxTokens
		rejectedOver := rejectedTokens > maxTokens
		if chosenOver || rejectedOver {
			report.OverLimit = append(report.OverLimit, LongExample{
				Index:             i,
				ChosenLength:      chosenTokens,
				RejectedLength:    rejectedTokens,
				ExceedsByChosen:   max(0, chosenTokens-maxTokens),
				ExceedsByRejected: max(0, rejectedTokens-maxTokens),
			})
			if chosenOver {
				report.ChosenExceeds++
			}
			if rejectedOver {
				report.RejectedExceed++
			}
			if chosenOver && rejectedOver {
				report.BothExceed++
			}
		}
	}

	if report.Analyzed > 0 {
		report.AvgChosen = float64(sumChosen) / float64(report.Analyzed)
		report.AvgRejected = float64(sumRejected) / float64(report.Analyzed)
	}

	return report
}

// Print logs the audit report in the layout of the original analysis.
func (r *Report) Print(total, maxTokens int) {
	log.Printf("📊 Examples analyzed: %d", r.Analyzed)
	log.Printf("📊 Examples skipped (empty): %d", r.Skipped)

	overPct := 0.0
	if total > 0 {
		overPct = float64(len(r.OverLimit)) / float64(total) * 100
	}
	log.Printf("📊 Examples exceeding %d tokens: %d (%.2f%%)", maxTokens, len(r.OverLimit), overPct)

	if len(r.OverLimit) > 0 {
		log.Printf("   'chosen' exceeds limit: %d, 'rejected' exceeds limit: %d, both: %d",
			r.ChosenExceeds, r.RejectedExceed, r.BothExceed)
	}
	if r.Analyzed > 0 {
		log.Printf("📊 Chosen tokens: min=%d max=%d avg=%.1f", r.MinChosen, r.MaxChosen, r.AvgChosen)
		log.Printf("📊 Rejected tokens: min=%d max=%d avg=%.1f", r.MinRejected, r.MaxRejected, r.AvgRejected)
	}
}

// Filter returns the pairs whose chosen and rejected sides both fit within
// maxTokens, along with the retention rate.
func Filter(pairs []schema.DPOPair, maxTokens int, counter Counter) ([]schema.DPOPair, float64) {
	filtered := make([]schema.DPOPair, 0, len(pairs))
	for _, pair := range pairs {
		if strings.TrimSpace(pair.Chosen) == "" && strings.TrimSpace(pair.Rejected) == "" {
			continue
		}

		chosenTokens := counter.Count(ConversationText(pair.Messages, pair.Chosen))
		rejectedTokens := counter.Count(ConversationText(pair.Messages, pair.Rejected))
		if chosenTokens <= maxTokens && rejectedTokens <= maxTokens {
			filtered = append(filtered, pair)
		}
	}

	retention := 0.0
	if len(pairs) > 0 {
		retention = float64(len(filtered)) / float64(len(pairs)) * 100
	}
	return filtered, retention
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
