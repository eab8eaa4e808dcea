package transcript

import (
	"regexp"
	"sort"
	"strings"
)

// spanishStopWords is a compact Spanish stop-word list used to keep the
// frequency distribution on content words.
var spanishStopWords = map[string]bool{
	"de": true, "la": true, "que": true, "el": true, "en": true, "y": true,
	"a": true, "los": true, "del": true, "se": true, "las": true, "por": true,
	"un": true, "para": true, "con": true, "no": true, "una": true, "su": true,
	"al": true, "lo": true, "como": true, "más": true, "pero": true, "sus": true,
	"le": true, "ya": true, "o": true, "este": true, "sí": true, "porque": true,
	"esta": true, "entre": true, "cuando": true, "muy": true, "sin": true,
	"sobre": true, "también": true, "me": true, "hasta": true, "hay": true,
	"donde": true, "quien": true, "desde": true, "todo": true, "nos": true,
	"durante": true, "todos": true, "uno": true, "les": true, "ni": true,
	"contra": true, "otros": true, "ese": true, "eso": true, "ante": true,
	"ellos": true, "e": true, "esto": true, "mí": true, "antes": true,
	"algunos": true, "qué": true, "unos": true, "yo": true, "otro": true,
	"otras": true, "otra": true, "él": true, "tanto": true, "esa": true,
	"estos": true, "mucho": true, "quienes": true, "nada": true, "muchos": true,
	"cual": true, "poco": true, "ella": true, "estar": true, "estas": true,
	"algunas": true, "algo": true, "nosotros": true, "tu": true, "te": true,
	"es": true, "son": true, "está": true, "están": true, "ha": true,
	"han": true, "ser": true, "si": true, "fue": true, "era": true,
}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+`)
	wordRe          = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// splitSentences breaks text into sentences on terminal punctuation.
func splitSentences(text string) []string {
	raw := sentenceSplitRe.Split(strings.TrimSpace(text), -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Summarize produces a frequency-based extractive summary: the numSentences
// highest-scoring sentences in original order. Text that is already short
// or an in-band transcript error is returned unchanged.
func Summarize(text string, numSentences int) string {
	if text == "" || strings.HasPrefix(text, "Error") || strings.HasPrefix(text, "Transcript not available") {
		return text
	}

	sentences := splitSentences(text)
	if len(sentences) <= numSentences {
		return text
	}

	// Word frequency distribution over content words.
	freq := make(map[string]int)
	for _, word := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if !spanishStopWords[word] {
			freq[word]++
		}
	}

	// Score sentences by the frequencies of the words they contain.
	scores := make(map[int]int)
	for i, sentence := range sentences {
		for _, word := range wordRe.FindAllString(strings.ToLower(sentence), -1) {
			if n, ok := freq[word]; ok {
				scores[i] += n
			}
		}
	}

	indices := make([]int, 0, len(scores))
	for i := range scores {
		indices = append(indices, i)
	}
	sort.Slice(indices, func(a, b int) bool {
		if scores[indices[a]] != scores[indices[b]] {
			return scores[indices[a]] > scores[indices[b]]
		}
		return indices[a] < indices[b]
	})

	if len(indices) > numSentences {
		indices = indices[:numSentences]
	}
	sort.Ints(indices)

	picked := make([]string, len(indices))
	for i, idx := range indices {
		picked[i] = sentences[idx]
	}
	return strings.Join(picked, " ")
}
