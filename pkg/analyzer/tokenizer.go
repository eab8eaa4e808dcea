package analyzer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer wraps tiktoken for token counting
type Tokenizer struct {
	model *tiktoken.Tiktoken
}

// NewTokenizer creates a tokenizer using cl100k_base encoding
func NewTokenizer() (*Tokenizer, error) {
	tkm, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return &Tokenizer{model: tkm}, nil
}

// Encode converts string to token IDs
func (t *Tokenizer) Encode(text string) []int {
	if t.model == nil {
		return nil
	}
	return t.model.Encode(text, nil, nil)
}

// Count returns the number of tokens in the text
func (t *Tokenizer) Count(text string) int {
	return len(t.Encode(text))
}
