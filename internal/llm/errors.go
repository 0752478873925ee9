package llm

import "fmt"

// BlockedError is returned when the provider refuses to answer, for example on a safety filter.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("model response blocked: %s", e.Reason)
}

// TruncatedError is returned when the reply hit the output token limit, so the
// JSON document is incomplete.
type TruncatedError struct {
	MaxTokens int32
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("model response truncated at %d tokens", e.MaxTokens)
}
