package llm

import "context"

// PurposeUntagged labels calls made without WithPurpose.
const PurposeUntagged = "untagged"

type purposeKey struct{}

// WithPurpose labels every LLM call made with ctx; the label is stored
// on the llm_request_events row and drives `sorubot llm stats`.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUntagged.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return PurposeUntagged
}
