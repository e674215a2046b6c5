package llm

import "context"

// UnconfiguredProvider fails every call with ErrNotConfigured. It lets the
// app start without a credential and surface the problem on first use.
type UnconfiguredProvider struct {
	Reason error
}

func (p UnconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, ErrNotConfigured
}

func (p UnconfiguredProvider) ModelID() string {
	return "unconfigured"
}
