package embedding

import "context"

// Default installation contract: 384-dim vectors from an
// all-MiniLM-L6-v2-equivalent model. Vectors produced under one model
// tag are never scored against another.
const (
	DefaultModel     = "all-minilm"
	DefaultDimension = 384
)

// Result is one embedded text: a unit-normalized float32 vector plus
// the tag of the model that produced it.
type Result struct {
	Values []float32
	Model  string
}

// Provider generates text embeddings.
//
// Unavailability is a soft state, not an error: when the backing model
// cannot be loaded, Embed returns (nil, nil) and callers degrade to the
// keyword ranker. A non-nil error means the call itself failed (a
// retryable backend error).
type Provider interface {
	Embed(ctx context.Context, text string) (*Result, error)
	Model() string
	Dimension() int
}

// Disabled returns a provider that is permanently unavailable, for
// deployments that run keyword-only retrieval.
func Disabled(model string, dimension int) Provider {
	return disabledProvider{model: model, dimension: dimension}
}

type disabledProvider struct {
	model     string
	dimension int
}

func (p disabledProvider) Embed(ctx context.Context, text string) (*Result, error) {
	return nil, nil
}

func (p disabledProvider) Model() string  { return p.model }
func (p disabledProvider) Dimension() int { return p.dimension }
