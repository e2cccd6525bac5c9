package ai

import "context"

// Prompt is a rendered two-message prompt: a fixed system instruction and
// a user message carrying the interpolated metrics
type Prompt struct {
	System string
	User   string
}

// Provider is the interface to the completion gateway. A single attempt:
// no retry or backoff happens at this layer or above it.
type Provider interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// ProviderFactory creates a provider from a string config map
type ProviderFactory func(config map[string]string) (Provider, error)

// ProviderRegistry stores available completion providers
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates a new provider registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register registers a provider factory
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// GetProvider gets a provider by name
func (r *ProviderRegistry) GetProvider(name string, config map[string]string) (Provider, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}

	return factory(config)
}

// ErrProviderNotFound is returned when a provider is not found
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return "AI provider not found: " + e.Name
}
