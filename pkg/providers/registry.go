package providers

import (
	"fmt"
	"strings"
)

// Registry manages all available providers.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry.
func (r *Registry) Register(provider Provider) {
	r.providers[strings.ToLower(provider.Name())] = provider
}

// Get retrieves a provider by name.
func (r *Registry) Get(name string) (Provider, error) {
	provider, exists := r.providers[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("provider %s not found", name)
	}
	return provider, nil
}

// GetVision retrieves a provider by name and requires the structured
// bounding-box capability.
func (r *Registry) GetVision(name string) (VisionProvider, error) {
	provider, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	vp, ok := provider.(VisionProvider)
	if !ok {
		return nil, fmt.Errorf("provider %s does not return bounding boxes", name)
	}
	return vp, nil
}

// GetText retrieves a provider by name and requires the free-text
// capability.
func (r *Registry) GetText(name string) (TextProvider, error) {
	provider, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	tp, ok := provider.(TextProvider)
	if !ok {
		return nil, fmt.Errorf("provider %s does not return free text", name)
	}
	return tp, nil
}

// List returns all available provider names.
func (r *Registry) List() []string {
	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// HasProvider checks if a provider is registered.
func (r *Registry) HasProvider(name string) bool {
	_, exists := r.providers[strings.ToLower(name)]
	return exists
}
