package anchor

import (
	"strings"
	"sync"

	"github.com/anchorkit/anchorkit/failure"
)

const maxEndpointURLLen = 256

// Endpoint is a registered anchor service address for one attestor.
type Endpoint struct {
	Attestor string
	URL      string
	Active   bool
}

// EndpointRegistry maps attestors to their anchor endpoints.
type EndpointRegistry struct {
	mu         sync.RWMutex
	byAttestor map[string]Endpoint
}

// NewEndpointRegistry returns an empty registry.
func NewEndpointRegistry() *EndpointRegistry {
	return &EndpointRegistry{byAttestor: make(map[string]Endpoint)}
}

// Register adds an endpoint for attestor. Registering an attestor twice is
// an error; use Update to change an existing endpoint.
func (r *EndpointRegistry) Register(attestor, url string) error {
	if err := validateEndpointURL(url); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byAttestor[attestor]; ok {
		return failure.New(failure.KindValidation, "endpoint_register", "endpoint already exists for attestor")
	}
	r.byAttestor[attestor] = Endpoint{Attestor: attestor, URL: url, Active: true}
	return nil
}

// Update replaces the endpoint for an already registered attestor.
func (r *EndpointRegistry) Update(attestor, url string, active bool) error {
	if err := validateEndpointURL(url); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byAttestor[attestor]; !ok {
		return failure.New(failure.KindInvalidConfig, "endpoint_update", "no endpoint registered for attestor")
	}
	r.byAttestor[attestor] = Endpoint{Attestor: attestor, URL: url, Active: active}
	return nil
}

// Remove deletes the endpoint for attestor.
func (r *EndpointRegistry) Remove(attestor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byAttestor[attestor]; !ok {
		return failure.New(failure.KindInvalidConfig, "endpoint_remove", "no endpoint registered for attestor")
	}
	delete(r.byAttestor, attestor)
	return nil
}

// Get returns the endpoint for attestor. Inactive endpoints resolve with a
// temporarily-unavailable failure so callers may retry after reactivation.
func (r *EndpointRegistry) Get(attestor string) (Endpoint, error) {
	r.mu.RLock()
	ep, ok := r.byAttestor[attestor]
	r.mu.RUnlock()

	if !ok {
		return Endpoint{}, failure.New(failure.KindInvalidConfig, "endpoint_get", "no endpoint registered for attestor")
	}
	if !ep.Active {
		return Endpoint{}, failure.New(failure.KindEndpointUnavailable, "endpoint_get", "endpoint is deactivated")
	}
	return ep, nil
}

func validateEndpointURL(url string) error {
	bad := func(msg string) error {
		return failure.New(failure.KindValidation, "endpoint_validate", msg)
	}

	if url == "" {
		return bad("url is empty")
	}
	if len(url) > maxEndpointURLLen {
		return bad("url exceeds length limit")
	}

	var rest string
	switch {
	case strings.HasPrefix(url, "https://"):
		rest = url[len("https://"):]
	case strings.HasPrefix(url, "http://"):
		rest = url[len("http://"):]
	default:
		return bad("url must start with http:// or https://")
	}
	if rest == "" {
		return bad("url has no host")
	}
	return nil
}
