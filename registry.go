package statsd

import "sync"

// Registry holds named client instances, lazily created on first
// lookup. Access is serialized: concurrent first lookups of the same
// name yield a single instance.
type Registry struct {
	mu        sync.Mutex
	instances map[string]*Client
}

// NewRegistry builds an empty registry
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]*Client)}
}

// Get returns the named instance, creating it with the default
// configuration when missing
func (r *Registry) Get(name string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.instances[name]; ok {
		return client
	}

	// defaults always validate
	client, _ := newClient(name, NewConfig())
	r.instances[name] = client

	return client
}

// Configure installs a new instance under the given name. On a
// validation failure the previously installed instance (if any) stays
// untouched.
func (r *Registry) Configure(name string, conf Config) (*Client, error) {
	client, err := newClient(name, conf)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.instances[name] = client

	return client, nil
}

// Names returns the names of all instantiated clients
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}

	return names
}
