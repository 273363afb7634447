package assetvault

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry is the immutable set of known clients. It is built once at process
// start and must not be mutated afterwards; request handlers only read it.
type Registry struct {
	byID  map[string]Client
	order []Client
}

// NewRegistry builds a Registry from configured credentials. Every entry must
// carry a name, an id, and a secret, and ids must be unique; any violation is
// fatal so the process never serves with a partially loaded registry. Each
// client's asset directory is assetsRoot/name.
func NewRegistry(assetsRoot string, creds []ClientCredential) (*Registry, error) {
	r := &Registry{
		byID:  make(map[string]Client, len(creds)),
		order: make([]Client, 0, len(creds)),
	}

	for _, c := range creds {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("load clients: %w: client with empty name", ErrInvalidConfig)
		}

		if c.ID == "" || c.Secret == "" {
			return nil, fmt.Errorf("load clients %q: %w: missing id or secret", name, ErrInvalidConfig)
		}

		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("load clients %q: %w: duplicate client id %q", name, ErrInvalidConfig, c.ID)
		}

		client := Client{
			ID:       c.ID,
			Name:     name,
			Secret:   c.Secret,
			AssetDir: filepath.Join(assetsRoot, name),
		}

		r.byID[c.ID] = client
		r.order = append(r.order, client)
	}

	return r, nil
}

// Get returns the client with the given id.
func (r *Registry) Get(id string) (Client, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// GetByName returns the client with the given name. Names are expected unique
// but not enforced; the first configured match wins.
func (r *Registry) GetByName(name string) (Client, bool) {
	for _, c := range r.order {
		if c.Name == name {
			return c, true
		}
	}
	return Client{}, false
}

// Clients returns all registered clients in configured order.
func (r *Registry) Clients() []Client {
	out := make([]Client, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered clients.
func (r *Registry) Len() int {
	return len(r.order)
}
