package diagram

import (
	errs "github.com/doxflow/doxflow/pkg/errors"
)

// Registry maps stable caller-chosen keys to already-built elements.
//
// A later part of a build that needs an element built earlier (typically the
// confirmation of a fulfillment that a piece of evidence satisfies) looks it up
// by key instead of capturing a variable. Keys must be registered before they
// are looked up; there are no forward references.
type Registry struct {
	keys  []string
	byKey map[string]*Element
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Element)}
}

// Register binds key to e. A key can be bound once.
func (r *Registry) Register(key string, e *Element) error {
	if err := errs.ValidateKey(key); err != nil {
		return err
	}
	if e == nil {
		return errs.New(errs.ErrCodeInvalidInput, "cannot register nil element under %q", key)
	}
	if prev, ok := r.byKey[key]; ok {
		return errs.New(errs.ErrCodeDuplicateKey, "key %q already bound to %q", key, prev.Name)
	}
	r.byKey[key] = e
	r.keys = append(r.keys, key)
	return nil
}

// Lookup returns the element bound to key.
func (r *Registry) Lookup(key string) (*Element, bool) {
	e, ok := r.byKey[key]
	return e, ok
}

// Resolve is like [Registry.Lookup] but fails with an UNKNOWN_REFERENCE
// error for unbound keys.
func (r *Registry) Resolve(key string) (*Element, error) {
	e, ok := r.byKey[key]
	if !ok {
		return nil, errs.New(errs.ErrCodeUnknownReference, "no element registered under %q", key)
	}
	return e, nil
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}
