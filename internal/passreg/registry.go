// Package passreg maintains the registry of passes that
// transform.apply_registered_pass operations can name. Registration carries a
// semantic version so tooling can select passes by constraint.
package passreg

import (
	"sort"
	"sync"

	semver "github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
)

// PassInfo describes one registered pass.
type PassInfo struct {
	Name    string
	Summary string
	Version *semver.Version
}

// Registry maps pass names to their registrations. The zero value is not
// usable; use NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	passes map[string]PassInfo
	log    logr.Logger
}

// Option configures a registry.
type Option func(*Registry)

// WithLogger routes registration debug logging to the given logger.
func WithLogger(log logr.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		passes: make(map[string]PassInfo),
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register records a pass under its name. The version must parse as semver;
// duplicate names are rejected.
func (r *Registry) Register(name, summary, version string) error {
	if name == "" {
		return errors.New("pass name must not be empty")
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(err, "pass %q: invalid version %q", name, version)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.passes[name]; exists {
		return errors.Newf("pass %q already registered", name)
	}
	r.passes[name] = PassInfo{Name: name, Summary: summary, Version: v}
	r.log.V(1).Info("registered pass", "name", name, "version", v.String())
	return nil
}

// Lookup returns the registration for a pass name.
func (r *Registry) Lookup(name string) (PassInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.passes[name]
	return info, ok
}

// Names returns the registered pass names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.passes))
	for name := range r.passes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Satisfying returns the passes whose version satisfies the given semver
// constraint expression (e.g. ">= 1.0.0, < 2.0.0"), sorted by name.
func (r *Registry) Satisfying(constraint string) ([]PassInfo, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid constraint %q", constraint)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []PassInfo
	for _, info := range r.passes {
		if c.Check(info.Version) {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
