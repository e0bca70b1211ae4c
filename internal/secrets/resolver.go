// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secrets

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// DefaultAPIKeyName is the keychain entry "yourang credentials set" writes.
const DefaultAPIKeyName = "api-key"

var (
	// legacyEnvVarRegex matches ${VAR_NAME} syntax
	legacyEnvVarRegex = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

	// schemeRegex matches scheme:reference format
	schemeRegex = regexp.MustCompile(`^([a-z][a-z0-9]*):(.+)$`)
)

// Resolver routes secret references to backends by scheme.
type Resolver struct {
	backends map[string]SecretBackend
}

// NewResolver creates a resolver over backends, keyed by their Name. A
// later backend with the same name replaces an earlier one.
func NewResolver(backends ...SecretBackend) *Resolver {
	r := &Resolver{backends: make(map[string]SecretBackend, len(backends))}
	for _, b := range backends {
		r.backends[b.Name()] = b
	}
	return r
}

// NewDefaultResolver returns a resolver over the environment and the OS
// keychain under DefaultService.
func NewDefaultResolver() *Resolver {
	return NewResolver(NewEnvBackend(), NewKeychainBackend(DefaultService))
}

// Resolve returns the secret a reference points at. "${VAR}" reads the
// environment, "<scheme>:<key>" reads a registered backend, and anything
// else is returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, reference string) (string, error) {
	scheme, key, ok := r.parseReference(reference)
	if !ok {
		return reference, nil
	}

	backend := r.backends[scheme]
	if !backend.Available() {
		return "", fmt.Errorf("%w: %s", ErrBackendUnavailable, scheme)
	}

	value, err := backend.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s:%s: %w", scheme, key, err)
	}
	return value, nil
}

// parseReference splits a reference into a registered scheme and key.
func (r *Resolver) parseReference(reference string) (scheme, key string, ok bool) {
	if m := legacyEnvVarRegex.FindStringSubmatch(reference); m != nil {
		if _, registered := r.backends["env"]; registered {
			return "env", m[1], true
		}
		return "", "", false
	}

	m := schemeRegex.FindStringSubmatch(reference)
	if m == nil {
		return "", "", false
	}
	if _, registered := r.backends[m[1]]; !registered {
		return "", "", false
	}
	return m[1], m[2], true
}

// APIKey resolves the configured API key reference. An empty reference
// falls back to the keychain entry DefaultAPIKeyName; a missing entry
// yields an empty key and no error.
func (r *Resolver) APIKey(ctx context.Context, reference string) (string, error) {
	if reference != "" {
		return r.Resolve(ctx, reference)
	}

	keychain, ok := r.backends["keychain"]
	if !ok || !keychain.Available() {
		return "", nil
	}
	value, err := keychain.Get(ctx, DefaultAPIKeyName)
	if errors.Is(err, ErrSecretNotFound) {
		return "", nil
	}
	return value, err
}

// Store writes value under key in the named backend.
func (r *Resolver) Store(ctx context.Context, backendName, key, value string) error {
	backend, err := r.writable(backendName)
	if err != nil {
		return err
	}
	if err := backend.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set secret in %s: %w", backendName, err)
	}
	return nil
}

// Remove deletes key from the named backend.
func (r *Resolver) Remove(ctx context.Context, backendName, key string) error {
	backend, err := r.writable(backendName)
	if err != nil {
		return err
	}
	if err := backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete secret from %s: %w", backendName, err)
	}
	return nil
}

func (r *Resolver) writable(name string) (SecretBackend, error) {
	backend, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("backend %q not found", name)
	}
	if !backend.Available() {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, name)
	}
	return backend, nil
}
