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
	"strings"

	"github.com/zalando/go-keyring"
)

// DefaultService is the keychain service name for yourang entries.
const DefaultService = "yourang"

// KeychainBackend provides secure storage using the system keychain.
type KeychainBackend struct {
	service   string
	available bool
}

// NewKeychainBackend creates a keychain backend for service, probing
// whether the keyring can be reached. An empty service means DefaultService.
func NewKeychainBackend(service string) *KeychainBackend {
	if service == "" {
		service = DefaultService
	}
	backend := &KeychainBackend{
		service:   service,
		available: true,
	}

	// A lookup error other than NotFound means the keyring is locked or absent.
	_, err := keyring.Get(service, "__yourang_availability_test__")
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		backend.available = false
	}

	return backend
}

// Name returns the backend identifier.
func (k *KeychainBackend) Name() string {
	return "keychain"
}

// Get retrieves a secret from the system keychain.
func (k *KeychainBackend) Get(ctx context.Context, key string) (string, error) {
	if !k.available {
		return "", fmt.Errorf("%w: keychain service unavailable", ErrBackendUnavailable)
	}

	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
		}
		if isKeychainUnavailableError(err) {
			return "", fmt.Errorf("%w: %s", ErrBackendUnavailable, err.Error())
		}
		return "", fmt.Errorf("keychain error: %w", err)
	}

	return value, nil
}

// Set stores a secret in the system keychain, replacing any previous value.
func (k *KeychainBackend) Set(ctx context.Context, key string, value string) error {
	if !k.available {
		return fmt.Errorf("%w: keychain service unavailable", ErrBackendUnavailable)
	}

	if err := keyring.Set(k.service, key, value); err != nil {
		if isKeychainUnavailableError(err) {
			return fmt.Errorf("%w: %s", ErrBackendUnavailable, err.Error())
		}
		return fmt.Errorf("keychain error: %w", err)
	}

	return nil
}

// Delete removes a secret from the system keychain.
func (k *KeychainBackend) Delete(ctx context.Context, key string) error {
	if !k.available {
		return fmt.Errorf("%w: keychain service unavailable", ErrBackendUnavailable)
	}

	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrSecretNotFound, key)
		}
		if isKeychainUnavailableError(err) {
			return fmt.Errorf("%w: %s", ErrBackendUnavailable, err.Error())
		}
		return fmt.Errorf("keychain error: %w", err)
	}

	return nil
}

// Available returns true if the keychain service is accessible.
func (k *KeychainBackend) Available() bool {
	return k.available
}

// isKeychainUnavailableError checks if an error indicates the keychain is locked or inaccessible.
func isKeychainUnavailableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	unavailableIndicators := []string{
		"locked",
		"cannot access",
		"permission denied",
		"failed to unlock",
		"user interaction required",
		"secret service",
		"dbus",
		"user canceled",
	}

	for _, indicator := range unavailableIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}
