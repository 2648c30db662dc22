package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements CredentialStore using environment variables.
// This is primarily for CI and one-off runs.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(account *Account) error {
	return ErrStoreUnavailable
}

// Retrieve gets credentials from environment variables
func (e *EnvironmentStore) Retrieve(label string) (*Account, error) {
	bearerToken := os.Getenv("XSCRAPER_BEARER_TOKEN")
	if bearerToken == "" {
		return nil, ErrCredentialsNotFound
	}

	// Environment variables don't carry a label, so we use "default" or the provided one
	if label == "" {
		label = "default"
	}

	return &Account{
		Label:             label,
		BearerToken:       bearerToken,
		ConsumerKey:       os.Getenv("XSCRAPER_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("XSCRAPER_CONSUMER_SECRET"),
		AccessToken:       os.Getenv("XSCRAPER_ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("XSCRAPER_ACCESS_TOKEN_SECRET"),
		LastModified:      time.Now(),
	}, nil
}

// List returns a single account if environment variables are set
func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve("")
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(label string) error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials exist
func (e *EnvironmentStore) Exists(label string) bool {
	return os.Getenv("XSCRAPER_BEARER_TOKEN") != ""
}
