package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCredentialManager(t *testing.T) {
	// Use mock manager for reliable testing
	manager, mockStore := NewMockManager()

	// Test storing credentials
	account := &Account{
		Label:        "work",
		BearerToken:  "AAAA_test_bearer_token_12345",
		ConsumerKey:  "test_consumer_key",
		LastModified: time.Now(),
	}

	err := manager.Store(account)
	if err != nil {
		t.Errorf("Failed to store account: %v", err)
	}

	// Test retrieving credentials
	retrieved, err := manager.Retrieve("work")
	if err != nil {
		t.Errorf("Failed to retrieve account: %v", err)
	}

	if retrieved.Label != account.Label {
		t.Errorf("Label mismatch: got %s, want %s", retrieved.Label, account.Label)
	}
	if retrieved.BearerToken != account.BearerToken {
		t.Errorf("BearerToken mismatch: got %s, want %s", retrieved.BearerToken, account.BearerToken)
	}
	if retrieved.ConsumerKey != account.ConsumerKey {
		t.Errorf("ConsumerKey mismatch: got %s, want %s", retrieved.ConsumerKey, account.ConsumerKey)
	}

	// Test listing accounts
	accounts, err := manager.List()
	if err != nil {
		t.Errorf("Failed to list accounts: %v", err)
	}
	if len(accounts) == 0 {
		t.Error("Expected at least one account in list")
	}

	// Test sanitization
	sanitized := SanitizeAccount(account)
	if sanitized.BearerToken == account.BearerToken {
		t.Error("BearerToken should be masked")
	}
	if sanitized.ConsumerKey == account.ConsumerKey {
		t.Error("ConsumerKey should be masked")
	}
	if sanitized.Label != account.Label {
		t.Error("Label should not be masked")
	}

	// Test deletion
	err = manager.Delete("work")
	if err != nil {
		t.Errorf("Failed to delete account: %v", err)
	}

	// Verify deletion
	_, err = manager.Retrieve("work")
	if err == nil {
		t.Error("Expected error retrieving deleted account")
	}

	// Verify mock store state
	if mockStore.Count() != 0 {
		t.Errorf("Expected 0 accounts after deletion, got %d", mockStore.Count())
	}
}

func TestManagerRequiresBearerToken(t *testing.T) {
	manager, _ := NewMockManager()

	err := manager.Store(&Account{Label: "tokenless"})
	if err == nil {
		t.Error("Expected error storing account without bearer token")
	}

	err = manager.Store(&Account{BearerToken: "AAAA_token"})
	if err == nil {
		t.Error("Expected error storing account without label")
	}
}

func TestEncryptedFileStore(t *testing.T) {
	// Create a temporary file
	tempFile := filepath.Join(os.TempDir(), "test_creds.enc")
	defer os.Remove(tempFile)

	// Set test passphrase
	os.Setenv("XSCRAPER_PASSPHRASE", "test_passphrase_123")
	defer os.Unsetenv("XSCRAPER_PASSPHRASE")

	// Create store
	store, err := NewEncryptedFileStore(tempFile)
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}

	// Test operations
	account := &Account{
		Label:       "encrypted_account",
		BearerToken: "encrypted_bearer_token",
		ConsumerKey: "encrypted_consumer_key",
	}

	// Store
	err = store.Store(account)
	if err != nil {
		t.Errorf("Failed to store in encrypted file: %v", err)
	}

	// Retrieve
	retrieved, err := store.Retrieve("encrypted_account")
	if err != nil {
		t.Errorf("Failed to retrieve from encrypted file: %v", err)
	}

	if retrieved.BearerToken != account.BearerToken {
		t.Errorf("BearerToken mismatch after encryption/decryption")
	}

	// Verify file is actually encrypted
	fileContent, err := os.ReadFile(tempFile)
	if err != nil {
		t.Fatal(err)
	}

	// File should not contain plaintext credentials
	if contains(fileContent, []byte("encrypted_bearer_token")) {
		t.Error("File contains plaintext bearer token")
	}
	if contains(fileContent, []byte("encrypted_consumer_key")) {
		t.Error("File contains plaintext consumer key")
	}
}

func TestEnvironmentStore(t *testing.T) {
	// Set environment variables
	os.Setenv("XSCRAPER_BEARER_TOKEN", "env_bearer_token")
	os.Setenv("XSCRAPER_CONSUMER_KEY", "env_consumer_key")
	defer os.Unsetenv("XSCRAPER_BEARER_TOKEN")
	defer os.Unsetenv("XSCRAPER_CONSUMER_KEY")

	store := NewEnvironmentStore()

	// Test retrieve
	account, err := store.Retrieve("")
	if err != nil {
		t.Errorf("Failed to retrieve from environment: %v", err)
	}

	if account.BearerToken != "env_bearer_token" {
		t.Errorf("BearerToken mismatch: got %s, want env_bearer_token", account.BearerToken)
	}
	if account.ConsumerKey != "env_consumer_key" {
		t.Errorf("ConsumerKey mismatch: got %s, want env_consumer_key", account.ConsumerKey)
	}
	if account.Label != "default" {
		t.Errorf("Label mismatch: got %s, want default", account.Label)
	}

	// Test that store is not supported
	err = store.Store(&Account{})
	if err != ErrStoreUnavailable {
		t.Error("Expected ErrStoreUnavailable for environment store")
	}
}

func TestEnvironmentStoreWithoutToken(t *testing.T) {
	os.Unsetenv("XSCRAPER_BEARER_TOKEN")

	store := NewEnvironmentStore()

	_, err := store.Retrieve("")
	if err != ErrCredentialsNotFound {
		t.Errorf("Expected ErrCredentialsNotFound, got %v", err)
	}
	if store.Exists("") {
		t.Error("Exists should be false without XSCRAPER_BEARER_TOKEN")
	}
}

func TestRealManagerWithEncryptedStore(t *testing.T) {
	// Create a temporary directory for testing
	tempDir, err := os.MkdirTemp("", "xscraper-test-real")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	// Set passphrase for testing
	os.Setenv("XSCRAPER_PASSPHRASE", "test_passphrase_real_manager")
	defer os.Unsetenv("XSCRAPER_PASSPHRASE")

	// Create manager with only encrypted file store (most reliable for testing)
	encryptedStore, err := NewEncryptedFileStore(filepath.Join(tempDir, "credentials.enc"))
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}

	manager := NewMockManagerWithStores(encryptedStore)

	// Test storing credentials
	account := &Account{
		Label:             "real_account",
		BearerToken:       "real_bearer_token",
		AccessToken:       "real_access_token",
		AccessTokenSecret: "real_access_secret",
		LastModified:      time.Now(),
	}

	err = manager.Store(account)
	if err != nil {
		t.Fatalf("Failed to store account: %v", err)
	}

	// Test listing accounts
	accounts, err := manager.List()
	if err != nil {
		t.Fatalf("Failed to list accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("Expected 1 account in list, got %d", len(accounts))
	}

	// Test retrieving credentials
	retrieved, err := manager.Retrieve("real_account")
	if err != nil {
		t.Fatalf("Failed to retrieve account: %v", err)
	}

	if retrieved.Label != account.Label {
		t.Errorf("Label mismatch: got %s, want %s", retrieved.Label, account.Label)
	}
	if retrieved.BearerToken != account.BearerToken {
		t.Errorf("BearerToken mismatch: got %s, want %s", retrieved.BearerToken, account.BearerToken)
	}
	if retrieved.AccessTokenSecret != account.AccessTokenSecret {
		t.Errorf("AccessTokenSecret mismatch: got %s, want %s", retrieved.AccessTokenSecret, account.AccessTokenSecret)
	}
}

func TestMockStore(t *testing.T) {
	store := NewMockStore()

	// Test empty store
	accounts, err := store.List()
	if err != nil {
		t.Errorf("Failed to list empty store: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("Expected 0 accounts, got %d", len(accounts))
	}

	// Test storing and retrieving
	account := &Account{
		Label:       "mock_account",
		BearerToken: "mock_bearer_token",
	}

	err = store.Store(account)
	if err != nil {
		t.Errorf("Failed to store account: %v", err)
	}

	// Verify count
	if store.Count() != 1 {
		t.Errorf("Expected 1 account, got %d", store.Count())
	}

	// Test exists
	if !store.Exists("mock_account") {
		t.Error("Account should exist")
	}

	// Test error injection
	store.ListError = fmt.Errorf("injected error")
	_, err = store.List()
	if err == nil || err.Error() != "injected error" {
		t.Error("Expected injected error")
	}
}

func contains(data []byte, substr []byte) bool {
	for i := 0; i <= len(data)-len(substr); i++ {
		if string(data[i:i+len(substr)]) == string(substr) {
			return true
		}
	}
	return false
}
