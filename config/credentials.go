package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SecurityMethod defines the credential storage method
type SecurityMethod string

const (
	SecurityPlainText SecurityMethod = "plaintext"
	SecuritySSHKey    SecurityMethod = "ssh_key"
)

// CredentialStore manages encrypted or plain-text API credentials
type CredentialStore struct {
	method      SecurityMethod
	credentials map[string]string // providerID → API key
	sshKeyPath  string            // path to SSH key (ssh_key method only)
	encManager  *EncryptionManager
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(method SecurityMethod, sshKeyPath string) *CredentialStore {
	if method == "" {
		method = SecurityPlainText
	}
	return &CredentialStore{
		method:      method,
		credentials: make(map[string]string),
		sshKeyPath:  ExpandPath(sshKeyPath),
	}
}

// Load loads credentials from disk based on the configured security method
func (c *CredentialStore) Load(dataDir string) error {
	switch c.method {
	case SecurityPlainText:
		creds, err := loadPlainText(dataDir)
		if err != nil {
			return err
		}
		c.credentials = creds
		return nil

	case SecuritySSHKey:
		creds, err := c.loadSSHEncrypted(dataDir)
		if err != nil {
			return err
		}
		c.credentials = creds
		return nil

	default:
		return fmt.Errorf("unknown security method: %s", c.method)
	}
}

// Save saves credentials to disk based on the configured security method
func (c *CredentialStore) Save(dataDir string) error {
	switch c.method {
	case SecurityPlainText:
		return savePlainText(dataDir, c.credentials)

	case SecuritySSHKey:
		return c.saveSSHEncrypted(dataDir)

	default:
		return fmt.Errorf("unknown security method: %s", c.method)
	}
}

// Get retrieves a credential for a provider
func (c *CredentialStore) Get(providerID string) string {
	return c.credentials[providerID]
}

// Set stores a credential for a provider
func (c *CredentialStore) Set(providerID string, apiKey string) {
	c.credentials[providerID] = apiKey
}

// Delete removes a credential for a provider
func (c *CredentialStore) Delete(providerID string) {
	delete(c.credentials, providerID)
}

// GetMethod returns the current security method
func (c *CredentialStore) GetMethod() SecurityMethod {
	return c.method
}

// credentialsPath returns the path to the plain text credentials file
func credentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.toml")
}

// encryptedCredentialsPath returns the path to the encrypted credentials file
func encryptedCredentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.enc")
}

// ===== Plain Text Storage =====

type credentialsFile struct {
	Credentials map[string]string `toml:"credentials"`
}

// loadPlainText loads credentials from plain text TOML file
func loadPlainText(dataDir string) (map[string]string, error) {
	path := credentialsPath(dataDir)

	// If file doesn't exist, return empty map (no error)
	if !FileExists(path) {
		return make(map[string]string), nil
	}

	var cf credentialsFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if cf.Credentials == nil {
		cf.Credentials = make(map[string]string)
	}

	return cf.Credentials, nil
}

// savePlainText saves credentials to plain text TOML file with 0600 permissions
func savePlainText(dataDir string, creds map[string]string) error {
	path := credentialsPath(dataDir)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create credentials file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(credentialsFile{Credentials: creds}); err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	return nil
}

// ===== SSH Key Encrypted Storage =====

func (c *CredentialStore) ensureEncryption() error {
	if c.encManager != nil {
		return nil
	}
	c.encManager = NewEncryptionManager(c.sshKeyPath)
	if err := c.encManager.Initialize(); err != nil {
		c.encManager = nil
		return fmt.Errorf("failed to initialize encryption: %w", err)
	}
	return nil
}

// loadSSHEncrypted loads and decrypts credentials using SSH key encryption
func (c *CredentialStore) loadSSHEncrypted(dataDir string) (map[string]string, error) {
	path := encryptedCredentialsPath(dataDir)

	// If file doesn't exist, return empty map (no error)
	if !FileExists(path) {
		return make(map[string]string), nil
	}

	if err := c.ensureEncryption(); err != nil {
		return nil, err
	}

	encryptedData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted credentials: %w", err)
	}

	decryptedData, err := c.encManager.Decrypt(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var creds map[string]string
	if err := json.Unmarshal(decryptedData, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted credentials: %w", err)
	}

	return creds, nil
}

// saveSSHEncrypted encrypts and saves credentials using SSH key encryption
func (c *CredentialStore) saveSSHEncrypted(dataDir string) error {
	path := encryptedCredentialsPath(dataDir)

	if err := c.ensureEncryption(); err != nil {
		return err
	}

	data, err := json.Marshal(c.credentials)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	encrypted, err := c.encManager.Encrypt(data)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	if err := os.WriteFile(path, encrypted, 0600); err != nil {
		return fmt.Errorf("failed to write encrypted credentials: %w", err)
	}

	return nil
}
