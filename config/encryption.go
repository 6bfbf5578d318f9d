package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/ssh"
)

// EncryptionManager encrypts credential data at rest with an AES-256-GCM key
// derived from the user's SSH key. Deriving from a signature means the same
// SSH key always yields the same AES key, with no extra secret to manage.
type EncryptionManager struct {
	sshKeyPath string
	aesKey     []byte
}

// NewEncryptionManager creates a new encryption manager
func NewEncryptionManager(sshKeyPath string) *EncryptionManager {
	return &EncryptionManager{sshKeyPath: sshKeyPath}
}

// Initialize loads the SSH key and derives the AES key.
func (e *EncryptionManager) Initialize() error {
	if e.sshKeyPath == "" {
		return fmt.Errorf("ssh_key security method requires ssh_key_path")
	}

	signer, err := LoadSSHPrivateKey(e.sshKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load SSH key: %w", err)
	}

	aesKey, err := DeriveAESKeyFromSSH(signer)
	if err != nil {
		return fmt.Errorf("failed to derive encryption key: %w", err)
	}
	e.aesKey = aesKey

	return nil
}

// Encrypt encrypts data with the derived key.
func (e *EncryptionManager) Encrypt(plaintext []byte) ([]byte, error) {
	if e.aesKey == nil {
		return nil, fmt.Errorf("encryption manager not initialized")
	}
	return encryptAESGCM(plaintext, e.aesKey)
}

// Decrypt decrypts data with the derived key.
func (e *EncryptionManager) Decrypt(ciphertext []byte) ([]byte, error) {
	if e.aesKey == nil {
		return nil, fmt.Errorf("encryption manager not initialized")
	}
	return decryptAESGCM(ciphertext, e.aesKey)
}

// LoadSSHPrivateKey loads an unencrypted SSH private key from disk.
// Passphrase-protected keys are rejected with a clear error.
func LoadSSHPrivateKey(path string) (ssh.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		if _, ok := err.(*ssh.PassphraseMissingError); ok {
			return nil, fmt.Errorf("SSH key %s is passphrase-protected; use an unencrypted key for credential storage", path)
		}
		return nil, fmt.Errorf("failed to parse SSH key: %w", err)
	}

	return signer, nil
}

// DeriveAESKeyFromSSH derives a 32-byte AES-256 key from an SSH key signature.
// Signing a fixed message gives a deterministic signature for key types with
// deterministic signing (ed25519, RSA PKCS#1), so the key is reproducible.
func DeriveAESKeyFromSSH(signer ssh.Signer) ([]byte, error) {
	message := []byte("traychat-encryption-key-derivation-v1")

	signature, err := signer.Sign(rand.Reader, message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	hash := sha256.Sum256(signature.Blob)
	return hash[:], nil
}

// encryptAESGCM encrypts data using AES-256-GCM
// Format: [nonce (12 bytes)][ciphertext + tag]
func encryptAESGCM(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decryptAESGCM decrypts data using AES-256-GCM
// Expects format: [nonce (12 bytes)][ciphertext + tag]
func decryptAESGCM(ciphertext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce := ciphertext[:nonceSize]
	plaintext, err := gcm.Open(nil, nonce, ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}
