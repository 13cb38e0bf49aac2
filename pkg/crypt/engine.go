// Package crypt implements the confidentiality engine: password-based
// symmetric protection of note content, plus one-way password digests for
// fast pre-flight verification.
//
// Content is sealed with AES-256-GCM under a key derived from the password
// via PBKDF2-SHA256. The GCM tag makes a wrong password structurally
// detectable: decryption with the wrong key fails authentication instead of
// silently returning garbage. This is best-effort at the boundary of
// malformed input, not a cryptographic proof of password correctness.
//
// The password digest is a plain unsalted SHA-256. That is a known weak
// point kept for compatibility with existing persisted collections; salting
// it would break round-trip verification of stored hashes.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/pbkdf2"

	"github.com/aretw0/quill/pkg/core"
)

// Engine errors.
var (
	// ErrEncrypt signals a failure of the underlying primitive during encryption.
	ErrEncrypt = errors.New("failed to encrypt note")

	// ErrDecrypt signals malformed or corrupted ciphertext, or a wrong
	// password detected structurally (authentication failure).
	ErrDecrypt = errors.New("failed to decrypt note")

	// ErrInvalidPassword signals a password-hash mismatch, raised before any
	// decryption is attempted when a hash is available.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrAlreadyEncrypted signals an attempt to encrypt ciphertext again.
	ErrAlreadyEncrypted = errors.New("note is already encrypted")
)

const (
	saltSize   = 16
	nonceSize  = 12
	keySize    = 32
	iterations = 120_000
)

// Engine performs encrypt/decrypt/hash/verify. It is stateless and safe for
// concurrent use; the zero value is not usable, construct with NewEngine.
type Engine struct {
	rand io.Reader
}

// NewEngine creates a new Engine backed by crypto/rand.
func NewEngine() *Engine {
	return &Engine{rand: rand.Reader}
}

// Encrypt seals plaintext with the password. The result is
// base64(salt || nonce || ciphertext). An empty password is accepted here;
// rejecting weak passwords is caller policy.
func (e *Engine) Encrypt(plaintext, password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(e.rand, salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncrypt, err)
	}

	aead, err := e.aead(password, salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncrypt, err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(e.rand, nonce); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncrypt, err)
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)

	payload := make([]byte, 0, saltSize+nonceSize+len(sealed))
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = append(payload, sealed...)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decrypt opens ciphertext produced by Encrypt. A wrong password surfaces as
// ErrDecrypt via the authentication check.
func (e *Engine) Decrypt(ciphertext, password string) (string, error) {
	payload, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: malformed ciphertext", ErrDecrypt)
	}
	if len(payload) < saltSize+nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	salt := payload[:saltSize]
	nonce := payload[saltSize : saltSize+nonceSize]
	sealed := payload[saltSize+nonceSize:]

	aead, err := e.aead(password, salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecrypt)
	}
	return string(plaintext), nil
}

// HashPassword returns the hex-encoded SHA-256 of the password. Deterministic
// and unsalted (see the package comment for why).
func (e *Engine) HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether the password matches the stored digest.
func (e *Engine) VerifyPassword(password, hash string) bool {
	computed := e.HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// EncryptNote returns a copy of the note with sealed content, the encrypted
// flag set and a password hash issued, all together. The note must not
// already be encrypted; double encryption is never done silently.
func (e *Engine) EncryptNote(n core.Note, password string) (core.Note, error) {
	if n.Encrypted {
		return core.Note{}, ErrAlreadyEncrypted
	}

	sealed, err := e.Encrypt(n.Content, password)
	if err != nil {
		return core.Note{}, err
	}

	n.Content = sealed
	n.Encrypted = true
	n.PasswordHash = e.HashPassword(password)
	return n, nil
}

// DecryptNote returns a copy of the note with plaintext content. A note that
// is not encrypted is returned unchanged. When a password hash is present it
// is verified first, so a wrong password fails fast with ErrInvalidPassword
// before the more expensive decryption runs. The Encrypted flag on the copy
// is deliberately left as-is: flipping it is a persistence policy owned by
// the caller.
func (e *Engine) DecryptNote(n core.Note, password string) (core.Note, error) {
	if !n.Encrypted {
		return n, nil
	}

	if n.PasswordHash != "" && !e.VerifyPassword(password, n.PasswordHash) {
		return core.Note{}, ErrInvalidPassword
	}

	plaintext, err := e.Decrypt(n.Content, password)
	if err != nil {
		return core.Note{}, err
	}

	n.Content = plaintext
	return n, nil
}

// GeneratePassword returns a random password of the given length drawn from
// a printable charset. Lengths below 1 default to 16.
func (e *Engine) GeneratePassword(length int) (string, error) {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"
	if length < 1 {
		length = 16
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(chars)))
	for i := range out {
		idx, err := rand.Int(e.rand, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = chars[idx.Int64()]
	}
	return string(out), nil
}

func (e *Engine) aead(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "crypt"
}

var _ core.Cipher = (*Engine)(nil)
