package crypt_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/crypt"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	e := crypt.NewEngine()

	cases := []struct {
		name      string
		plaintext string
		password  string
	}{
		{"simple", "hello world", "pw1"},
		{"empty plaintext", "", "pw1"},
		{"empty password", "hello", ""},
		{"unicode", "héllo wörld 日本語", "pässwörd"},
		{"markup", "<b>bold</b> and <i>italic</i>", "pw"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, err := e.Encrypt(tc.plaintext, tc.password)
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}
			if ciphertext == tc.plaintext && tc.plaintext != "" {
				t.Error("ciphertext equals plaintext")
			}

			got, err := e.Decrypt(ciphertext, tc.password)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if got != tc.plaintext {
				t.Errorf("round trip mismatch: want %q, got %q", tc.plaintext, got)
			}
		})
	}
}

func TestEncrypt_NotDeterministic(t *testing.T) {
	e := crypt.NewEngine()

	// Fresh salt and nonce per call; identical inputs must not produce
	// identical ciphertext.
	a, err := e.Encrypt("same", "pw")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Encrypt("same", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two encryptions of the same input produced the same ciphertext")
	}
}

func TestDecrypt_WrongPassword(t *testing.T) {
	e := crypt.NewEngine()

	ciphertext, err := e.Encrypt("secret", "right")
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Decrypt(ciphertext, "wrong")
	if !errors.Is(err, crypt.ErrDecrypt) {
		t.Errorf("expected ErrDecrypt, got %v", err)
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	e := crypt.NewEngine()

	for name, input := range map[string]string{
		"not base64": "%%% not base64 %%%",
		"too short":  "YWJj", // "abc"
		"empty":      "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := e.Decrypt(input, "pw")
			if !errors.Is(err, crypt.ErrDecrypt) {
				t.Errorf("expected ErrDecrypt for %q, got %v", input, err)
			}
		})
	}
}

func TestHashPassword_Stability(t *testing.T) {
	e := crypt.NewEngine()

	h1 := e.HashPassword("pw1")
	h2 := e.HashPassword("pw1")
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}

	if !e.VerifyPassword("pw1", h1) {
		t.Error("correct password did not verify")
	}
	if e.VerifyPassword("pw2", h1) {
		t.Error("wrong password verified")
	}
}

func TestEncryptNote(t *testing.T) {
	e := crypt.NewEngine()
	note := core.Note{ID: "n1", Title: "A", Content: "hello"}

	locked, err := e.EncryptNote(note, "pw1")
	if err != nil {
		t.Fatalf("EncryptNote failed: %v", err)
	}

	if !locked.Encrypted {
		t.Error("encrypted flag not set")
	}
	if locked.Content == "hello" {
		t.Error("content was not encrypted")
	}
	if locked.PasswordHash == "" {
		t.Error("password hash not issued")
	}
	if locked.PasswordHash != e.HashPassword("pw1") {
		t.Error("password hash mismatch")
	}

	// The original is untouched; EncryptNote returns a copy.
	if note.Encrypted || note.Content != "hello" {
		t.Error("input note was mutated")
	}
}

func TestEncryptNote_AlreadyEncrypted(t *testing.T) {
	e := crypt.NewEngine()

	locked, err := e.EncryptNote(core.Note{ID: "n1", Content: "x"}, "pw")
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.EncryptNote(locked, "pw")
	if !errors.Is(err, crypt.ErrAlreadyEncrypted) {
		t.Errorf("expected ErrAlreadyEncrypted, got %v", err)
	}
}

func TestDecryptNote(t *testing.T) {
	e := crypt.NewEngine()

	locked, err := e.EncryptNote(core.Note{ID: "n1", Content: "hello"}, "pw1")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("correct password", func(t *testing.T) {
		plain, err := e.DecryptNote(locked, "pw1")
		if err != nil {
			t.Fatalf("DecryptNote failed: %v", err)
		}
		if plain.Content != "hello" {
			t.Errorf("want content %q, got %q", "hello", plain.Content)
		}
		// The engine never flips the flag; that is the caller's policy.
		if !plain.Encrypted {
			t.Error("engine flipped the encrypted flag")
		}
	})

	t.Run("wrong password fails fast", func(t *testing.T) {
		_, err := e.DecryptNote(locked, "wrong")
		if !errors.Is(err, crypt.ErrInvalidPassword) {
			t.Errorf("expected ErrInvalidPassword, got %v", err)
		}
	})

	t.Run("plaintext note is a no-op", func(t *testing.T) {
		n := core.Note{ID: "n2", Content: "open"}
		got, err := e.DecryptNote(n, "whatever")
		if err != nil {
			t.Fatalf("DecryptNote failed: %v", err)
		}
		if got.Content != "open" || got.Encrypted {
			t.Errorf("plaintext note changed: %+v", got)
		}
	})

	t.Run("no hash falls through to decryption", func(t *testing.T) {
		stripped := locked
		stripped.PasswordHash = ""

		_, err := e.DecryptNote(stripped, "wrong")
		if !errors.Is(err, crypt.ErrDecrypt) {
			t.Errorf("expected ErrDecrypt without a hash, got %v", err)
		}

		plain, err := e.DecryptNote(stripped, "pw1")
		if err != nil {
			t.Fatalf("DecryptNote failed: %v", err)
		}
		if plain.Content != "hello" {
			t.Errorf("want %q, got %q", "hello", plain.Content)
		}
	})
}

func TestGeneratePassword(t *testing.T) {
	e := crypt.NewEngine()

	pw, err := e.GeneratePassword(24)
	if err != nil {
		t.Fatal(err)
	}
	if len(pw) != 24 {
		t.Errorf("want length 24, got %d", len(pw))
	}

	// Zero length falls back to the default.
	pw, err = e.GeneratePassword(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pw) != 16 {
		t.Errorf("want default length 16, got %d", len(pw))
	}

	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"
	for _, r := range pw {
		if !strings.ContainsRune(chars, r) {
			t.Errorf("unexpected character %q", r)
		}
	}
}
