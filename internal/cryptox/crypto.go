// Package cryptox seals small secrets, such as a wallet private key, under a
// passphrase so they can rest on disk.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	sealedVersion = 1
	kdfArgon2id   = "argon2id"
	saltSize      = 16
)

var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keystore")

// Sealed is the on-disk form of a sealed secret.
type Sealed struct {
	Version    int    `json:"version"`
	KDF        string `json:"kdf"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// DeriveKey stretches passphrase into a 32-byte AES key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts secret with AES-GCM under a key derived from passphrase and
// returns the JSON document to store.
func Seal(secret, passphrase []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	key := DeriveKey(passphrase, salt)
	defer Wipe(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return json.MarshalIndent(Sealed{
		Version:    sealedVersion,
		KDF:        kdfArgon2id,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aesgcm.Seal(nil, nonce, secret, nil),
	}, "", "  ")
}

// Open reverses Seal. The caller should Wipe the result once done with it.
func Open(doc, passphrase []byte) ([]byte, error) {
	var s Sealed
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("keystore: %w", err)
	}
	if s.Version != sealedVersion || s.KDF != kdfArgon2id {
		return nil, fmt.Errorf("keystore: unsupported version %d (%s)", s.Version, s.KDF)
	}

	key := DeriveKey(passphrase, s.Salt)
	defer Wipe(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(s.Nonce) != aesgcm.NonceSize() {
		return nil, ErrWrongPassphrase
	}

	plaintext, err := aesgcm.Open(nil, s.Nonce, s.Ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}

// IsSealed reports whether doc looks like the output of Seal rather than a
// plain hex key.
func IsSealed(doc []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(doc), []byte("{"))
}

// Wipe zeroes b.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
