// Package wallet signs and verifies EIP-191 personal messages with
// secp256k1 keys, the proof of address ownership used at sign-in.
package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
)

// Sign returns the 0x-prefixed personal_sign signature of message, with the
// recovery id in the 27/28 form wallets produce.
func Sign(message string, key *ecdsa.PrivateKey) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// Recover returns the address that produced signature over message.
// Both 0/1 and 27/28 recovery ids are accepted.
func Recover(message, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, sc.ErrInvalidSignature
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, sc.ErrInvalidSignature
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Verify reports ErrInvalidSignature unless signature over message was
// produced by address.
func Verify(address common.Address, message, signature string) error {
	signer, err := Recover(message, signature)
	if err != nil {
		return err
	}
	if signer != address {
		return sc.ErrInvalidSignature
	}
	return nil
}

// ParseKey decodes a hex private key, with or without the 0x prefix.
func ParseKey(s string) (*ecdsa.PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	key, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// LoadKey reads a hex private key from path.
func LoadKey(path string) (*ecdsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseKey(string(b))
}

func Address(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}

// ParseAddress accepts a hex address and rejects anything else, including
// the zero address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, sc.ErrInvalidAddress
	}
	a := common.HexToAddress(s)
	if a == (common.Address{}) {
		return common.Address{}, sc.ErrInvalidAddress
	}
	return a, nil
}

// GenerateKey creates a new secp256k1 key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return crypto.GenerateKey()
}

// EncodeKey is the inverse of ParseKey, without the 0x prefix.
func EncodeKey(key *ecdsa.PrivateKey) string {
	return hexutil.Encode(crypto.FromECDSA(key))[2:]
}
