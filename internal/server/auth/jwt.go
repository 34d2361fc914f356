// Package auth issues and validates the access tokens handed to wallets after
// they prove control of an address.
package auth

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
)

// Claims carries the standard claims plus the authenticated wallet address.
type Claims struct {
	jwt.RegisteredClaims
	Address string `json:"addr"`
}

func GenerateToken(address common.Address, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Address: address.Hex(),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetAddressFromToken(tokenString string, secretKey []byte) (common.Address, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.Address{}, sc.ErrTokenExpired
		}
		return common.Address{}, err
	}

	if !token.Valid || !common.IsHexAddress(claims.Address) {
		return common.Address{}, sc.ErrInvalidToken
	}

	return common.HexToAddress(claims.Address), nil
}
