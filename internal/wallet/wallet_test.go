package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known development key; address 0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf.
const devKey = "0000000000000000000000000000000000000000000000000000000000000001"

func TestSignRecover(t *testing.T) {
	key, err := ParseKey("0x" + devKey)
	require.NoError(t, err)
	addr := Address(key)
	assert.Equal(t, common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"), addr)

	sig, err := Sign("sign in: nonce 42", key)
	require.NoError(t, err)

	raw, err := hexutil.Decode(sig)
	require.NoError(t, err)
	require.Len(t, raw, crypto.SignatureLength)
	assert.Contains(t, []byte{27, 28}, raw[crypto.RecoveryIDOffset])

	got, err := Recover("sign in: nonce 42", sig)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
	require.NoError(t, Verify(addr, "sign in: nonce 42", sig))

	// 0/1 recovery ids are accepted too
	raw[crypto.RecoveryIDOffset] -= 27
	got, err = Recover("sign in: nonce 42", hexutil.Encode(raw))
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestVerify_Mismatch(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := Sign("hello", key)
	require.NoError(t, err)

	require.ErrorIs(t, Verify(Address(other), "hello", sig), sc.ErrInvalidSignature)

	// a different message recovers a different signer
	require.ErrorIs(t, Verify(Address(key), "hello!", sig), sc.ErrInvalidSignature)
}

func TestRecover_Malformed(t *testing.T) {
	for _, sig := range []string{"", "0x", "nothex", "0x1234"} {
		_, err := Recover("m", sig)
		require.ErrorIs(t, err, sc.ErrInvalidSignature, sig)
	}
}

func TestLoadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte(devKey+"\n"), 0o600))

	key, err := LoadKey(path)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"), Address(key))

	_, err = LoadKey(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	_, err = ParseKey("zz")
	require.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	require.NoError(t, err)
	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", a.Hex())

	for _, s := range []string{"", "0x123", "0x0000000000000000000000000000000000000000", "hello"} {
		_, err := ParseAddress(s)
		require.ErrorIs(t, err, sc.ErrInvalidAddress, s)
	}
}

func TestGenerateEncodeKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	s := EncodeKey(key)
	assert.Len(t, s, 64)

	back, err := ParseKey(s)
	require.NoError(t, err)
	assert.Equal(t, Address(key), Address(back))

	dev, err := ParseKey(devKey)
	require.NoError(t, err)
	assert.Equal(t, devKey, EncodeKey(dev))
}
