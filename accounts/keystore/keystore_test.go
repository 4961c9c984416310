// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package keystore

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/thor"
	"golang.org/x/crypto/scrypt"
)

// cheap parameters keep the tests fast
var testConfig = ScryptConfig{N: 2, R: 8, P: 1, DKLen: 32}

var testKey, _ = hex.DecodeString("7582be841ca040aa940fff6c05773129e135623e41acce3e0b8ba520dc1ae26a")

func TestEncryptDecryptKey(t *testing.T) {
	keyjson, err := EncryptKey(testKey, "foo", testConfig)
	require.NoError(t, err)

	var parsed encryptedKeyJSONV3
	require.NoError(t, json.Unmarshal(keyjson, &parsed))
	assert.Equal(t, 3, parsed.Version)
	assert.Equal(t, "d989829d88b0ed1b06edf5c50174ecfa64f14a64", parsed.Address)
	assert.Equal(t, "aes-128-ctr", parsed.Crypto.Cipher)
	assert.Equal(t, "scrypt", parsed.Crypto.KDF)

	// mac = Keccak256(dk[16:32] || ciphertext)
	salt, _ := hex.DecodeString(parsed.Crypto.KDFParams["salt"].(string))
	ct, _ := hex.DecodeString(parsed.Crypto.CipherText)
	dk, err := scrypt.Key([]byte("foo"), salt, 2, 8, 1, 32)
	require.NoError(t, err)
	mac := thor.Keccak256(dk[16:32], ct)
	assert.Equal(t, hex.EncodeToString(mac[:]), parsed.Crypto.MAC)

	key, err := DecryptKey(keyjson, "foo")
	require.NoError(t, err)
	assert.Equal(t, testKey, key.PrivateKey)
	assert.Equal(t, "0xd989829d88b0ed1b06edf5c50174ecfa64f14a64", key.Address.String())
	assert.Equal(t, parsed.ID, key.ID.String())

	key.Zero()
	assert.Equal(t, make([]byte, 32), key.PrivateKey)

	_, err = DecryptKey(keyjson, "bar")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDecryptKeyAddressMismatch(t *testing.T) {
	keyjson, err := EncryptKey(testKey, "foo", testConfig)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(keyjson, &m))
	m["address"] = strings.Repeat("00", 20)
	tampered, err := json.Marshal(m)
	require.NoError(t, err)

	_, err = DecryptKey(tampered, "foo")
	assert.ErrorContains(t, err, "mismatch")
}

func TestEncryptKeyInvalid(t *testing.T) {
	_, err := EncryptKey(make([]byte, 32), "foo", testConfig)
	assert.ErrorIs(t, err, crypto.ErrInvalidPrivateKey)

	_, err = EncryptKey(testKey, "foo", ScryptConfig{N: 3, R: 8, P: 1, DKLen: 32})
	assert.Error(t, err)
	_, err = EncryptKey(testKey, "foo", ScryptConfig{N: 2, R: 8, P: 1, DKLen: 16})
	assert.Error(t, err)
}

func TestDefaultConfigs(t *testing.T) {
	assert.NoError(t, StandardScryptConfig.validate())
	assert.NoError(t, LightScryptConfig.validate())
	assert.Equal(t, 1<<18, StandardScryptConfig.N)
	assert.Equal(t, 1<<12, LightScryptConfig.N)
}

func TestKeyStore(t *testing.T) {
	dir := t.TempDir()
	ks := NewKeyStore(dir, testConfig)

	accounts, err := ks.Accounts()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	a, err := ks.NewAccount("foo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(a.Path), "UTC--"))
	assert.True(t, strings.HasSuffix(a.Path, hex.EncodeToString(a.Address[:])))
	if runtime.GOOS != "windows" {
		fi, err := os.Stat(a.Path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())
	}

	imported, err := ks.Import(testKey, "bar")
	require.NoError(t, err)
	_, err = ks.Import(testKey, "bar")
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)

	// junk is skipped
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("{}"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0600))

	accounts, err = ks.Accounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	found, err := ks.Find(imported.Address)
	require.NoError(t, err)
	assert.Equal(t, imported.Path, found.Path)
	_, err = ks.Find(thor.Address{})
	assert.ErrorIs(t, err, ErrNoMatch)

	key, err := ks.Unlock(imported.Address, "bar")
	require.NoError(t, err)
	assert.Equal(t, testKey, key.PrivateKey)
	_, err = ks.Unlock(imported.Address, "foo")
	assert.ErrorIs(t, err, ErrDecrypt)

	require.NoError(t, ks.Update(imported.Address, "bar", "baz"))
	_, err = ks.Unlock(imported.Address, "baz")
	require.NoError(t, err)

	assert.ErrorIs(t, ks.Delete(a.Address, "wrong"), ErrDecrypt)
	require.NoError(t, ks.Delete(a.Address, "foo"))
	accounts, err = ks.Accounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestKeyStoreImportJSON(t *testing.T) {
	keyjson, err := EncryptKey(testKey, "foo", testConfig)
	require.NoError(t, err)

	ks := NewKeyStore(t.TempDir(), testConfig)
	a, err := ks.ImportJSON(keyjson, "foo", "bar")
	require.NoError(t, err)
	assert.Equal(t, "0xd989829d88b0ed1b06edf5c50174ecfa64f14a64", a.Address.String())

	_, err = ks.Unlock(a.Address, "bar")
	require.NoError(t, err)
	_, err = ks.ImportJSON(keyjson, "foo", "bar")
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestKeyStoreMissingDir(t *testing.T) {
	ks := NewKeyStore(filepath.Join(t.TempDir(), "missing"), testConfig)
	accounts, err := ks.Accounts()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestKeyStoreLocked(t *testing.T) {
	dir := t.TempDir()
	ks := NewKeyStore(dir, testConfig)

	other := flock.New(filepath.Join(dir, lockFile))
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	_, err = ks.Import(testKey, "foo")
	assert.ErrorIs(t, err, ErrKeystoreLocked)

	require.NoError(t, other.Unlock())
	a, err := ks.Import(testKey, "foo")
	require.NoError(t, err)

	// the lock file itself is never listed
	accounts, err := ks.Accounts()
	require.NoError(t, err)
	assert.Equal(t, []Account{a}, accounts)
}

func TestKeyStoreDuplicateFiles(t *testing.T) {
	dir := t.TempDir()
	ks := NewKeyStore(dir, testConfig)
	a, err := ks.Import(testKey, "foo")
	require.NoError(t, err)

	keyjson, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	copyPath := filepath.Join(dir, "zz-copy.json")
	require.NoError(t, os.WriteFile(copyPath, keyjson, 0600))

	accounts, err := ks.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, accounts[0].Address, accounts[1].Address)

	found, err := ks.Find(a.Address)
	require.NoError(t, err)
	assert.Equal(t, a.Path, found.Path, "the first file in path order wins")
}

func TestCommitKeyFileCleansUp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "UTC--key")

	tmpName, err := writeTemporaryKeyFile(target, []byte("{}"))
	require.NoError(t, err)
	err = commitKeyFile(tmpName, target, func() error { return ErrDecrypt })
	assert.ErrorIs(t, err, ErrDecrypt)
	assert.NoFileExists(t, tmpName)
	assert.NoFileExists(t, target)

	// renaming onto a non-empty directory fails
	require.NoError(t, os.MkdirAll(filepath.Join(target, "sub"), 0700))
	tmpName, err = writeTemporaryKeyFile(target, []byte("{}"))
	require.NoError(t, err)
	assert.Error(t, commitKeyFile(tmpName, target, nil))
	assert.NoFileExists(t, tmpName)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "UTC--key", entries[0].Name())
}
