// Copyright 2017 The go-ethereum Authors
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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/log"
	"github.com/gofrs/flock"
	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/thor"
)

var (
	ErrNoMatch = errors.New("no key for given address or file")

	// ErrAccountAlreadyExists is returned if an account attempted to import is
	// already present in the keystore.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrKeystoreLocked is returned if another process is writing to the key
	// directory.
	ErrKeystoreLocked = errors.New("keystore directory is locked by another process")
)

// lockFile guards writes to the key directory. It is hidden so scans skip it.
const lockFile = ".lock"

// Account is a key file of the keystore directory.
type Account struct {
	Address thor.Address
	Path    string
}

// KeyStore manages a directory of encrypted key files.
// KeyStore 管理一个加密密钥文件目录。
type KeyStore struct {
	dir string
	cfg ScryptConfig
}

// NewKeyStore creates a keystore for dir. New keys are encrypted with cfg.
func NewKeyStore(dir string, cfg ScryptConfig) *KeyStore {
	dir, _ = filepath.Abs(dir)
	return &KeyStore{dir: dir, cfg: cfg}
}

// Dir returns the key directory.
func (ks *KeyStore) Dir() string { return ks.dir }

// NewAccount generates a new key and stores it in the key directory,
// encrypting it with the password.
func (ks *KeyStore) NewAccount(password string) (Account, error) {
	prv, err := crypto.GenerateKey()
	if err != nil {
		return Account{}, err
	}
	defer crypto.Zero(prv)
	return ks.Import(prv, password)
}

// Import stores the given private key into the key directory, encrypting it
// with the password.
func (ks *KeyStore) Import(prv []byte, password string) (Account, error) {
	key, err := newKey(prv)
	if err != nil {
		return Account{}, err
	}
	defer key.Zero()

	unlock, err := ks.lockDir()
	if err != nil {
		return Account{}, err
	}
	defer unlock()
	if _, err := ks.Find(key.Address); err == nil {
		return Account{}, fmt.Errorf("%w: %v", ErrAccountAlreadyExists, key.Address)
	}
	return ks.storeKey(key, password)
}

// ImportJSON stores an encrypted key file, re-encrypting it with newPassword.
func (ks *KeyStore) ImportJSON(keyJSON []byte, password, newPassword string) (Account, error) {
	key, err := DecryptKey(keyJSON, password)
	if err != nil {
		return Account{}, err
	}
	defer key.Zero()

	unlock, err := ks.lockDir()
	if err != nil {
		return Account{}, err
	}
	defer unlock()
	if _, err := ks.Find(key.Address); err == nil {
		return Account{}, fmt.Errorf("%w: %v", ErrAccountAlreadyExists, key.Address)
	}
	return ks.storeKey(key, newPassword)
}

// lockDir takes the directory lock for the duration of a write.
func (ks *KeyStore) lockDir() (func(), error) {
	if err := os.MkdirAll(ks.dir, 0700); err != nil {
		return nil, err
	}
	dirLock := flock.New(filepath.Join(ks.dir, lockFile))
	if locked, err := dirLock.TryLock(); err != nil {
		return nil, err
	} else if !locked {
		return nil, ErrKeystoreLocked
	}
	return func() { dirLock.Unlock() }, nil
}

func (ks *KeyStore) storeKey(key *Key, password string) (Account, error) {
	keyjson, err := encryptKey(key, password, ks.cfg)
	if err != nil {
		return Account{}, err
	}
	filename := filepath.Join(ks.dir, keyFileName(key.Address))
	tmpName, err := writeTemporaryKeyFile(filename, keyjson)
	if err != nil {
		return Account{}, err
	}
	// Verify that we can decrypt the file with the given password.
	verify := func() error {
		k, err := ks.readKey(key.Address, tmpName, password)
		if err != nil {
			return fmt.Errorf("the keystore file stored at %v could not be verified: %w", tmpName, err)
		}
		k.Zero()
		return nil
	}
	if err := commitKeyFile(tmpName, filename, verify); err != nil {
		return Account{}, err
	}
	log.Info("Stored key file", "address", key.Address, "path", filename)
	return Account{Address: key.Address, Path: filename}, nil
}

func (ks *KeyStore) readKey(addr thor.Address, filename, password string) (*Key, error) {
	keyjson, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	key, err := DecryptKey(keyjson, password)
	if err != nil {
		return nil, err
	}
	// Make sure we're really operating on the requested key (no swap attacks)
	if key.Address != addr {
		key.Zero()
		return nil, fmt.Errorf("key content mismatch: have account %x, want %x", key.Address, addr)
	}
	return key, nil
}

// Accounts lists the key files of the directory, sorted by path. Files that are
// not key files are skipped.
func (ks *KeyStore) Accounts() ([]Account, error) {
	files, err := os.ReadDir(ks.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var (
		accounts []Account
		seen     = mapset.NewThreadUnsafeSet[thor.Address]()
		key      struct {
			Address string `json:"address"`
		}
	)
	for _, fi := range files {
		path := filepath.Join(ks.dir, fi.Name())
		// Skip any non-key files from the folder
		if nonKeyFile(fi) {
			log.Trace("Ignoring file on account scan", "path", path)
			continue
		}
		buf, err := os.ReadFile(path)
		if err != nil {
			log.Debug("Failed to read keystore file", "path", path, "err", err)
			continue
		}
		key.Address = ""
		if err := json.Unmarshal(buf, &key); err != nil {
			log.Debug("Failed to decode keystore key", "path", path, "err", err)
			continue
		}
		addr, err := thor.ParseAddress("0x" + strings.TrimPrefix(key.Address, "0x"))
		if err != nil {
			log.Debug("Failed to decode keystore key", "path", path, "err", err)
			continue
		}
		if !seen.Add(addr) {
			log.Warn("Multiple key files for address", "address", addr, "path", path)
		}
		accounts = append(accounts, Account{Address: addr, Path: path})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Path < accounts[j].Path })
	return accounts, nil
}

// nonKeyFile ignores editor backups, hidden files and folders/symlinks.
func nonKeyFile(fi os.DirEntry) bool {
	// Skip editor backups and UNIX-style hidden files.
	if strings.HasSuffix(fi.Name(), "~") || strings.HasPrefix(fi.Name(), ".") {
		return true
	}
	// Skip misc special files, directories (yes, symlinks too).
	return !fi.Type().IsRegular()
}

// Find returns the key file of addr.
func (ks *KeyStore) Find(addr thor.Address) (Account, error) {
	accounts, err := ks.Accounts()
	if err != nil {
		return Account{}, err
	}
	for _, a := range accounts {
		if a.Address == addr {
			return a, nil
		}
	}
	return Account{}, ErrNoMatch
}

// Unlock decrypts the key of addr. The caller should Zero the key when done.
// Unlock 解密 addr 对应的私钥，调用方用完后应调用 Zero。
func (ks *KeyStore) Unlock(addr thor.Address, password string) (*Key, error) {
	a, err := ks.Find(addr)
	if err != nil {
		return nil, err
	}
	return ks.readKey(addr, a.Path, password)
}

// Update changes the password of the key of addr.
func (ks *KeyStore) Update(addr thor.Address, password, newPassword string) error {
	unlock, err := ks.lockDir()
	if err != nil {
		return err
	}
	defer unlock()

	a, err := ks.Find(addr)
	if err != nil {
		return err
	}
	key, err := ks.readKey(addr, a.Path, password)
	if err != nil {
		return err
	}
	defer key.Zero()
	keyjson, err := encryptKey(key, newPassword, ks.cfg)
	if err != nil {
		return err
	}
	tmpName, err := writeTemporaryKeyFile(a.Path, keyjson)
	if err != nil {
		return err
	}
	return commitKeyFile(tmpName, a.Path, nil)
}

// commitKeyFile moves a temporary key file into place once verify accepts it.
// The temporary file is removed when either step fails.
func commitKeyFile(tmpName, filename string, verify func() error) error {
	if verify != nil {
		if err := verify(); err != nil {
			os.Remove(tmpName)
			return err
		}
	}
	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Delete removes the key of addr if the password is correct.
func (ks *KeyStore) Delete(addr thor.Address, password string) error {
	unlock, err := ks.lockDir()
	if err != nil {
		return err
	}
	defer unlock()

	a, err := ks.Find(addr)
	if err != nil {
		return err
	}
	// Decrypting the key isn't really necessary, but we do
	// it anyway to check the password and zero out the key
	// immediately afterwards.
	key, err := ks.readKey(addr, a.Path, password)
	if key != nil {
		key.Zero()
	}
	if err != nil {
		return err
	}
	return os.Remove(a.Path)
}
