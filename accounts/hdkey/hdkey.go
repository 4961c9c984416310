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

// Package hdkey derives VeChain accounts from BIP-39 mnemonics along BIP-32 paths.
package hdkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/thor"
)

var (
	// ErrInvalidMnemonic is returned for phrases with unknown words or a bad checksum.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrNotPrivate is returned when a private key is requested from a public-only key.
	ErrNotPrivate = errors.New("extended key is public only")
)

// Key is a BIP-32 extended key.
// Key 是 BIP-32 扩展密钥。
type Key struct {
	key *hdkeychain.ExtendedKey
}

// NewMnemonic generates a mnemonic with bits of entropy: 128, 160, 192, 224 or 256.
func NewMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", err
	}
	defer crypto.Zero(entropy)
	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic reports whether words form a valid mnemonic.
func ValidateMnemonic(words string) bool {
	return bip39.IsMnemonicValid(normalize(words))
}

func normalize(words string) string {
	return strings.Join(strings.Fields(words), " ")
}

// FromMnemonic derives the key at the VeChain root path m/44'/818'/0'/0 from a
// mnemonic and an optional passphrase. Child(i) of the result is account i.
//
// FromMnemonic 从助记词派生 VeChain 根路径 m/44'/818'/0'/0 上的密钥。
func FromMnemonic(words, passphrase string) (*Key, error) {
	master, err := MasterFromMnemonic(words, passphrase)
	if err != nil {
		return nil, err
	}
	return master.Derive(VeChainRootPath)
}

// MasterFromMnemonic creates the BIP-32 master key of a mnemonic, for callers
// deriving along paths other than the VeChain root.
func MasterFromMnemonic(words, passphrase string) (*Key, error) {
	seed, err := bip39.NewSeedWithErrorChecking(normalize(words), passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	defer crypto.Zero(seed)
	return FromSeed(seed)
}

// FromSeed creates the master key of a BIP-39 seed.
func FromSeed(seed []byte) (*Key, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	return &Key{key: master}, nil
}

// FromString parses a serialized extended key (xprv or xpub).
func FromString(s string) (*Key, error) {
	key, err := hdkeychain.NewKeyFromString(s)
	if err != nil {
		return nil, err
	}
	return &Key{key: key}, nil
}

// Derive derives the descendant of k along path. The path is applied relative to
// k, so an absolute path must be derived from a master key.
func (k *Key) Derive(path DerivationPath) (*Key, error) {
	current := k.key
	for _, index := range path {
		next, err := current.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive %v: %w", path, err)
		}
		current = next
	}
	return &Key{key: current}, nil
}

// Child derives the non-hardened child i.
func (k *Key) Child(i uint32) (*Key, error) {
	child, err := k.key.Derive(i)
	if err != nil {
		return nil, err
	}
	return &Key{key: child}, nil
}

// IsPrivate reports whether the key carries private material.
func (k *Key) IsPrivate() bool { return k.key.IsPrivate() }

// PrivateKey returns the 32-byte secp256k1 scalar.
func (k *Key) PrivateKey() ([]byte, error) {
	if !k.key.IsPrivate() {
		return nil, ErrNotPrivate
	}
	prv, err := k.key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return prv.Serialize(), nil
}

// PublicKey returns the uncompressed 65-byte public key.
func (k *Key) PublicKey() ([]byte, error) {
	pub, err := k.key.ECPubKey()
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// Address returns the account address of the key.
func (k *Key) Address() (thor.Address, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return thor.Address{}, err
	}
	return crypto.PubkeyToAddress(pub)
}

// Neuter returns the public-only version of the key.
func (k *Key) Neuter() (*Key, error) {
	pub, err := k.key.Neuter()
	if err != nil {
		return nil, err
	}
	return &Key{key: pub}, nil
}

// String returns the serialized extended key.
func (k *Key) String() string { return k.key.String() }
