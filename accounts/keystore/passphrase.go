// Copyright 2015 The go-ethereum Authors
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

/*
Package keystore encrypts private keys with the Web3 Secret Storage v3 format and
manages a directory of encrypted key files.

The crypto is documented at https://github.com/ethereum/wiki/wiki/Web3-Secret-Storage-Definition
*/
package keystore

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/thor"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

const (
	keyHeaderKDF = "scrypt"

	// StandardScryptN is the N parameter of Scrypt encryption algorithm, using 256MB
	// memory and taking approximately 1s CPU time on a modern processor.
	StandardScryptN = 1 << 18

	// StandardScryptP is the P parameter of Scrypt encryption algorithm, using 256MB
	// memory and taking approximately 1s CPU time on a modern processor.
	StandardScryptP = 1

	// LightScryptN is the N parameter of Scrypt encryption algorithm, using 4MB
	// memory and taking approximately 100ms CPU time on a modern processor.
	LightScryptN = 1 << 12

	// LightScryptP is the P parameter of Scrypt encryption algorithm, using 4MB
	// memory and taking approximately 100ms CPU time on a modern processor.
	LightScryptP = 6

	scryptR     = 8
	scryptDKLen = 32
)

// ErrDecrypt is returned when the password does not match the key file.
var ErrDecrypt = errors.New("could not decrypt key with given password")

// ScryptConfig holds the key derivation parameters used for encryption.
// Decryption always uses the parameters stored in the key file.
//
// ScryptConfig 保存加密时使用的密钥派生参数，解密时使用密钥文件中记录的参数。
type ScryptConfig struct {
	N     int
	R     int
	P     int
	DKLen int
}

var (
	// StandardScryptConfig is the recommended configuration.
	StandardScryptConfig = ScryptConfig{N: StandardScryptN, R: scryptR, P: StandardScryptP, DKLen: scryptDKLen}
	// LightScryptConfig trades security for speed on constrained devices.
	LightScryptConfig = ScryptConfig{N: LightScryptN, R: scryptR, P: LightScryptP, DKLen: scryptDKLen}
)

func (c ScryptConfig) validate() error {
	if c.N <= 1 || c.N&(c.N-1) != 0 {
		return fmt.Errorf("scrypt N must be a power of two > 1, have %d", c.N)
	}
	if c.R <= 0 || c.P <= 0 {
		return fmt.Errorf("scrypt r and p must be positive, have r=%d p=%d", c.R, c.P)
	}
	if c.DKLen < 32 {
		return fmt.Errorf("scrypt dklen must be at least 32, have %d", c.DKLen)
	}
	return nil
}

// EncryptDataV3 encrypts the data given as 'data' with the password 'auth'.
func EncryptDataV3(data, auth []byte, cfg ScryptConfig) (CryptoJSON, error) {
	if err := cfg.validate(); err != nil {
		return CryptoJSON{}, err
	}
	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return CryptoJSON{}, fmt.Errorf("reading from crypto/rand failed: %w", err)
	}
	derivedKey, err := scrypt.Key(auth, salt, cfg.N, cfg.R, cfg.P, cfg.DKLen)
	if err != nil {
		return CryptoJSON{}, err
	}
	defer crypto.Zero(derivedKey)
	encryptKey := derivedKey[:16]

	iv := make([]byte, aes.BlockSize) // 16
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return CryptoJSON{}, fmt.Errorf("reading from crypto/rand failed: %w", err)
	}
	cipherText, err := aesCTRXOR(encryptKey, data, iv)
	if err != nil {
		return CryptoJSON{}, err
	}
	mac := thor.Keccak256(derivedKey[16:32], cipherText)

	scryptParamsJSON := make(map[string]interface{}, 5)
	scryptParamsJSON["n"] = cfg.N
	scryptParamsJSON["r"] = cfg.R
	scryptParamsJSON["p"] = cfg.P
	scryptParamsJSON["dklen"] = cfg.DKLen
	scryptParamsJSON["salt"] = hex.EncodeToString(salt)
	cipherParamsJSON := cipherparamsJSON{
		IV: hex.EncodeToString(iv),
	}

	cryptoStruct := CryptoJSON{
		Cipher:       "aes-128-ctr",
		CipherText:   hex.EncodeToString(cipherText),
		CipherParams: cipherParamsJSON,
		KDF:          keyHeaderKDF,
		KDFParams:    scryptParamsJSON,
		MAC:          hex.EncodeToString(mac[:]),
	}
	return cryptoStruct, nil
}

// EncryptKey encrypts a 32-byte private key using the specified scrypt parameters
// into a json blob that can be decrypted later on.
//
// EncryptKey 使用给定的 scrypt 参数加密私钥，生成可解密的 JSON。
func EncryptKey(prv []byte, password string, cfg ScryptConfig) ([]byte, error) {
	key, err := newKey(prv)
	if err != nil {
		return nil, err
	}
	defer key.Zero()
	return encryptKey(key, password, cfg)
}

func encryptKey(key *Key, password string, cfg ScryptConfig) ([]byte, error) {
	cryptoStruct, err := EncryptDataV3(key.PrivateKey, []byte(password), cfg)
	if err != nil {
		return nil, err
	}
	encryptedKeyJSONV3 := encryptedKeyJSONV3{
		hex.EncodeToString(key.Address[:]),
		cryptoStruct,
		key.ID.String(),
		version,
	}
	return json.Marshal(encryptedKeyJSONV3)
}

// DecryptKey decrypts a key from a json blob, returning the private key itself.
// The address stored in the file must match the decrypted key.
//
// DecryptKey 从 JSON 中解密私钥，文件中记录的地址必须与解密出的私钥一致。
func DecryptKey(keyjson []byte, password string) (*Key, error) {
	k := new(encryptedKeyJSONV3)
	if err := json.Unmarshal(keyjson, k); err != nil {
		return nil, err
	}
	if k.Version != version {
		return nil, fmt.Errorf("version not supported: %v", k.Version)
	}
	keyUUID, err := uuid.Parse(k.ID)
	if err != nil {
		return nil, err
	}
	keyBytes, err := DecryptDataV3(k.Crypto, password)
	if err != nil {
		return nil, err
	}
	addr, err := crypto.PrivateKeyToAddress(keyBytes)
	if err != nil {
		crypto.Zero(keyBytes)
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	if k.Address != "" {
		stored, err := thor.ParseAddress("0x" + strings.TrimPrefix(k.Address, "0x"))
		if err != nil || stored != addr {
			crypto.Zero(keyBytes)
			return nil, fmt.Errorf("key content mismatch: have account %x, file says %s", addr, k.Address)
		}
	}
	return &Key{ID: keyUUID, Address: addr, PrivateKey: keyBytes}, nil
}

// DecryptDataV3 decrypts the "crypto" section of a key file.
func DecryptDataV3(cryptoJson CryptoJSON, password string) ([]byte, error) {
	if cryptoJson.Cipher != "aes-128-ctr" {
		return nil, fmt.Errorf("cipher not supported: %v", cryptoJson.Cipher)
	}
	mac, err := hex.DecodeString(cryptoJson.MAC)
	if err != nil {
		return nil, err
	}

	iv, err := hex.DecodeString(cryptoJson.CipherParams.IV)
	if err != nil {
		return nil, err
	}

	cipherText, err := hex.DecodeString(cryptoJson.CipherText)
	if err != nil {
		return nil, err
	}

	derivedKey, err := getKDFKey(cryptoJson, password)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(derivedKey)
	if len(derivedKey) < 32 {
		return nil, fmt.Errorf("derived key too short: %d bytes", len(derivedKey))
	}

	calculatedMAC := thor.Keccak256(derivedKey[16:32], cipherText)
	if !bytes.Equal(calculatedMAC[:], mac) {
		return nil, ErrDecrypt
	}

	plainText, err := aesCTRXOR(derivedKey[:16], cipherText, iv)
	if err != nil {
		return nil, err
	}
	return plainText, err
}

func getKDFKey(cryptoJSON CryptoJSON, password string) ([]byte, error) {
	authArray := []byte(password)
	saltHex, ok := cryptoJSON.KDFParams["salt"].(string)
	if !ok {
		return nil, errors.New("missing kdf salt")
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, err
	}
	dkLen, err := ensureInt(cryptoJSON.KDFParams, "dklen")
	if err != nil {
		return nil, err
	}

	switch cryptoJSON.KDF {
	case keyHeaderKDF:
		var n, r, p int
		if n, err = ensureInt(cryptoJSON.KDFParams, "n"); err != nil {
			return nil, err
		}
		if r, err = ensureInt(cryptoJSON.KDFParams, "r"); err != nil {
			return nil, err
		}
		if p, err = ensureInt(cryptoJSON.KDFParams, "p"); err != nil {
			return nil, err
		}
		return scrypt.Key(authArray, salt, n, r, p, dkLen)

	case "pbkdf2":
		c, err := ensureInt(cryptoJSON.KDFParams, "c")
		if err != nil {
			return nil, err
		}
		prf, _ := cryptoJSON.KDFParams["prf"].(string)
		if prf != "hmac-sha256" {
			return nil, fmt.Errorf("unsupported PBKDF2 PRF: %s", prf)
		}
		key := pbkdf2.Key(authArray, salt, c, dkLen, sha256.New)
		return key, nil
	}
	return nil, fmt.Errorf("unsupported KDF: %s", cryptoJSON.KDF)
}

// ensureInt reads an integer KDF parameter. Numbers of a decoded key file are
// float64, those of a freshly built CryptoJSON are int.
func ensureInt(params map[string]interface{}, name string) (int, error) {
	switch x := params[name].(type) {
	case int:
		return x, nil
	case float64:
		return int(x), nil
	}
	return 0, fmt.Errorf("missing or invalid kdf param %q", name)
}
