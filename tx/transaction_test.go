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

package tx

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/thor-sdk-go/crypto"
	"github.com/vechain/thor-sdk-go/params"
	"github.com/vechain/thor-sdk-go/profile"
	"github.com/vechain/thor-sdk-go/thor"
)

var (
	senderKey   = mustHex("7582be841ca040aa940fff6c05773129e135623e41acce3e0b8ba520dc1ae26a")
	gasPayerKey = mustHex("321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51")

	sampleTo = thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
)

const (
	sampleUnsigned     = "f8540184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec0"
	sampleSigned       = "f8970184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec0b841f76f3c91a834165872aa9464fc55b03a13f46ea8d3b858e528fcceaf371ad6884193c3f313ff8effbb57fe4d1adc13dceb933bedbf9dbb528d2936203d5511df00"
	feeMarketUnsigned  = "51f85a0184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e2086000000606060648609184e72a0008252088083bc614ec0"
	feeMarketSigned    = "51f89d0184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e2086000000606060648609184e72a0008252088083bc614ec0b8414f010ed0687c8f48eb412786ab1c7bfb5a7839c4ef6f6e71e2202400e6839a420ce8e1fc47932f3f68d11e17d2ce55546b60fd741aaca8a3c83a0f9e216eafee00"
	feeMarketDelegated = "51f8df0184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e2086000000606060648609184e72a0008252088083bc614ec101b882b6d5e28df2e476e39e41cfcdb8c8c6d7228e70f43acfbc49bd48c7e7a80324304dd983caaffb9b33da8a78bdf5fa9e1f2fb678d952e3692d892adb0040a827690193758c4ec647f008dd4854889d884bb15727653a1b44841fb545b60bc0e1419945fdc680b4d71476d10e0dc35e26852948ced0f89ba9b16d54cd84ede75c520901"
	sampleDelegated    = "f8550184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec101"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		panic(err)
	}
	return b
}

func sampleBody() *Body {
	coef := uint8(128)
	return &Body{
		ChainTag:   1,
		BlockRef:   thor.BlockRef{0, 0, 0, 0, 0xaa, 0xbb, 0xcc, 0xdd},
		Expiration: 32,
		Clauses: []*Clause{
			NewClause(&sampleTo).WithValue(big.NewInt(10000)).WithData(mustHex("000000606060")),
			NewClause(&sampleTo).WithValue(big.NewInt(20000)).WithData(mustHex("000000606060")),
		},
		GasPriceCoef: &coef,
		Gas:          21000,
		Nonce:        12345678,
	}
}

func delegatedBody() *Body {
	b := sampleBody()
	b.Reserved = &Reserved{Features: DelegationFeature}
	return b
}

func feeMarketBody() *Body {
	b := sampleBody()
	b.GasPriceCoef = nil
	b.MaxFeePerGas = big.NewInt(10_000_000_000_000)
	b.MaxPriorityFeePerGas = big.NewInt(100)
	return b
}

func TestLegacyVector(t *testing.T) {
	trx, err := New(sampleBody())
	require.NoError(t, err)

	assert.Equal(t, LegacyTxType, trx.Type())
	assert.Equal(t, sampleUnsigned, hex.EncodeToString(trx.Encoded()))
	assert.Equal(t, "0x2a1c25ce0d66f45276a5f308b99bf410e2fc7d5b6ea37a49f2ab9f1da9446478", trx.SigningHash().String())
	assert.False(t, trx.IsSigned())
	assert.False(t, trx.IsDelegated())

	gas, err := trx.IntrinsicGas()
	require.NoError(t, err)
	assert.Equal(t, uint64(37432), gas)

	_, err = trx.Origin()
	assert.ErrorIs(t, err, ErrUnavailableTransactionField)
	_, err = trx.ID()
	assert.ErrorIs(t, err, ErrUnavailableTransactionField)
	_, err = trx.GasPayer()
	assert.ErrorIs(t, err, ErrNotDelegatedTransaction)
}

func TestSignVector(t *testing.T) {
	trx, err := New(sampleBody())
	require.NoError(t, err)
	signed, err := trx.Sign(senderKey)
	require.NoError(t, err)

	assert.True(t, signed.IsSigned())
	assert.False(t, trx.IsSigned(), "signing must not modify the receiver")
	assert.Equal(t, sampleSigned, hex.EncodeToString(signed.Encoded()))

	origin, err := signed.Origin()
	require.NoError(t, err)
	assert.Equal(t, "0xd989829d88b0ed1b06edf5c50174ecfa64f14a64", origin.String())

	id, err := signed.ID()
	require.NoError(t, err)
	assert.Equal(t, "0xda90eaea52980bc4bb8d40cb2ff84d78433b3b4a6e7d50b75736c5e3e77b71ec", id.String())

	want, err := crypto.PrivateKeyToAddress(senderKey)
	require.NoError(t, err)
	assert.Equal(t, want, origin)
}

func TestSignIsDeterministic(t *testing.T) {
	trx, err := New(sampleBody())
	require.NoError(t, err)
	a, err := trx.Sign(senderKey)
	require.NoError(t, err)
	b, err := trx.Sign(senderKey)
	require.NoError(t, err)
	assert.Equal(t, a.Signature(), b.Signature())
}

func TestDecodeRoundTrip(t *testing.T) {
	unsigned, err := Decode(mustHex(sampleUnsigned), false)
	require.NoError(t, err)
	assert.Equal(t, sampleUnsigned, hex.EncodeToString(unsigned.Encoded()))
	assert.Nil(t, unsigned.Signature())

	body := unsigned.Body()
	assert.Equal(t, byte(1), body.ChainTag)
	assert.Equal(t, thor.BlockRef{0, 0, 0, 0, 0xaa, 0xbb, 0xcc, 0xdd}, body.BlockRef)
	assert.Equal(t, uint32(32), body.Expiration)
	require.Len(t, body.Clauses, 2)
	assert.Equal(t, sampleTo, *body.Clauses[0].To)
	assert.Zero(t, body.Clauses[1].Value.Cmp(big.NewInt(20000)))
	assert.Equal(t, mustHex("000000606060"), body.Clauses[0].Data)
	coef, ok := unsigned.GasPriceCoef()
	assert.True(t, ok)
	assert.Equal(t, uint8(128), coef)
	assert.Equal(t, uint64(21000), body.Gas)
	assert.Nil(t, body.DependsOn)
	assert.Equal(t, uint64(12345678), body.Nonce)
	assert.Nil(t, body.Reserved)

	signed, err := Decode(mustHex(sampleSigned), true)
	require.NoError(t, err)
	assert.True(t, signed.IsSigned())
	assert.Equal(t, sampleSigned, hex.EncodeToString(signed.Encoded()))
	origin, err := signed.Origin()
	require.NoError(t, err)
	assert.Equal(t, "0xd989829d88b0ed1b06edf5c50174ecfa64f14a64", origin.String())
}

func TestDecodeWrongForm(t *testing.T) {
	_, err := Decode(mustHex(sampleUnsigned), true)
	assert.ErrorIs(t, err, profile.ErrInvalidEncoding)

	_, err = Decode(mustHex(sampleSigned), false)
	assert.ErrorIs(t, err, profile.ErrInvalidEncoding)

	_, err = Decode(append(mustHex(sampleUnsigned), 0x00), false)
	assert.ErrorIs(t, err, profile.ErrInvalidEncoding)

	_, err = Decode(nil, false)
	assert.ErrorIs(t, err, profile.ErrInvalidEncoding)
}

func TestDelegatedEncoding(t *testing.T) {
	trx, err := New(delegatedBody())
	require.NoError(t, err)
	assert.True(t, trx.IsDelegated())
	assert.Equal(t, sampleDelegated, hex.EncodeToString(trx.Encoded()))

	decoded, err := Decode(mustHex(sampleDelegated), false)
	require.NoError(t, err)
	assert.True(t, decoded.IsDelegated())
	assert.Equal(t, trx.SigningHash(), decoded.SigningHash())
}

func TestUntrimmedReserved(t *testing.T) {
	// reserved = [0x01, ""]
	raw := "f856" + strings.TrimSuffix(sampleDelegated[4:], "c101") + "c20180"
	_, err := Decode(mustHex(raw), false)
	assert.ErrorIs(t, err, ErrInvalidTransactionField)

	// reserved = [""]
	raw = "f855" + strings.TrimSuffix(sampleDelegated[4:], "c101") + "c180"
	_, err = Decode(mustHex(raw), false)
	assert.ErrorIs(t, err, ErrInvalidTransactionField)

	// features with a leading zero byte
	raw = "f857" + strings.TrimSuffix(sampleDelegated[4:], "c101") + "c3820001"
	_, err = Decode(mustHex(raw), false)
	assert.ErrorIs(t, err, ErrInvalidTransactionField)
}

func TestReservedNormalization(t *testing.T) {
	b := sampleBody()
	b.Reserved = &Reserved{Unused: [][]byte{{}, {}}}
	trx, err := New(b)
	require.NoError(t, err)
	assert.Equal(t, sampleUnsigned, hex.EncodeToString(trx.Encoded()), "empty reserved entries are trimmed")

	b = sampleBody()
	b.Reserved = &Reserved{Features: DelegationFeature, Unused: [][]byte{{0x01}, {}}}
	trx, err = New(b)
	require.NoError(t, err)
	decoded, err := Decode(trx.Encoded(), false)
	require.NoError(t, err)
	require.NotNil(t, decoded.Body().Reserved)
	assert.Equal(t, DelegationFeature, decoded.Features())
	assert.Equal(t, [][]byte{{0x01}}, decoded.Body().Reserved.Unused)
	assert.Equal(t, trx.Encoded(), decoded.Encoded())
}

func TestEmptyClauses(t *testing.T) {
	coef := uint8(0)
	trx, err := New(&Body{
		ChainTag:     params.MainnetChainTag,
		Expiration:   32,
		GasPriceCoef: &coef,
		Gas:          21000,
		Nonce:        1,
	})
	require.NoError(t, err)
	assert.Equal(t, LegacyTxType, trx.Type())

	gas, err := trx.IntrinsicGas()
	require.NoError(t, err)
	assert.Equal(t, params.TxGas+params.ClauseGas, gas)
}

func TestIntrinsicGas(t *testing.T) {
	tests := []struct {
		clauses []*Clause
		want    uint64
	}{
		{nil, 21000},
		{[]*Clause{NewClause(&sampleTo)}, 5000 + 16000},
		{[]*Clause{NewClause(nil)}, 5000 + 48000},
		{[]*Clause{NewClause(nil).WithData([]byte{0, 1})}, 5000 + 48000 + 4 + 68},
		{[]*Clause{NewClause(&sampleTo), NewClause(nil)}, 5000 + 16000 + 48000},
	}
	for i, tt := range tests {
		gas, err := IntrinsicGas(tt.clauses...)
		require.NoError(t, err, "case %d", i)
		assert.Equal(t, tt.want, gas, "case %d", i)
	}
}

func TestFeeFields(t *testing.T) {
	b := sampleBody()
	b.MaxFeePerGas = big.NewInt(1)
	_, err := New(b)
	assert.ErrorIs(t, err, ErrInvalidTransactionField, "mixed fee fields")

	b = sampleBody()
	b.GasPriceCoef = nil
	_, err = New(b)
	assert.ErrorIs(t, err, ErrInvalidTransactionField, "no fee fields")

	b = feeMarketBody()
	b.MaxPriorityFeePerGas = nil
	_, err = New(b)
	assert.ErrorIs(t, err, ErrInvalidTransactionField, "half fee-market fields")
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "maxPriorityFeePerGas", fe.Field)
	assert.Equal(t, "new", fe.Op)
	require.NotNil(t, fe.Body)

	b = feeMarketBody()
	b.MaxFeePerGas = big.NewInt(-1)
	_, err = New(b)
	assert.ErrorIs(t, err, ErrInvalidTransactionField, "negative fee")

	b = sampleBody()
	b.Clauses[1].Value = new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = New(b)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "clauses.#1.value", fe.Field)

	b = sampleBody()
	b.Clauses = append(b.Clauses, nil)
	_, err = New(b)
	assert.ErrorIs(t, err, ErrInvalidTransactionField)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrInvalidTransactionField)
}

func TestFeeMarket(t *testing.T) {
	trx, err := New(feeMarketBody())
	require.NoError(t, err)
	assert.Equal(t, FeeMarketTxType, trx.Type())

	enc := trx.Encoded()
	assert.Equal(t, byte(0x51), enc[0])
	assert.Equal(t, thor.Blake2b256(enc), trx.SigningHash(), "the prefix is part of the signing hash")

	signed, err := trx.Sign(senderKey)
	require.NoError(t, err)
	decoded, err := Decode(signed.Encoded(), true)
	require.NoError(t, err)
	assert.Equal(t, FeeMarketTxType, decoded.Type())
	assert.Zero(t, decoded.MaxFeePerGas().Cmp(big.NewInt(10_000_000_000_000)))
	assert.Zero(t, decoded.MaxPriorityFeePerGas().Cmp(big.NewInt(100)))
	_, ok := decoded.GasPriceCoef()
	assert.False(t, ok)
	assert.Equal(t, signed.Encoded(), decoded.Encoded())

	want, err := signed.ID()
	require.NoError(t, err)
	got, err := decoded.ID()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	legacy, err := Decode(mustHex(sampleUnsigned), false)
	require.NoError(t, err)
	assert.Equal(t, LegacyTxType, legacy.Type())
}

func TestFeeMarketVector(t *testing.T) {
	trx, err := New(feeMarketBody())
	require.NoError(t, err)
	assert.Equal(t, feeMarketUnsigned, hex.EncodeToString(trx.Encoded()))

	signed, err := trx.Sign(senderKey)
	require.NoError(t, err)
	assert.Equal(t, feeMarketSigned, hex.EncodeToString(signed.Encoded()))
	id, err := signed.ID()
	require.NoError(t, err)
	assert.Equal(t, "0x560bb1a2fa6db8c5a6b718143d5d09fc874a7da5e4a2630ba585828b494f0b03", id.String())

	decoded, err := Decode(mustHex(feeMarketSigned), true)
	require.NoError(t, err)
	assert.Equal(t, FeeMarketTxType, decoded.Type())
	origin, err := decoded.Origin()
	require.NoError(t, err)
	assert.Equal(t, "0xd989829d88b0ed1b06edf5c50174ecfa64f14a64", origin.String())
}

func TestFeeMarketDelegatedRoundTrip(t *testing.T) {
	body := feeMarketBody()
	body.Reserved = &Reserved{Features: DelegationFeature}
	trx, err := New(body)
	require.NoError(t, err)

	senderSigned, err := trx.SignAsSender(senderKey)
	require.NoError(t, err)
	origin, err := senderSigned.Origin()
	require.NoError(t, err)
	full, err := senderSigned.SignAsGasPayer(origin, gasPayerKey)
	require.NoError(t, err)
	assert.Equal(t, feeMarketDelegated, hex.EncodeToString(full.Encoded()))

	decoded, err := Decode(full.Encoded(), true)
	require.NoError(t, err)
	assert.Equal(t, FeeMarketTxType, decoded.Type())
	assert.True(t, decoded.IsDelegated())
	assert.Equal(t, full.Signature(), decoded.Signature())

	id, err := decoded.ID()
	require.NoError(t, err)
	assert.Equal(t, "0xa7462d6a5c7cbaf0c6453ec69069c5a11dd3dd236af2cfb091994fba28dea974", id.String())
	gasPayer, err := decoded.GasPayer()
	require.NoError(t, err)
	want, err := crypto.PrivateKeyToAddress(gasPayerKey)
	require.NoError(t, err)
	assert.Equal(t, want, gasPayer)

	// a sender-only signature never reaches the wire
	_, err = Decode(senderSigned.Encoded(), true)
	assert.Error(t, err)
}

func TestDelegatedSigning(t *testing.T) {
	trx, err := New(delegatedBody())
	require.NoError(t, err)

	senderSigned, err := trx.SignAsSender(senderKey)
	require.NoError(t, err)
	assert.True(t, senderSigned.IsDelegated())
	assert.False(t, senderSigned.IsSigned())
	assert.Len(t, senderSigned.Signature(), 65)
	assert.Equal(t, trx.Encoded(), senderSigned.Encoded(), "partial signatures are not encoded")

	_, err = senderSigned.GasPayer()
	assert.ErrorIs(t, err, ErrUnavailableTransactionField)
	_, err = senderSigned.ID()
	assert.ErrorIs(t, err, ErrUnavailableTransactionField)

	origin, err := senderSigned.Origin()
	require.NoError(t, err)
	full, err := senderSigned.SignAsGasPayer(origin, gasPayerKey)
	require.NoError(t, err)
	assert.True(t, full.IsSigned())
	assert.Len(t, full.Signature(), 130)
	assert.Equal(t, senderSigned.Signature(), full.Signature()[:65])

	wantSender, err := crypto.PrivateKeyToAddress(senderKey)
	require.NoError(t, err)
	wantGasPayer, err := crypto.PrivateKeyToAddress(gasPayerKey)
	require.NoError(t, err)

	gotOrigin, err := full.Origin()
	require.NoError(t, err)
	assert.Equal(t, wantSender, gotOrigin)
	gotGasPayer, err := full.GasPayer()
	require.NoError(t, err)
	assert.Equal(t, wantGasPayer, gotGasPayer)

	oneShot, err := trx.SignAsSenderAndGasPayer(senderKey, gasPayerKey)
	require.NoError(t, err)
	assert.Equal(t, full.Signature(), oneShot.Signature())

	// re-signing as gas payer replaces the previous gas payer signature
	again, err := full.SignAsGasPayer(origin, senderKey)
	require.NoError(t, err)
	assert.Len(t, again.Signature(), 130)
	gp, err := again.GasPayer()
	require.NoError(t, err)
	assert.Equal(t, wantSender, gp)

	decoded, err := Decode(full.Encoded(), true)
	require.NoError(t, err)
	gotGasPayer, err = decoded.GasPayer()
	require.NoError(t, err)
	assert.Equal(t, wantGasPayer, gotGasPayer)
}

func TestSigningStateErrors(t *testing.T) {
	legacy, err := New(sampleBody())
	require.NoError(t, err)
	delegated, err := New(delegatedBody())
	require.NoError(t, err)

	_, err = delegated.Sign(senderKey)
	assert.ErrorIs(t, err, ErrInvalidTransactionField)

	_, err = legacy.SignAsSender(senderKey)
	assert.ErrorIs(t, err, ErrNotDelegatedTransaction)
	_, err = legacy.SignAsGasPayer(thor.Address{}, gasPayerKey)
	assert.ErrorIs(t, err, ErrNotDelegatedTransaction)
	_, err = legacy.SignAsSenderAndGasPayer(senderKey, gasPayerKey)
	assert.ErrorIs(t, err, ErrNotDelegatedTransaction)

	_, err = delegated.SignAsGasPayer(thor.Address{}, gasPayerKey)
	assert.ErrorIs(t, err, ErrUnavailableTransactionField)

	_, err = legacy.Sign(make([]byte, 32))
	assert.ErrorIs(t, err, crypto.ErrInvalidPrivateKey)
	_, err = delegated.SignAsSenderAndGasPayer(senderKey, []byte{1})
	assert.ErrorIs(t, err, crypto.ErrInvalidPrivateKey)
}

func TestSignatureLength(t *testing.T) {
	sig := make([]byte, 65)
	sig2 := make([]byte, 130)

	trx, err := Of(sampleBody(), sig)
	require.NoError(t, err)
	assert.True(t, trx.IsSigned())

	_, err = Of(sampleBody(), make([]byte, 64))
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)
	_, err = Of(sampleBody(), sig2)
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)

	trx, err = Of(delegatedBody(), sig2)
	require.NoError(t, err)
	assert.True(t, trx.IsSigned())

	_, err = Of(delegatedBody(), sig)
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)

	trx, err = OfSenderSigned(delegatedBody(), sig)
	require.NoError(t, err)
	assert.False(t, trx.IsSigned())
	assert.Equal(t, sig, trx.Signature())

	_, err = OfSenderSigned(delegatedBody(), sig2)
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)
	_, err = OfSenderSigned(delegatedBody(), nil)
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)
	_, err = OfSenderSigned(sampleBody(), sig)
	assert.ErrorIs(t, err, ErrNotDelegatedTransaction)

	_, err = Of(delegatedBody(), make([]byte, 131))
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)

	unsigned, err := New(sampleBody())
	require.NoError(t, err)
	_, err = unsigned.WithSignature(sig2)
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)
	withSig, err := unsigned.WithSignature(sig)
	require.NoError(t, err)
	assert.Equal(t, sig, withSig.Signature())
}

func TestImmutability(t *testing.T) {
	body := sampleBody()
	trx, err := New(body)
	require.NoError(t, err)
	hash := trx.SigningHash()

	body.Nonce = 1
	body.Clauses[0].Data[0] = 0xff
	assert.Equal(t, hash, trx.SigningHash())

	cpy := trx.Body()
	cpy.Clauses[0].Value.SetInt64(1)
	*cpy.GasPriceCoef = 1
	assert.Equal(t, sampleUnsigned, hex.EncodeToString(trx.Encoded()))

	again, err := New(trx.Body())
	require.NoError(t, err)
	assert.Equal(t, trx.SigningHash(), again.SigningHash())
	assert.Equal(t, trx.SigningHash(), trx.SigningHash())
}

func TestBuilder(t *testing.T) {
	trx, err := NewBuilder().
		ChainTag(1).
		BlockRef(thor.BlockRef{0, 0, 0, 0, 0xaa, 0xbb, 0xcc, 0xdd}).
		Expiration(32).
		Clause(NewClause(&sampleTo).WithValue(big.NewInt(10000)).WithData(mustHex("000000606060"))).
		Clause(NewClause(&sampleTo).WithValue(big.NewInt(20000)).WithData(mustHex("000000606060"))).
		GasPriceCoef(128).
		Gas(21000).
		Nonce(12345678).
		Build()
	require.NoError(t, err)
	assert.Equal(t, sampleUnsigned, hex.EncodeToString(trx.Encoded()))

	delegated, err := NewBuilder().GasPriceCoef(0).Features(DelegationFeature).Build()
	require.NoError(t, err)
	assert.True(t, delegated.IsDelegated())

	_, err = NewBuilder().Build()
	assert.ErrorIs(t, err, ErrInvalidTransactionField)
}

func TestTransactionJSON(t *testing.T) {
	trx, err := New(delegatedBody())
	require.NoError(t, err)
	full, err := trx.SignAsSenderAndGasPayer(senderKey, gasPayerKey)
	require.NoError(t, err)

	enc, err := json.Marshal(full)
	require.NoError(t, err)
	assert.Contains(t, string(enc), `"origin":"0xd989829d88b0ed1b06edf5c50174ecfa64f14a64"`)
	assert.Contains(t, string(enc), `"gasPayer":`)

	var dec Transaction
	require.NoError(t, json.Unmarshal(enc, &dec))
	assert.Equal(t, full.Encoded(), dec.Encoded())
	assert.Equal(t, full.Signature(), dec.Signature())

	// the sender-signed state survives a JSON round trip and can be completed
	senderSigned, err := trx.SignAsSender(senderKey)
	require.NoError(t, err)
	enc, err = json.Marshal(senderSigned)
	require.NoError(t, err)
	var partial Transaction
	require.NoError(t, json.Unmarshal(enc, &partial))
	assert.False(t, partial.IsSigned())
	origin, err := partial.Origin()
	require.NoError(t, err)
	completed, err := partial.SignAsGasPayer(origin, gasPayerKey)
	require.NoError(t, err)
	assert.Equal(t, full.Encoded(), completed.Encoded())
}

func TestBodyJSON(t *testing.T) {
	input := `{
		"chainTag": 1,
		"blockRef": "0x00000000aabbccdd",
		"expiration": 32,
		"clauses": [
			{"to": "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", "value": 10000, "data": "0x000000606060"},
			{"to": "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", "value": "0x4e20", "data": "0x000000606060"}
		],
		"gasPriceCoef": 128,
		"gas": "21000",
		"dependsOn": null,
		"nonce": "0xbc614e"
	}`
	var body Body
	require.NoError(t, json.Unmarshal([]byte(input), &body))
	trx, err := New(&body)
	require.NoError(t, err)
	assert.Equal(t, sampleUnsigned, hex.EncodeToString(trx.Encoded()))

	enc, err := json.Marshal(&body)
	require.NoError(t, err)
	var again Body
	require.NoError(t, json.Unmarshal(enc, &again))
	trx2, err := New(&again)
	require.NoError(t, err)
	assert.Equal(t, trx.Encoded(), trx2.Encoded())

	assert.Error(t, json.Unmarshal([]byte(`{"chainTag": 256, "blockRef": "0x0000000000000000", "expiration": 1, "gas": 1, "nonce": 1}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"blockRef": "0x0000000000000000", "expiration": 1, "gas": 1, "nonce": 1}`), &body))

	// clauses and dependsOn must be present, even when empty or null
	complete := `{"chainTag": 1, "blockRef": "0x0000000000000000", "expiration": 1, "clauses": [], "gasPriceCoef": 0, "gas": 1, "dependsOn": null, "nonce": 1}`
	require.NoError(t, json.Unmarshal([]byte(complete), &body))
	assert.Empty(t, body.Clauses)
	assert.Nil(t, body.DependsOn)

	err = json.Unmarshal([]byte(`{"chainTag": 1, "blockRef": "0x0000000000000000", "expiration": 1, "gasPriceCoef": 0, "gas": 1, "dependsOn": null, "nonce": 1}`), &body)
	assert.ErrorContains(t, err, "'clauses'")
	err = json.Unmarshal([]byte(`{"chainTag": 1, "blockRef": "0x0000000000000000", "expiration": 1, "clauses": [], "gasPriceCoef": 0, "gas": 1, "nonce": 1}`), &body)
	assert.ErrorContains(t, err, "'dependsOn'")
}

func TestString(t *testing.T) {
	trx, err := New(sampleBody())
	require.NoError(t, err)
	signed, err := trx.Sign(senderKey)
	require.NoError(t, err)
	s := signed.String()
	assert.Contains(t, s, "0xd989829d88b0ed1b06edf5c50174ecfa64f14a64")
	assert.Contains(t, s, "GasPriceCoef")
}
