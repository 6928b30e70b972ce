package tx

import (
	"encoding/base64"
	"testing"

	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/sui/suitest"
	"github.com/oasislabs/sui-gateway/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	second := base64.StdEncoding.EncodeToString(types.GenericSignature{
		Scheme:    types.Ed25519,
		Signature: make([]byte, 64),
		PublicKey: make([]byte, 32),
	}.Bytes())

	decoded, err := Decode(EncodedInput{
		TxBytes:    suitest.TxBytesBase64(),
		Signatures: []string{suitest.SignatureBase64(), second, suitest.SignatureBase64()},
	})

	assert.Nil(t, err)
	assert.Equal(t, suitest.Sender, decoded.Data.V1.Sender)
	require.Equal(t, 3, len(decoded.Signatures))
	assert.Equal(t, suitest.Signature(), decoded.Signatures[0])
	assert.Equal(t, make([]byte, 32), decoded.Signatures[1].PublicKey)
	assert.Equal(t, suitest.Signature(), decoded.Signatures[2])
}

func TestDecodeRoundTrip(t *testing.T) {
	decoded, err := Decode(EncodedInput{TxBytes: suitest.TxBytesBase64()})
	require.Nil(t, err)

	b, encodeErr := types.Encode(decoded.Data)
	assert.Nil(t, encodeErr)
	assert.Equal(t, suitest.TxBytes(), b)
	assert.Equal(t, suitest.TxBytesBase64(), base64.StdEncoding.EncodeToString(b))
}

func TestDecodeNoSignatures(t *testing.T) {
	decoded, err := Decode(EncodedInput{TxBytes: suitest.TxBytesBase64(), Signatures: nil})
	require.Nil(t, err)
	assert.Empty(t, decoded.Signatures)

	tx := Assemble(decoded)
	assert.Empty(t, tx.Signatures())
	assert.Nil(t, tx.Data.Validate())
}

func TestDecodeBadBase64TxBytes(t *testing.T) {
	_, err := Decode(EncodedInput{TxBytes: "not base64!", Signatures: []string{suitest.SignatureBase64()}})

	require.NotNil(t, err)
	assert.Equal(t, errors.ErrBadBase64TxBytes, err.ErrorCode())
	assert.True(t, errors.IsClientError(err))
}

func TestDecodeBadBinaryTxData(t *testing.T) {
	txBytes := suitest.TxBytes()

	for _, b := range [][]byte{
		{},
		txBytes[:len(txBytes)/2],
		append(append([]byte{}, txBytes...), 0x00),
		{0x01},
		{0x00, 0x01},
		{0x00, 0x00, 0x80, 0x80, 0x80, 0x80, 0x80, 0x20},
		{0x00, 0x00, 0x01, 0x00, 0xff, 0xff, 0xff, 0xff, 0x07},
	} {
		_, err := Decode(EncodedInput{TxBytes: base64.StdEncoding.EncodeToString(b)})

		require.NotNil(t, err)
		assert.Equal(t, errors.ErrBadBinaryTxData, err.ErrorCode())
		assert.True(t, errors.IsClientError(err))
	}
}

func TestDecodeBadBase64Signature(t *testing.T) {
	_, err := Decode(EncodedInput{
		TxBytes:    suitest.TxBytesBase64(),
		Signatures: []string{suitest.SignatureBase64(), "%%%"},
	})

	require.NotNil(t, err)
	assert.Equal(t, errors.ErrBadBase64Signature, err.ErrorCode())
	assert.True(t, errors.IsClientError(err))
	assert.Contains(t, err.(errors.Error).Message(), `signature 1 "%%%"`)
}

func TestDecodeBadSignature(t *testing.T) {
	for _, sig := range [][]byte{
		{},
		append([]byte{0x09}, make([]byte, 96)...),
		{0x03},
		append([]byte{0x00}, make([]byte, 95)...),
	} {
		_, err := Decode(EncodedInput{
			TxBytes:    suitest.TxBytesBase64(),
			Signatures: []string{base64.StdEncoding.EncodeToString(sig)},
		})

		require.NotNil(t, err)
		assert.Equal(t, errors.ErrBadSignature, err.ErrorCode())
		assert.True(t, errors.IsClientError(err))
		assert.Contains(t, err.(errors.Error).Message(), "signature 0")
	}
}

func TestAssemble(t *testing.T) {
	decoded, err := Decode(EncodedInput{
		TxBytes:    suitest.TxBytesBase64(),
		Signatures: []string{suitest.SignatureBase64()},
	})
	require.Nil(t, err)

	tx := Assemble(decoded)

	assert.Equal(t, types.TransactionIntent, tx.Data.Transaction().IntentMessage.Intent)
	assert.Equal(t, [][]byte{suitest.Signature().Bytes()}, tx.Signatures())

	b, encodeErr := types.Encode(tx.Data)
	assert.Nil(t, encodeErr)
	expected, _ := types.Encode(suitest.SenderSignedData())
	assert.Equal(t, expected, b)
}

func TestDecodeNonCanonicalTxBytes(t *testing.T) {
	txBytes := suitest.TxBytes()
	require.Equal(t, byte(2), txBytes[2])

	padded := append([]byte{}, txBytes[:2]...)
	padded = append(padded, 0x82, 0x00)
	padded = append(padded, txBytes[3:]...)

	_, err := Decode(EncodedInput{TxBytes: base64.StdEncoding.EncodeToString(padded)})

	require.NotNil(t, err)
	assert.Equal(t, errors.ErrBadBinaryTxData, err.ErrorCode())
	assert.True(t, errors.IsClientError(err))
}

func TestDecodeOpaqueSignatures(t *testing.T) {
	multisig := append([]byte{0x03}, 0x01, 0x40, 0xaa, 0xbb)
	zklogin := append([]byte{0x05}, make([]byte, 200)...)

	decoded, err := Decode(EncodedInput{
		TxBytes: suitest.TxBytesBase64(),
		Signatures: []string{
			base64.StdEncoding.EncodeToString(multisig),
			base64.StdEncoding.EncodeToString(zklogin),
		},
	})
	require.Nil(t, err)

	tx := Assemble(decoded)
	assert.Equal(t, [][]byte{multisig, zklogin}, tx.Signatures())
}

func TestAssembleKeepsSignedBytes(t *testing.T) {
	decoded, err := Decode(EncodedInput{TxBytes: suitest.TxBytesBase64()})
	require.Nil(t, err)

	b, bytesErr := Assemble(decoded).TxBytes()
	assert.Nil(t, bytesErr)
	assert.Equal(t, suitest.TxBytes(), b)
}
