package tx

import (
	"encoding/base64"

	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/types"
	pkgerrors "github.com/pkg/errors"
)

// EncodedInput is a signed transaction as supplied by a caller. TxBytes
// is the Base64 of the BCS encoded transaction data and each signature
// is the Base64 of flag || signature || public key.
type EncodedInput struct {
	TxBytes    string
	Signatures []string
}

// DecodedInput is the typed form of an EncodedInput. Signatures keep
// the order of the input and are not verified. TxBytes are the decoded
// transaction bytes, the exact payload the signatures cover.
type DecodedInput struct {
	TxBytes    []byte
	Data       types.TransactionData
	Signatures []types.GenericSignature
}

// Decode turns untrusted caller input into typed values. The first
// malformed item aborts the decode.
func Decode(in EncodedInput) (*DecodedInput, errors.Err) {
	txBytes, err := base64.StdEncoding.DecodeString(in.TxBytes)
	if err != nil {
		return nil, errors.New(errors.ErrBadBase64TxBytes, err)
	}

	var data types.TransactionData
	if err := types.Decode(txBytes, &data); err != nil {
		return nil, errors.New(errors.ErrBadBinaryTxData, err)
	}

	if data.V1 == nil || data.V1.Kind.ProgrammableTransaction == nil {
		return nil, errors.New(errors.ErrBadBinaryTxData, pkgerrors.New("unsupported transaction data"))
	}

	signatures := make([]types.GenericSignature, 0, len(in.Signatures))
	for i, s := range in.Signatures {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errors.New(errors.ErrBadBase64Signature,
				pkgerrors.Wrapf(err, "signature %d %q", i, s))
		}

		sig, err := types.DecodeGenericSignature(b)
		if err != nil {
			return nil, errors.New(errors.ErrBadSignature,
				pkgerrors.Wrapf(err, "signature %d", i))
		}

		signatures = append(signatures, sig)
	}

	return &DecodedInput{TxBytes: txBytes, Data: data, Signatures: signatures}, nil
}
