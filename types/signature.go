package types

import (
	"crypto/elliptic"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
)

// SignatureScheme is the flag byte prefixing a serialized signature
type SignatureScheme byte

const (
	Ed25519   SignatureScheme = 0x00
	Secp256k1 SignatureScheme = 0x01
	Secp256r1 SignatureScheme = 0x02
	MultiSig  SignatureScheme = 0x03
	ZkLogin   SignatureScheme = 0x05
	Passkey   SignatureScheme = 0x06
)

const signatureLength = 64

var schemeNames = map[SignatureScheme]string{
	Ed25519:   "ed25519",
	Secp256k1: "secp256k1",
	Secp256r1: "secp256r1",
	MultiSig:  "multisig",
	ZkLogin:   "zklogin",
	Passkey:   "passkey",
}

var publicKeyLengths = map[SignatureScheme]int{
	Ed25519:   32,
	Secp256k1: 33,
	Secp256r1: 33,
}

func (s SignatureScheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return "unknown"
}

var (
	ErrEmptySignature     = errors.New("empty signature")
	ErrUnrecognizedScheme = errors.New("unrecognized signature scheme")
	ErrBadSignatureLength = errors.New("bad signature length")
	ErrInvalidPublicKey   = errors.New("invalid public key")
)

// GenericSignature is a signature serialized as flag || body. Single-key
// schemes split the body into signature and public key. MultiSig, zkLogin
// and passkey bodies are kept opaque in Payload and forwarded as is.
// Nothing is verified.
type GenericSignature struct {
	Scheme    SignatureScheme
	Signature []byte
	PublicKey []byte
	Payload   []byte
}

// IsOpaque is true for schemes whose body is not parsed
func (s SignatureScheme) IsOpaque() bool {
	_, single := publicKeyLengths[s]
	_, known := schemeNames[s]
	return known && !single
}

// DecodeGenericSignature parses the serialized form of a signature
func DecodeGenericSignature(b []byte) (GenericSignature, error) {
	if len(b) == 0 {
		return GenericSignature{}, ErrEmptySignature
	}

	scheme := SignatureScheme(b[0])
	if _, ok := schemeNames[scheme]; !ok {
		return GenericSignature{}, errors.Wrapf(ErrUnrecognizedScheme, "flag 0x%02x", b[0])
	}

	if scheme.IsOpaque() {
		if len(b) == 1 {
			return GenericSignature{}, errors.Wrapf(ErrBadSignatureLength, "%s signature has no body", scheme)
		}
		return GenericSignature{Scheme: scheme, Payload: append([]byte(nil), b[1:]...)}, nil
	}

	pkLen := publicKeyLengths[scheme]

	if expected := 1 + signatureLength + pkLen; len(b) != expected {
		return GenericSignature{}, errors.Wrapf(ErrBadSignatureLength,
			"%s expects %d bytes, got %d", scheme, expected, len(b))
	}

	sig := GenericSignature{
		Scheme:    scheme,
		Signature: append([]byte(nil), b[1:1+signatureLength]...),
		PublicKey: append([]byte(nil), b[1+signatureLength:]...),
	}

	if err := validatePublicKey(scheme, sig.PublicKey); err != nil {
		return GenericSignature{}, err
	}

	return sig, nil
}

func validatePublicKey(scheme SignatureScheme, pk []byte) error {
	switch scheme {
	case Secp256k1:
		if _, err := btcec.ParsePubKey(pk); err != nil {
			return errors.Wrap(ErrInvalidPublicKey, err.Error())
		}
	case Secp256r1:
		if x, _ := elliptic.UnmarshalCompressed(elliptic.P256(), pk); x == nil {
			return errors.Wrap(ErrInvalidPublicKey, "not a secp256r1 point")
		}
	}
	return nil
}

// Bytes returns the serialized form of the signature
func (s GenericSignature) Bytes() []byte {
	if s.Scheme.IsOpaque() {
		return append([]byte{byte(s.Scheme)}, s.Payload...)
	}

	b := make([]byte, 0, 1+len(s.Signature)+len(s.PublicKey))
	b = append(b, byte(s.Scheme))
	b = append(b, s.Signature...)
	return append(b, s.PublicKey...)
}
