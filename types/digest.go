package types

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// DigestLength is the size of transaction, object and events digests
const DigestLength = 32

// Digest is a 32 byte hash. It is encoded as a length prefixed byte
// vector and printed in Base58.
type Digest []byte

// ParseDigest parses the Base58 form of a digest
func ParseDigest(s string) (Digest, error) {
	b := base58.Decode(s)
	if len(b) != DigestLength {
		return nil, errors.Errorf("invalid digest %q", s)
	}

	return Digest(b), nil
}

func (d Digest) String() string {
	return base58.Encode(d)
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Digest) UnmarshalText(text []byte) error {
	digest, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = digest
	return nil
}

// ObjectRef is a reference to a specific version of an object
type ObjectRef struct {
	ObjectID ObjectID `json:"objectId"`
	Version  uint64   `json:"version"`
	Digest   Digest   `json:"digest"`
}
