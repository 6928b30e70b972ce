package types

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// AddressLength is the number of bytes of an account or object address
const AddressLength = 32

// Address identifies an account, a package or an object
type Address [AddressLength]byte

// ObjectID is the address of an object
type ObjectID = Address

// ParseAddress parses the hex form of an address. Short forms such
// as 0x2 are accepted and left padded with zeros.
func ParseAddress(s string) (Address, error) {
	var addr Address

	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(h) == 0 || len(h) > 2*AddressLength {
		return addr, errors.Errorf("invalid address length for %q", s)
	}

	h = strings.Repeat("0", 2*AddressLength-len(h)) + h
	b, err := hexutil.Decode("0x" + h)
	if err != nil {
		return addr, errors.Wrapf(err, "invalid address %q", s)
	}

	copy(addr[:], b)
	return addr, nil
}

// MustParseAddress is ParseAddress for constants
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String returns the full 0x prefixed hex form
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// ShortString trims the leading zeros, so 0x2 stays 0x2
func (a Address) ShortString() string {
	s := strings.TrimLeft(hex.EncodeToString(a[:]), "0")
	if s == "" {
		s = "0"
	}
	return "0x" + s
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
