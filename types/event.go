package types

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
)

const immutableOwner = "Immutable"

type owner Owner

// MarshalJSON writes the JSON-RPC form of an owner
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.Immutable != nil {
		return json.Marshal(immutableOwner)
	}
	return json.Marshal(owner(o))
}

// UnmarshalJSON reads the JSON-RPC form of an owner, either the
// "Immutable" string or an object keyed by the variant name
func (o *Owner) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != immutableOwner {
			return errors.Errorf("unknown owner %q", s)
		}
		*o = Owner{Immutable: &Unit{}}
		return nil
	}

	var v owner
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	if v.AddressOwner == nil && v.ObjectOwner == nil && v.Shared == nil && v.ConsensusAddressOwner == nil {
		return errors.Errorf("unknown owner %s", string(b))
	}

	*o = Owner(v)
	return nil
}

// Event is emitted by a Move call of an executed transaction. It holds
// no reference to a stored checkpoint.
type Event struct {
	PackageID  ObjectID  `json:"packageId"`
	ModuleName string    `json:"transactionModule"`
	Sender     Address   `json:"sender"`
	Type       StructTag `json:"type"`
	Contents   []byte    `json:"contents"`
}

// BalanceChange is the net change of one coin type for one owner
type BalanceChange struct {
	Owner    Owner    `json:"owner"`
	CoinType TypeTag  `json:"coinType"`
	Amount   *big.Int `json:"amount"`
}

type balanceChangeJSON struct {
	Owner    Owner   `json:"owner"`
	CoinType TypeTag `json:"coinType"`
	Amount   string  `json:"amount"`
}

// MarshalJSON writes the amount as a decimal string
func (c BalanceChange) MarshalJSON() ([]byte, error) {
	amount := "0"
	if c.Amount != nil {
		amount = c.Amount.String()
	}

	return json.Marshal(balanceChangeJSON{Owner: c.Owner, CoinType: c.CoinType, Amount: amount})
}

func (c *BalanceChange) UnmarshalJSON(b []byte) error {
	var v balanceChangeJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	amount, ok := new(big.Int).SetString(v.Amount, 10)
	if !ok {
		return errors.Errorf("invalid amount %q", v.Amount)
	}

	*c = BalanceChange{Owner: v.Owner, CoinType: v.CoinType, Amount: amount}
	return nil
}
