package tx

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"
	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/sui"
	"github.com/oasislabs/sui-gateway/types"
	pkgerrors "github.com/pkg/errors"
)

// Policy decides what the normalizer decodes when the node reports
// errors
type Policy string

const (
	// PolicyShortCircuit returns the reported errors without decoding
	// any facet
	PolicyShortCircuit Policy = "short_circuit"

	// PolicyEager decodes every facet before looking at the reported
	// errors, so a malformed facet fails the request even when the
	// node reported errors
	PolicyEager Policy = "eager"
)

func (p Policy) String() string {
	return string(p)
}

// Normalizer maps node responses to execution results
type Normalizer struct {
	policy Policy
}

func NewNormalizer(policy Policy) *Normalizer {
	if policy != PolicyEager {
		policy = PolicyShortCircuit
	}

	return &Normalizer{policy: policy}
}

// Policy returns the policy in use
func (n *Normalizer) Policy() Policy {
	return n.policy
}

// Normalize decodes the binary facets of res and builds the result.
// Any contract violation by the node is an InternalError.
func (n *Normalizer) Normalize(res *sui.TransactionBlockResponse) (ExecutionResult, errors.Err) {
	if n.policy == PolicyShortCircuit && len(res.Errors) > 0 {
		return ExecutionFailure{Errors: res.Errors}, nil
	}

	rawEffects, err := decodeRawEffects(res.RawEffects)
	if err != nil {
		return nil, errors.New(errors.ErrDecodeRawEffects, err)
	}

	var effects types.TransactionEffects
	if err := types.Decode(rawEffects, &effects); err != nil {
		return nil, errors.New(errors.ErrDecodeRawEffects, err)
	}

	senderSignedData, err := decodeRawTransaction(res.RawTransaction)
	if err != nil {
		return nil, errors.New(errors.ErrDecodeRawTransaction, err)
	}

	if res.Events == nil {
		return nil, errors.New(errors.ErrMissingEvents, nil)
	}

	events := make([]types.Event, 0, len(*res.Events))
	for i, e := range *res.Events {
		event, err := decodeEvent(e)
		if err != nil {
			return nil, errors.New(errors.ErrDecodeEvent, pkgerrors.Wrapf(err, "event %d", i))
		}
		events = append(events, event)
	}

	if res.BalanceChanges == nil {
		return nil, errors.New(errors.ErrMissingBalanceChanges, nil)
	}

	balanceChanges := make([]types.BalanceChange, 0, len(*res.BalanceChanges))
	for i, raw := range *res.BalanceChanges {
		var change types.BalanceChange
		if err := json.Unmarshal(raw, &change); err != nil {
			return nil, errors.New(errors.ErrDecodeBalanceChange, pkgerrors.Wrapf(err, "balance change %d", i))
		}
		balanceChanges = append(balanceChanges, change)
	}

	if len(res.Errors) > 0 {
		return ExecutionFailure{Errors: res.Errors}, nil
	}

	return ExecutionSuccess{
		Digest: effects.Digest(),
		Transaction: ExecutedTransaction{
			SenderSignedData: senderSignedData,
			Effects:          effects,
			BalanceChanges:   balanceChanges,
			Events:           events,
		},
		RawEffects: rawEffects,
	}, nil
}

// decodeRawEffects accepts both text forms nodes use for raw effects,
// a JSON array of byte values and a Base64 string
func decodeRawEffects(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, pkgerrors.New("raw effects not returned")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return base64.StdEncoding.DecodeString(s)
	}

	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}

	b := make([]byte, 0, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, pkgerrors.Errorf("value %d at offset %d is not a byte", v, i)
		}
		b = append(b, byte(v))
	}

	return b, nil
}

func decodeRawTransaction(s string) (types.SenderSignedData, error) {
	if len(s) == 0 {
		return nil, pkgerrors.New("raw transaction not returned")
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}

	var data types.SenderSignedData
	if err := types.Decode(b, &data); err != nil {
		return nil, err
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}

	return data, nil
}

// decodeEvent maps a node event to an Event with no stored reference.
// Contents are Base64 when the node says so and Base58 otherwise.
func decodeEvent(e sui.Event) (types.Event, error) {
	packageID, err := types.ParseAddress(e.PackageID)
	if err != nil {
		return types.Event{}, pkgerrors.Wrap(err, "package id")
	}

	sender, err := types.ParseAddress(e.Sender)
	if err != nil {
		return types.Event{}, pkgerrors.Wrap(err, "sender")
	}

	eventType, err := types.ParseStructTag(e.Type)
	if err != nil {
		return types.Event{}, pkgerrors.Wrap(err, "type")
	}

	var contents []byte
	switch e.BcsEncoding {
	case "base64":
		contents, err = base64.StdEncoding.DecodeString(e.Bcs)
		if err != nil {
			return types.Event{}, pkgerrors.Wrap(err, "contents")
		}
	case "", "base58":
		contents = base58.Decode(e.Bcs)
		if len(contents) == 0 && len(e.Bcs) > 0 {
			return types.Event{}, pkgerrors.New("contents: invalid base58")
		}
	default:
		return types.Event{}, pkgerrors.Errorf("unknown bcs encoding %q", e.BcsEncoding)
	}

	return types.Event{
		PackageID:  packageID,
		ModuleName: e.TransactionModule,
		Sender:     sender,
		Type:       eventType,
		Contents:   contents,
	}, nil
}
