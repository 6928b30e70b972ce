package suitest

import (
	"encoding/base64"
	"encoding/json"

	"github.com/oasislabs/sui-gateway/sui"
	"github.com/oasislabs/sui-gateway/types"
)

// Sender is the address that signs the fixture transaction
var Sender = types.MustParseAddress("0x7d20dcdb2bca4f508ea9613994683eb4e76e9c4ed371169677c1be02aaf0b58e")

func mustEncode(v interface{}) []byte {
	b, err := types.Encode(v)
	if err != nil {
		panic(err)
	}
	return b
}

func digest(seed byte) types.Digest {
	d := make([]byte, types.DigestLength)
	for i := range d {
		d[i] = seed
	}
	return types.Digest(d)
}

// TransactionData is a transaction that sends 1000 MIST from the gas
// coin to 0xabcd
func TransactionData() types.TransactionData {
	amount := []byte{0xe8, 0x03, 0, 0, 0, 0, 0, 0}
	recipient := types.MustParseAddress("0xabcd")
	pure := recipient[:]
	amountArg := uint16(0)
	recipientArg := uint16(1)

	return types.TransactionData{V1: &types.TransactionDataV1{
		Kind: types.TransactionKind{ProgrammableTransaction: &types.ProgrammableTransaction{
			Inputs: []types.CallArg{{Pure: &amount}, {Pure: &pure}},
			Commands: []types.Command{
				{SplitCoins: &types.SplitCoins{
					Coin:    types.Argument{GasCoin: &types.Unit{}},
					Amounts: []types.Argument{{Input: &amountArg}},
				}},
				{TransferObjects: &types.TransferObjects{
					Objects: []types.Argument{{NestedResult: &types.NestedArgument{Result: 0, Index: 0}}},
					Address: types.Argument{Input: &recipientArg},
				}},
			},
		}},
		Sender: Sender,
		GasData: types.GasData{
			Payment: []types.ObjectRef{{ObjectID: types.MustParseAddress("0x99"), Version: 7, Digest: digest(1)}},
			Owner:   Sender,
			Price:   1000,
			Budget:  5000000,
		},
		Expiration: types.TransactionExpiration{None: &types.Unit{}},
	}}
}

// TxBytes is the BCS encoding of TransactionData
func TxBytes() []byte {
	return mustEncode(TransactionData())
}

// TxBytesBase64 is the wire form of TxBytes
func TxBytesBase64() string {
	return base64.StdEncoding.EncodeToString(TxBytes())
}

// Signature is a well formed, unverified ed25519 signature
func Signature() types.GenericSignature {
	pk := make([]byte, 32)
	for i := range pk {
		pk[i] = byte(i)
	}

	return types.GenericSignature{Scheme: types.Ed25519, Signature: make([]byte, 64), PublicKey: pk}
}

// SignatureBase64 is the wire form of Signature
func SignatureBase64() string {
	return base64.StdEncoding.EncodeToString(Signature().Bytes())
}

// Effects are the successful effects of the fixture transaction
func Effects() types.TransactionEffects {
	gasOwner := Sender
	recipient := types.MustParseAddress("0xabcd")
	eventsDigest := digest(9)
	txDigest, err := types.TransactionDigest(TransactionData())
	if err != nil {
		panic(err)
	}

	return types.TransactionEffects{V1: &types.TransactionEffectsV1{
		Status:        types.ExecutionStatus{Success: &types.Unit{}},
		ExecutedEpoch: 12,
		GasUsed: types.GasCostSummary{
			ComputationCost: 1000000,
			StorageCost:     1976000,
			StorageRebate:   978120,
		},
		ModifiedAtVersions: []types.ModifiedVersion{{ObjectID: types.MustParseAddress("0x99"), Version: 7}},
		SharedObjects:      []types.ObjectRef{},
		TransactionDigest:  txDigest,
		Created: []types.OwnedObjectRef{{
			Reference: types.ObjectRef{ObjectID: types.MustParseAddress("0x55"), Version: 8, Digest: digest(2)},
			Owner:     types.Owner{AddressOwner: &recipient},
		}},
		Mutated: []types.OwnedObjectRef{{
			Reference: types.ObjectRef{ObjectID: types.MustParseAddress("0x99"), Version: 8, Digest: digest(3)},
			Owner:     types.Owner{AddressOwner: &gasOwner},
		}},
		Unwrapped:            []types.OwnedObjectRef{},
		Deleted:              []types.ObjectRef{},
		UnwrappedThenDeleted: []types.ObjectRef{},
		Wrapped:              []types.ObjectRef{},
		GasObject: types.OwnedObjectRef{
			Reference: types.ObjectRef{ObjectID: types.MustParseAddress("0x99"), Version: 8, Digest: digest(3)},
			Owner:     types.Owner{AddressOwner: &gasOwner},
		},
		EventsDigest: types.OptionDigest{Some: &eventsDigest},
		Dependencies: []types.Digest{digest(4)},
	}}
}

// RawEffects is the BCS encoding of Effects
func RawEffects() []byte {
	return mustEncode(Effects())
}

// EffectsV2 are the effects of the fixture transaction in the layout
// current nodes return
func EffectsV2() types.TransactionEffects {
	v1 := Effects().V1
	gasOwner := Sender
	recipient := types.MustParseAddress("0xabcd")
	gasIndex := uint32(1)

	return types.TransactionEffects{V2: &types.TransactionEffectsV2{
		Status:            v1.Status,
		ExecutedEpoch:     v1.ExecutedEpoch,
		GasUsed:           v1.GasUsed,
		TransactionDigest: v1.TransactionDigest,
		GasObjectIndex:    types.OptionU32{Some: &gasIndex},
		EventsDigest:      v1.EventsDigest,
		Dependencies:      v1.Dependencies,
		LamportVersion:    8,
		ChangedObjects: []types.ChangedObject{
			{
				ObjectID: types.MustParseAddress("0x55"),
				Change: types.EffectsObjectChange{
					InputState: types.ObjectIn{NotExist: &types.Unit{}},
					OutputState: types.ObjectOut{ObjectWrite: &types.ObjectWrite{
						Digest: digest(2),
						Owner:  types.Owner{AddressOwner: &recipient},
					}},
					IDOperation: types.IDOperation{Created: &types.Unit{}},
				},
			},
			{
				ObjectID: types.MustParseAddress("0x99"),
				Change: types.EffectsObjectChange{
					InputState: types.ObjectIn{Exist: &types.ObjectInState{
						VersionDigest: types.VersionDigest{Version: 7, Digest: digest(1)},
						Owner:         types.Owner{AddressOwner: &gasOwner},
					}},
					OutputState: types.ObjectOut{ObjectWrite: &types.ObjectWrite{
						Digest: digest(3),
						Owner:  types.Owner{AddressOwner: &gasOwner},
					}},
					IDOperation: types.IDOperation{None: &types.Unit{}},
				},
			},
		},
		UnchangedSharedObjects: []types.UnchangedSharedObject{{
			ObjectID: types.MustParseAddress("0x6"),
			Kind: types.UnchangedSharedKind{ReadOnlyRoot: &types.VersionDigest{
				Version: 5,
				Digest:  digest(5),
			}},
		}},
		AuxDataDigest: types.OptionDigest{None: &types.Unit{}},
	}}
}

// RawEffectsV2 is the BCS encoding of EffectsV2
func RawEffectsV2() []byte {
	return mustEncode(EffectsV2())
}

// SenderSignedData is the fixture transaction signed with Signature
func SenderSignedData() types.SenderSignedData {
	return types.NewSignedTransaction(TransactionData(), []types.GenericSignature{Signature()}).Data
}

// Event is an event emitted by the fixture transaction in its node form
func Event() sui.Event {
	return sui.Event{
		PackageID:         "0x0000000000000000000000000000000000000000000000000000000000000002",
		TransactionModule: "pay",
		Sender:            Sender.String(),
		Type:              "0x2::coin::CoinCreated<0x2::sui::SUI>",
		BcsEncoding:       "base64",
		Bcs:               base64.StdEncoding.EncodeToString([]byte{0xe8, 0x03, 0, 0, 0, 0, 0, 0}),
	}
}

// BalanceChanges is the node form of the balance changes of the
// fixture transaction
func BalanceChanges() []json.RawMessage {
	return []json.RawMessage{
		json.RawMessage(`{"owner":{"AddressOwner":"` + Sender.String() + `"},"coinType":"0x2::sui::SUI","amount":"-1997880"}`),
		json.RawMessage(`{"owner":{"AddressOwner":"0x000000000000000000000000000000000000000000000000000000000000abcd"},"coinType":"0x2::sui::SUI","amount":"1000"}`),
	}
}

// ByteArray renders b the way nodes render raw effects, a JSON array
// of numbers
func ByteArray(b []byte) json.RawMessage {
	values := make([]int, 0, len(b))
	for _, v := range b {
		values = append(values, int(v))
	}

	out, err := json.Marshal(values)
	if err != nil {
		panic(err)
	}
	return out
}

// SuccessResponse is the response of a node that executed the fixture
// transaction
func SuccessResponse() *sui.TransactionBlockResponse {
	events := []sui.Event{Event()}
	balanceChanges := BalanceChanges()
	confirmed := true

	return &sui.TransactionBlockResponse{
		Digest:                  Effects().Digest().String(),
		RawTransaction:          base64.StdEncoding.EncodeToString(mustEncode(SenderSignedData())),
		RawEffects:              ByteArray(RawEffects()),
		Events:                  &events,
		BalanceChanges:          &balanceChanges,
		Errors:                  []string{},
		ConfirmedLocalExecution: &confirmed,
	}
}

// FailureResponse is the response of a node that rejected the fixture
// transaction without returning any facet
func FailureResponse(errors ...string) *sui.TransactionBlockResponse {
	return &sui.TransactionBlockResponse{
		Digest: Effects().Digest().String(),
		Errors: errors,
	}
}
