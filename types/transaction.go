package types

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// TransactionData is the unsigned payload of a transaction
type TransactionData struct {
	V1 *TransactionDataV1 `json:"v1,omitempty"`
}

func (TransactionData) IsBcsEnum() {}

type TransactionDataV1 struct {
	Kind       TransactionKind       `json:"kind"`
	Sender     Address               `json:"sender"`
	GasData    GasData               `json:"gasData"`
	Expiration TransactionExpiration `json:"expiration"`
}

// TransactionKind only models programmable transactions. System
// transactions are never submitted by clients, so their variant
// indices fail to decode.
type TransactionKind struct {
	ProgrammableTransaction *ProgrammableTransaction `json:"programmableTransaction,omitempty"`
}

func (TransactionKind) IsBcsEnum() {}

type ProgrammableTransaction struct {
	Inputs   []CallArg `json:"inputs"`
	Commands []Command `json:"commands"`
}

type CallArg struct {
	Pure   *[]byte    `json:"pure,omitempty"`
	Object *ObjectArg `json:"object,omitempty"`
}

func (CallArg) IsBcsEnum() {}

type ObjectArg struct {
	ImmOrOwnedObject *ObjectRef       `json:"immOrOwnedObject,omitempty"`
	SharedObject     *SharedObjectArg `json:"sharedObject,omitempty"`
	Receiving        *ObjectRef       `json:"receiving,omitempty"`
}

func (ObjectArg) IsBcsEnum() {}

type SharedObjectArg struct {
	ID                   ObjectID `json:"id"`
	InitialSharedVersion uint64   `json:"initialSharedVersion"`
	Mutable              bool     `json:"mutable"`
}

type Command struct {
	MoveCall        *ProgrammableMoveCall `json:"moveCall,omitempty"`
	TransferObjects *TransferObjects      `json:"transferObjects,omitempty"`
	SplitCoins      *SplitCoins           `json:"splitCoins,omitempty"`
	MergeCoins      *MergeCoins           `json:"mergeCoins,omitempty"`
	Publish         *Publish              `json:"publish,omitempty"`
	MakeMoveVec     *MakeMoveVec          `json:"makeMoveVec,omitempty"`
	Upgrade         *Upgrade              `json:"upgrade,omitempty"`
}

func (Command) IsBcsEnum() {}

type ProgrammableMoveCall struct {
	Package       ObjectID   `json:"package"`
	Module        string     `json:"module"`
	Function      string     `json:"function"`
	TypeArguments []TypeTag  `json:"typeArguments"`
	Arguments     []Argument `json:"arguments"`
}

type TransferObjects struct {
	Objects []Argument `json:"objects"`
	Address Argument   `json:"address"`
}

type SplitCoins struct {
	Coin    Argument   `json:"coin"`
	Amounts []Argument `json:"amounts"`
}

type MergeCoins struct {
	Destination Argument   `json:"destination"`
	Sources     []Argument `json:"sources"`
}

type Publish struct {
	Modules      [][]byte   `json:"modules"`
	Dependencies []ObjectID `json:"dependencies"`
}

type MakeMoveVec struct {
	Type     OptionTypeTag `json:"type"`
	Elements []Argument    `json:"elements"`
}

type Upgrade struct {
	Modules      [][]byte   `json:"modules"`
	Dependencies []ObjectID `json:"dependencies"`
	Package      ObjectID   `json:"package"`
	Ticket       Argument   `json:"ticket"`
}

// OptionTypeTag is Option<TypeTag>
type OptionTypeTag struct {
	None *Unit    `json:"none,omitempty"`
	Some *TypeTag `json:"some,omitempty"`
}

func (OptionTypeTag) IsBcsEnum() {}

// Argument refers to a value available to a command
type Argument struct {
	GasCoin      *Unit           `json:"gasCoin,omitempty"`
	Input        *uint16         `json:"input,omitempty"`
	Result       *uint16         `json:"result,omitempty"`
	NestedResult *NestedArgument `json:"nestedResult,omitempty"`
}

func (Argument) IsBcsEnum() {}

type NestedArgument struct {
	Result uint16 `json:"result"`
	Index  uint16 `json:"index"`
}

type GasData struct {
	Payment []ObjectRef `json:"payment"`
	Owner   Address     `json:"owner"`
	Price   uint64      `json:"price"`
	Budget  uint64      `json:"budget"`
}

type TransactionExpiration struct {
	None  *Unit   `json:"none,omitempty"`
	Epoch *uint64 `json:"epoch,omitempty"`
}

func (TransactionExpiration) IsBcsEnum() {}

// Intent scopes a signed message. Transactions use the zero value.
type Intent struct {
	Scope   uint8 `json:"scope"`
	Version uint8 `json:"version"`
	AppID   uint8 `json:"appId"`
}

// TransactionIntent is the intent clients sign transactions with
var TransactionIntent = Intent{Scope: 0, Version: 0, AppID: 0}

type IntentMessage struct {
	Intent Intent          `json:"intent"`
	Value  TransactionData `json:"value"`
}

type SenderSignedTransaction struct {
	IntentMessage IntentMessage `json:"intentMessage"`
	TxSignatures  [][]byte      `json:"txSignatures"`
}

// SenderSignedData holds exactly one SenderSignedTransaction
type SenderSignedData []SenderSignedTransaction

// Validate checks the single element invariant
func (s SenderSignedData) Validate() error {
	if len(s) != 1 {
		return errors.Errorf("sender signed data must hold exactly one transaction, got %d", len(s))
	}
	return nil
}

// Transaction returns the only transaction of the data
func (s SenderSignedData) Transaction() SenderSignedTransaction {
	return s[0]
}

// SignedTransaction is a transaction ready for submission
type SignedTransaction struct {
	Data SenderSignedData

	// txBytes are the bytes the signatures were produced over, when
	// the transaction was decoded from them
	txBytes []byte
}

// NewSignedTransaction wraps data and signatures with the transaction intent
func NewSignedTransaction(data TransactionData, signatures []GenericSignature) SignedTransaction {
	sigs := make([][]byte, 0, len(signatures))
	for _, sig := range signatures {
		sigs = append(sigs, sig.Bytes())
	}

	return SignedTransaction{
		Data: SenderSignedData{{
			IntentMessage: IntentMessage{Intent: TransactionIntent, Value: data},
			TxSignatures:  sigs,
		}},
	}
}

// WithTxBytes records the exact bytes the caller signed. They are
// submitted unchanged instead of a re-encoding of the data.
func (t SignedTransaction) WithTxBytes(b []byte) SignedTransaction {
	t.txBytes = b
	return t
}

// TxBytes returns the signed bytes, or the encoding of the transaction
// data when none were recorded
func (t SignedTransaction) TxBytes() ([]byte, error) {
	if t.txBytes != nil {
		return t.txBytes, nil
	}
	return Encode(t.TransactionData())
}

// TransactionData returns the unsigned payload
func (t SignedTransaction) TransactionData() TransactionData {
	return t.Data.Transaction().IntentMessage.Value
}

// Signatures returns the serialized signatures in submission order
func (t SignedTransaction) Signatures() [][]byte {
	return t.Data.Transaction().TxSignatures
}

const transactionDataSalt = "TransactionData::"

// TransactionDigest computes the digest of the transaction data
func TransactionDigest(data TransactionData) (Digest, error) {
	b, err := Encode(data)
	if err != nil {
		return nil, errors.Wrap(err, "encode transaction data")
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}

	h.Write([]byte(transactionDataSalt))
	h.Write(b)
	return Digest(h.Sum(nil)), nil
}
