package types

// TransactionEffects describes the state changes of an executed
// transaction
type TransactionEffects struct {
	V1 *TransactionEffectsV1 `json:"v1,omitempty"`
	V2 *TransactionEffectsV2 `json:"v2,omitempty"`
}

func (TransactionEffects) IsBcsEnum() {}

type TransactionEffectsV1 struct {
	Status               ExecutionStatus   `json:"status"`
	ExecutedEpoch        uint64            `json:"executedEpoch"`
	GasUsed              GasCostSummary    `json:"gasUsed"`
	ModifiedAtVersions   []ModifiedVersion `json:"modifiedAtVersions"`
	SharedObjects        []ObjectRef       `json:"sharedObjects"`
	TransactionDigest    Digest            `json:"transactionDigest"`
	Created              []OwnedObjectRef  `json:"created"`
	Mutated              []OwnedObjectRef  `json:"mutated"`
	Unwrapped            []OwnedObjectRef  `json:"unwrapped"`
	Deleted              []ObjectRef       `json:"deleted"`
	UnwrappedThenDeleted []ObjectRef       `json:"unwrappedThenDeleted"`
	Wrapped              []ObjectRef       `json:"wrapped"`
	GasObject            OwnedObjectRef    `json:"gasObject"`
	EventsDigest         OptionDigest      `json:"eventsDigest"`
	Dependencies         []Digest          `json:"dependencies"`
}

// TransactionEffectsV2 records every touched object once, in
// ChangedObjects, instead of one list per kind of change
type TransactionEffectsV2 struct {
	Status                 ExecutionStatus         `json:"status"`
	ExecutedEpoch          uint64                  `json:"executedEpoch"`
	GasUsed                GasCostSummary          `json:"gasUsed"`
	TransactionDigest      Digest                  `json:"transactionDigest"`
	GasObjectIndex         OptionU32               `json:"gasObjectIndex"`
	EventsDigest           OptionDigest            `json:"eventsDigest"`
	Dependencies           []Digest                `json:"dependencies"`
	LamportVersion         uint64                  `json:"lamportVersion"`
	ChangedObjects         []ChangedObject         `json:"changedObjects"`
	UnchangedSharedObjects []UnchangedSharedObject `json:"unchangedSharedObjects"`
	AuxDataDigest          OptionDigest            `json:"auxDataDigest"`
}

type ChangedObject struct {
	ObjectID ObjectID            `json:"objectId"`
	Change   EffectsObjectChange `json:"change"`
}

type EffectsObjectChange struct {
	InputState  ObjectIn    `json:"inputState"`
	OutputState ObjectOut   `json:"outputState"`
	IDOperation IDOperation `json:"idOperation"`
}

type VersionDigest struct {
	Version uint64 `json:"version"`
	Digest  Digest `json:"digest"`
}

type ObjectIn struct {
	NotExist *Unit          `json:"notExist,omitempty"`
	Exist    *ObjectInState `json:"exist,omitempty"`
}

func (ObjectIn) IsBcsEnum() {}

type ObjectInState struct {
	VersionDigest VersionDigest `json:"versionDigest"`
	Owner         Owner         `json:"owner"`
}

type ObjectOut struct {
	NotExist     *Unit          `json:"notExist,omitempty"`
	ObjectWrite  *ObjectWrite   `json:"objectWrite,omitempty"`
	PackageWrite *VersionDigest `json:"packageWrite,omitempty"`
}

func (ObjectOut) IsBcsEnum() {}

type ObjectWrite struct {
	Digest Digest `json:"digest"`
	Owner  Owner  `json:"owner"`
}

type IDOperation struct {
	None    *Unit `json:"none,omitempty"`
	Created *Unit `json:"created,omitempty"`
	Deleted *Unit `json:"deleted,omitempty"`
}

func (IDOperation) IsBcsEnum() {}

type UnchangedSharedObject struct {
	ObjectID ObjectID            `json:"objectId"`
	Kind     UnchangedSharedKind `json:"kind"`
}

type UnchangedSharedKind struct {
	ReadOnlyRoot   *VersionDigest `json:"readOnlyRoot,omitempty"`
	MutateDeleted  *uint64        `json:"mutateDeleted,omitempty"`
	ReadDeleted    *uint64        `json:"readDeleted,omitempty"`
	Cancelled      *uint64        `json:"cancelled,omitempty"`
	PerEpochConfig *Unit          `json:"perEpochConfig,omitempty"`
}

func (UnchangedSharedKind) IsBcsEnum() {}

// Status returns the execution status of the effects
func (e TransactionEffects) Status() ExecutionStatus {
	switch {
	case e.V1 != nil:
		return e.V1.Status
	case e.V2 != nil:
		return e.V2.Status
	default:
		return ExecutionStatus{}
	}
}

// Digest returns the digest of the transaction the effects belong to
func (e TransactionEffects) Digest() Digest {
	switch {
	case e.V1 != nil:
		return e.V1.TransactionDigest
	case e.V2 != nil:
		return e.V2.TransactionDigest
	default:
		return nil
	}
}

type ExecutionStatus struct {
	Success *Unit             `json:"success,omitempty"`
	Failure *ExecutionFailure `json:"failure,omitempty"`
}

func (ExecutionStatus) IsBcsEnum() {}

// IsSuccess is true when the transaction executed without aborting
func (s ExecutionStatus) IsSuccess() bool {
	return s.Success != nil
}

type ExecutionFailure struct {
	Error   ExecutionFailureStatus `json:"error"`
	Command OptionU64              `json:"command"`
}

// ExecutionFailureStatus is the reason a transaction aborted. Variants
// added by later protocol versions fail to decode.
type ExecutionFailureStatus struct {
	InsufficientGas                               *Unit                            `json:"insufficientGas,omitempty"`
	InvalidGasObject                              *Unit                            `json:"invalidGasObject,omitempty"`
	InvariantViolation                            *Unit                            `json:"invariantViolation,omitempty"`
	FeatureNotYetSupported                        *Unit                            `json:"featureNotYetSupported,omitempty"`
	MoveObjectTooBig                              *SizeLimitExceeded               `json:"moveObjectTooBig,omitempty"`
	MovePackageTooBig                             *SizeLimitExceeded               `json:"movePackageTooBig,omitempty"`
	CircularObjectOwnership                       *CircularObjectOwnership         `json:"circularObjectOwnership,omitempty"`
	InsufficientCoinBalance                       *Unit                            `json:"insufficientCoinBalance,omitempty"`
	CoinBalanceOverflow                           *Unit                            `json:"coinBalanceOverflow,omitempty"`
	PublishErrorNonZeroAddress                    *Unit                            `json:"publishErrorNonZeroAddress,omitempty"`
	SuiMoveVerificationError                      *Unit                            `json:"suiMoveVerificationError,omitempty"`
	MovePrimitiveRuntimeError                     *OptionMoveLocation              `json:"movePrimitiveRuntimeError,omitempty"`
	MoveAbort                                     *MoveAbort                       `json:"moveAbort,omitempty"`
	VMVerificationOrDeserializationError          *Unit                            `json:"vmVerificationOrDeserializationError,omitempty"`
	VMInvariantViolation                          *Unit                            `json:"vmInvariantViolation,omitempty"`
	FunctionNotFound                              *Unit                            `json:"functionNotFound,omitempty"`
	ArityMismatch                                 *Unit                            `json:"arityMismatch,omitempty"`
	TypeArityMismatch                             *Unit                            `json:"typeArityMismatch,omitempty"`
	NonEntryFunctionInvoked                       *Unit                            `json:"nonEntryFunctionInvoked,omitempty"`
	CommandArgumentError                          *CommandArgumentFailure          `json:"commandArgumentError,omitempty"`
	TypeArgumentError                             *TypeArgumentFailure             `json:"typeArgumentError,omitempty"`
	UnusedValueWithoutDrop                        *UnusedValueWithoutDrop          `json:"unusedValueWithoutDrop,omitempty"`
	InvalidPublicFunctionReturnType               *InvalidPublicFunctionReturnType `json:"invalidPublicFunctionReturnType,omitempty"`
	InvalidTransferObject                         *Unit                            `json:"invalidTransferObject,omitempty"`
	EffectsTooLarge                               *SizeLimitExceeded               `json:"effectsTooLarge,omitempty"`
	PublishUpgradeMissingDependency               *Unit                            `json:"publishUpgradeMissingDependency,omitempty"`
	PublishUpgradeDependencyDowngrade             *Unit                            `json:"publishUpgradeDependencyDowngrade,omitempty"`
	PackageUpgradeError                           *PackageUpgradeFailure           `json:"packageUpgradeError,omitempty"`
	WrittenObjectsTooLarge                        *SizeLimitExceeded               `json:"writtenObjectsTooLarge,omitempty"`
	CertificateDenied                             *Unit                            `json:"certificateDenied,omitempty"`
	SuiMoveVerificationTimedout                   *Unit                            `json:"suiMoveVerificationTimedout,omitempty"`
	SharedObjectOperationNotAllowed               *Unit                            `json:"sharedObjectOperationNotAllowed,omitempty"`
	InputObjectDeleted                            *Unit                            `json:"inputObjectDeleted,omitempty"`
	ExecutionCancelledDueToSharedObjectCongestion *CongestedObjects                `json:"executionCancelledDueToSharedObjectCongestion,omitempty"`
	AddressDeniedForCoin                          *AddressDeniedForCoin            `json:"addressDeniedForCoin,omitempty"`
	CoinTypeGlobalPause                           *CoinTypeGlobalPause             `json:"coinTypeGlobalPause,omitempty"`
	ExecutionCancelledDueToRandomnessUnavailable  *Unit                            `json:"executionCancelledDueToRandomnessUnavailable,omitempty"`
	MoveVectorElemTooBig                          *SizeLimitExceeded               `json:"moveVectorElemTooBig,omitempty"`
	MoveRawValueTooBig                            *SizeLimitExceeded               `json:"moveRawValueTooBig,omitempty"`
}

func (ExecutionFailureStatus) IsBcsEnum() {}

type CommandArgumentFailure struct {
	ArgIdx uint16               `json:"argIdx"`
	Kind   CommandArgumentError `json:"kind"`
}

type CommandArgumentError struct {
	TypeMismatch                          *Unit                      `json:"typeMismatch,omitempty"`
	InvalidBCSBytes                       *Unit                      `json:"invalidBcsBytes,omitempty"`
	InvalidUsageOfPureArg                 *Unit                      `json:"invalidUsageOfPureArg,omitempty"`
	InvalidArgumentToPrivateEntryFunction *Unit                      `json:"invalidArgumentToPrivateEntryFunction,omitempty"`
	IndexOutOfBounds                      *IndexOutOfBounds          `json:"indexOutOfBounds,omitempty"`
	SecondaryIndexOutOfBounds             *SecondaryIndexOutOfBounds `json:"secondaryIndexOutOfBounds,omitempty"`
	InvalidResultArity                    *InvalidResultArity        `json:"invalidResultArity,omitempty"`
	InvalidGasCoinUsage                   *Unit                      `json:"invalidGasCoinUsage,omitempty"`
	InvalidValueUsage                     *Unit                      `json:"invalidValueUsage,omitempty"`
	InvalidObjectByValue                  *Unit                      `json:"invalidObjectByValue,omitempty"`
	InvalidObjectByMutRef                 *Unit                      `json:"invalidObjectByMutRef,omitempty"`
	SharedObjectOperationNotAllowed       *Unit                      `json:"sharedObjectOperationNotAllowed,omitempty"`
}

func (CommandArgumentError) IsBcsEnum() {}

type IndexOutOfBounds struct {
	Idx uint16 `json:"idx"`
}

type SecondaryIndexOutOfBounds struct {
	ResultIdx    uint16 `json:"resultIdx"`
	SecondaryIdx uint16 `json:"secondaryIdx"`
}

type InvalidResultArity struct {
	ResultIdx uint16 `json:"resultIdx"`
}

type TypeArgumentFailure struct {
	ArgumentIdx uint16            `json:"argumentIdx"`
	Kind        TypeArgumentError `json:"kind"`
}

type TypeArgumentError struct {
	TypeNotFound           *Unit `json:"typeNotFound,omitempty"`
	ConstraintNotSatisfied *Unit `json:"constraintNotSatisfied,omitempty"`
}

func (TypeArgumentError) IsBcsEnum() {}

type UnusedValueWithoutDrop struct {
	ResultIdx    uint16 `json:"resultIdx"`
	SecondaryIdx uint16 `json:"secondaryIdx"`
}

type InvalidPublicFunctionReturnType struct {
	Idx uint16 `json:"idx"`
}

type PackageUpgradeFailure struct {
	UpgradeError PackageUpgradeError `json:"upgradeError"`
}

type PackageUpgradeError struct {
	UnableToFetchPackage  *PackageIDRef         `json:"unableToFetchPackage,omitempty"`
	NotAPackage           *PackageIDRef         `json:"notAPackage,omitempty"`
	IncompatibleUpgrade   *Unit                 `json:"incompatibleUpgrade,omitempty"`
	DigestDoesNotMatch    *DigestMismatch       `json:"digestDoesNotMatch,omitempty"`
	UnknownUpgradePolicy  *UnknownUpgradePolicy `json:"unknownUpgradePolicy,omitempty"`
	PackageIDDoesNotMatch *PackageIDMismatch    `json:"packageIdDoesNotMatch,omitempty"`
}

func (PackageUpgradeError) IsBcsEnum() {}

type PackageIDRef struct {
	ID ObjectID `json:"id"`
}

type DigestMismatch struct {
	Digest []byte `json:"digest"`
}

type UnknownUpgradePolicy struct {
	Policy uint8 `json:"policy"`
}

type PackageIDMismatch struct {
	PackageID ObjectID `json:"packageId"`
	TicketID  ObjectID `json:"ticketId"`
}

type CongestedObjects struct {
	Objects []ObjectID `json:"objects"`
}

type AddressDeniedForCoin struct {
	Address  Address `json:"address"`
	CoinType string  `json:"coinType"`
}

type CoinTypeGlobalPause struct {
	CoinType string `json:"coinType"`
}

type SizeLimitExceeded struct {
	Size uint64 `json:"size"`
	Max  uint64 `json:"max"`
}

type CircularObjectOwnership struct {
	Object ObjectID `json:"object"`
}

type MoveAbort struct {
	Location MoveLocation `json:"location"`
	Code     uint64       `json:"code"`
}

type ModuleID struct {
	Address Address `json:"address"`
	Name    string  `json:"name"`
}

type MoveLocation struct {
	Module       ModuleID     `json:"module"`
	Function     uint16       `json:"function"`
	Instruction  uint16       `json:"instruction"`
	FunctionName OptionString `json:"functionName"`
}

type OptionMoveLocation struct {
	None *Unit         `json:"none,omitempty"`
	Some *MoveLocation `json:"some,omitempty"`
}

func (OptionMoveLocation) IsBcsEnum() {}

type OptionU32 struct {
	None *Unit   `json:"none,omitempty"`
	Some *uint32 `json:"some,omitempty"`
}

func (OptionU32) IsBcsEnum() {}

type OptionU64 struct {
	None *Unit   `json:"none,omitempty"`
	Some *uint64 `json:"some,omitempty"`
}

func (OptionU64) IsBcsEnum() {}

type OptionString struct {
	None *Unit   `json:"none,omitempty"`
	Some *string `json:"some,omitempty"`
}

func (OptionString) IsBcsEnum() {}

type OptionDigest struct {
	None *Unit   `json:"none,omitempty"`
	Some *Digest `json:"some,omitempty"`
}

func (OptionDigest) IsBcsEnum() {}

type GasCostSummary struct {
	ComputationCost         uint64 `json:"computationCost"`
	StorageCost             uint64 `json:"storageCost"`
	StorageRebate           uint64 `json:"storageRebate"`
	NonRefundableStorageFee uint64 `json:"nonRefundableStorageFee"`
}

type ModifiedVersion struct {
	ObjectID ObjectID `json:"objectId"`
	Version  uint64   `json:"version"`
}

type OwnedObjectRef struct {
	Reference ObjectRef `json:"reference"`
	Owner     Owner     `json:"owner"`
}

// Owner is the ownership of an object
type Owner struct {
	AddressOwner *Address     `json:"AddressOwner,omitempty"`
	ObjectOwner  *Address     `json:"ObjectOwner,omitempty"`
	Shared       *SharedOwner `json:"Shared,omitempty"`
	Immutable    *Unit        `json:"-"`

	ConsensusAddressOwner *ConsensusAddressOwner `json:"ConsensusAddressOwner,omitempty"`
}

func (Owner) IsBcsEnum() {}

type SharedOwner struct {
	InitialSharedVersion uint64 `json:"initial_shared_version"`
}

// ConsensusAddressOwner is a single owner whose object is sequenced by
// consensus from StartVersion on
type ConsensusAddressOwner struct {
	StartVersion uint64  `json:"start_version"`
	Owner        Address `json:"owner"`
}
