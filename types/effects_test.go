package types

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failureStatus(status ExecutionFailureStatus) ExecutionStatus {
	return ExecutionStatus{Failure: &ExecutionFailure{
		Error:   status,
		Command: OptionU64{None: &Unit{}},
	}}
}

func TestExecutionFailureStatusLateVariants(t *testing.T) {
	for _, c := range []struct {
		status  ExecutionFailureStatus
		variant byte
	}{
		{ExecutionFailureStatus{CommandArgumentError: &CommandArgumentFailure{
			ArgIdx: 3,
			Kind:   CommandArgumentError{IndexOutOfBounds: &IndexOutOfBounds{Idx: 9}},
		}}, 19},
		{ExecutionFailureStatus{PackageUpgradeError: &PackageUpgradeFailure{
			UpgradeError: PackageUpgradeError{DigestDoesNotMatch: &DigestMismatch{Digest: []byte{1, 2}}},
		}}, 27},
		{ExecutionFailureStatus{AddressDeniedForCoin: &AddressDeniedForCoin{
			Address:  MustParseAddress("0x1234"),
			CoinType: "0x2::sui::SUI",
		}}, 34},
		{ExecutionFailureStatus{MoveRawValueTooBig: &SizeLimitExceeded{Size: 10, Max: 5}}, 38},
	} {
		b, err := Encode(failureStatus(c.status))
		require.Nil(t, err)
		assert.Equal(t, []byte{1, c.variant}, b[:2])

		var status ExecutionStatus
		require.Nil(t, Decode(b, &status), "variant %d", c.variant)
		assert.False(t, status.IsSuccess())
		assert.Equal(t, c.status, status.Failure.Error)
	}
}

func TestExecutionFailureStatusUnknownVariant(t *testing.T) {
	var status ExecutionStatus
	err := Decode([]byte{1, 39, 0}, &status)
	assert.True(t, errors.Is(err, ErrUnknownVariant), "%v", err)
}

func TestTransactionEffectsV2(t *testing.T) {
	gasIndex := uint32(0)
	owner := MustParseAddress("0x1234")
	effects := TransactionEffects{V2: &TransactionEffectsV2{
		Status:            ExecutionStatus{Success: &Unit{}},
		ExecutedEpoch:     3,
		TransactionDigest: Digest(make([]byte, DigestLength)),
		GasObjectIndex:    OptionU32{Some: &gasIndex},
		EventsDigest:      OptionDigest{None: &Unit{}},
		Dependencies:      []Digest{},
		LamportVersion:    9,
		ChangedObjects: []ChangedObject{{
			ObjectID: MustParseAddress("0x99"),
			Change: EffectsObjectChange{
				InputState: ObjectIn{Exist: &ObjectInState{
					VersionDigest: VersionDigest{Version: 8, Digest: Digest(make([]byte, DigestLength))},
					Owner:         Owner{ConsensusAddressOwner: &ConsensusAddressOwner{StartVersion: 2, Owner: owner}},
				}},
				OutputState: ObjectOut{NotExist: &Unit{}},
				IDOperation: IDOperation{Deleted: &Unit{}},
			},
		}},
		UnchangedSharedObjects: []UnchangedSharedObject{{
			ObjectID: MustParseAddress("0x8"),
			Kind:     UnchangedSharedKind{PerEpochConfig: &Unit{}},
		}},
		AuxDataDigest: OptionDigest{None: &Unit{}},
	}}

	b, err := Encode(effects)
	require.Nil(t, err)
	assert.Equal(t, byte(1), b[0])

	var decoded TransactionEffects
	require.Nil(t, Decode(b, &decoded))
	require.NotNil(t, decoded.V2)
	assert.True(t, decoded.Status().IsSuccess())
	assert.Equal(t, effects.Digest(), decoded.Digest())
	assert.Equal(t, owner, decoded.V2.ChangedObjects[0].Change.InputState.Exist.Owner.ConsensusAddressOwner.Owner)

	again, err := Encode(decoded)
	assert.Nil(t, err)
	assert.Equal(t, b, again)
}

func TestTransactionEffectsUnknownVersion(t *testing.T) {
	var effects TransactionEffects
	err := Decode([]byte{2, 0}, &effects)
	assert.True(t, errors.Is(err, ErrUnknownVariant), "%v", err)
}
