package tx

import "github.com/oasislabs/sui-gateway/types"

// Assemble combines decoded data and signatures into a transaction
// ready for submission. An empty signature list is passed through and
// left for the node to reject. The caller's bytes are kept so the node
// receives exactly what was signed.
func Assemble(in *DecodedInput) types.SignedTransaction {
	return types.NewSignedTransaction(in.Data, in.Signatures).WithTxBytes(in.TxBytes)
}
