package transaction

// ExecuteTransactionRequest is the body of a request to execute a
// transaction that the caller built and signed
type ExecuteTransactionRequest struct {
	// TxBytes is the base64 encoding of the BCS serialized
	// TransactionData
	TxBytes string `json:"txBytes"`

	// Signatures are the base64 encoded signatures over TxBytes, each
	// one in the flag || signature || public key layout. Their order
	// is kept when they are forwarded to the node
	Signatures []string `json:"signatures"`
}
