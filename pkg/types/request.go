package types

// TransactionHeader is the part of the signed envelope the handler reads.
type TransactionHeader struct {
	SignerPublicKey string
	FamilyName      string
	FamilyVersion   string
	Inputs          []string
	Outputs         []string
	Nonce           string
}

// ProcessRequest is one transaction delivered by the validator.
type ProcessRequest struct {
	Header    TransactionHeader
	Payload   []byte
	Signature string
}
