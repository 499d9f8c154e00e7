package auth

// Identity is what the external provider vouches for after a completed
// handshake. It contains facts only, no decisions.
type Identity struct {
	ExternalID  string // stable provider-issued subject
	DisplayName string // informational, may change upstream
}
