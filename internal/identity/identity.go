// Package identity derives pseudonymous voter identifiers for anonymous
// requesters. The identifier is stable per address and client agent, which
// makes it a coarse duplicate filter rather than proof of who someone is:
// two people behind the same NAT using the same browser share an identifier.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	unknown        = "unknown"
	loopbackV4     = "127.0.0.1"
	loopbackV6     = "::1"
	loopbackMapped = "::ffff:127.0.0.1"
)

// Requester is the transport metadata of an anonymous caller.
type Requester struct {
	Address   string
	UserAgent string
}

// VoterID derives the identifier of r.
func (r Requester) VoterID() string {
	return Derive(r.Address, r.UserAgent)
}

// Derive returns the hex encoded SHA-256 of the normalized address and the
// agent string. Missing values fall back to "unknown" so an identifier can
// always be produced.
func Derive(address, agent string) string {
	address = NormalizeAddress(address)
	if agent == "" {
		agent = unknown
	}
	sum := sha256.Sum256([]byte(address + "-" + agent))
	return hex.EncodeToString(sum[:])
}

// NormalizeAddress folds the loopback spellings a local client can show up
// with into 127.0.0.1.
func NormalizeAddress(address string) string {
	switch address {
	case "":
		return unknown
	case loopbackV6, loopbackMapped:
		return loopbackV4
	}
	return address
}
