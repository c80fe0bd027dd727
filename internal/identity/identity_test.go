package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const agent = "Mozilla/5.0 (X11; Linux x86_64)"

func TestDeriveDeterministic(t *testing.T) {
	require := require.New(t)
	a := Derive("203.0.113.7", agent)
	b := Derive("203.0.113.7", agent)
	require.Equal(a, b)
	require.Len(a, 64)

	sum := sha256.Sum256([]byte("203.0.113.7-" + agent))
	require.Equal(hex.EncodeToString(sum[:]), a)
}

func TestDeriveLoopbackVariants(t *testing.T) {
	require := require.New(t)
	want := Derive("127.0.0.1", agent)
	require.Equal(want, Derive("::1", agent))
	require.Equal(want, Derive("::ffff:127.0.0.1", agent))
}

func TestDeriveDistinguishesRequesters(t *testing.T) {
	require := require.New(t)
	base := Derive("198.51.100.1", agent)
	require.NotEqual(base, Derive("198.51.100.2", agent))
	require.NotEqual(base, Derive("198.51.100.1", agent+" Firefox"))
}

func TestDeriveMissingValues(t *testing.T) {
	require := require.New(t)
	require.Equal(Derive("unknown", "unknown"), Derive("", ""))
	require.Equal(Derive("10.0.0.1", "unknown"), Derive("10.0.0.1", ""))
	require.Equal(Derive("unknown", agent), Derive("", agent))
}

func TestRequesterVoterID(t *testing.T) {
	r := Requester{Address: "::1", UserAgent: agent}
	require.Equal(t, Derive("127.0.0.1", agent), r.VoterID())
}
