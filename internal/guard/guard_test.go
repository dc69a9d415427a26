package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinvest-mcp/internal/domain"
)

func TestAccountGateResolve(t *testing.T) {
	gate := New("2000000001")

	id, err := gate.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "2000000001", id)

	id, err = gate.Resolve("2000000001")
	require.NoError(t, err)
	assert.Equal(t, "2000000001", id)
}

func TestAccountGateRejectsForeignAccount(t *testing.T) {
	gate := New("2000000001")

	_, err := gate.Resolve("2000000002")
	require.Error(t, err)
	assert.True(t, domain.IsAuthorization(err))
	assert.Contains(t, err.Error(), "2000000002")
}
