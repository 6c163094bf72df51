package ledger_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verifyx/provenance-api/internal/ledger"
)

const (
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testContract   = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
)

func TestNewIdentity(t *testing.T) {
	id, err := ledger.NewIdentity(testPrivateKey, 1337, testContract)
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress(testAddress), id.Address())
	assert.Equal(t, common.HexToAddress(testContract), id.Contract())
	assert.Equal(t, int64(1337), id.ChainID().Int64())
}

func TestNewIdentityStripsHexPrefix(t *testing.T) {
	id, err := ledger.NewIdentity("0x"+testPrivateKey, 1, testContract)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), id.Address())
}

func TestNewIdentityInvalidKey(t *testing.T) {
	_, err := ledger.NewIdentity("not-a-key", 1, testContract)
	assert.Error(t, err)
}

func TestNewIdentityInvalidContractAddress(t *testing.T) {
	_, err := ledger.NewIdentity(testPrivateKey, 1, "not-an-address")
	assert.Error(t, err)
}

func TestIdentitySignTx(t *testing.T) {
	id, err := ledger.NewIdentity(testPrivateKey, 1337, testContract)
	require.NoError(t, err)

	to := common.HexToAddress(testContract)
	tx := types.NewTransaction(7, to, big.NewInt(0), 100000, big.NewInt(1), []byte{0x01})

	signed, err := id.SignTx(tx)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1337)), signed)
	require.NoError(t, err)
	assert.Equal(t, id.Address(), sender)
}
