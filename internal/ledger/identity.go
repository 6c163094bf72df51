package ledger

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/verifyx/provenance-api/internal/domain"
)

// Identity is the service's sole signing credential bound to one contract on one chain.
// It is constructed once at process start and passed by reference to all components.
type Identity struct {
	chainID  *big.Int
	contract common.Address
	key      *ecdsa.PrivateKey
	address  common.Address
	signer   types.Signer
}

// NewIdentity parses the hex-encoded private key and binds it to the given chain and contract
func NewIdentity(privateKeyHex string, chainID int64, contractAddress string) (*Identity, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	if !domain.IsValidAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address: %s", contractAddress)
	}

	id := big.NewInt(chainID)
	return &Identity{
		chainID:  id,
		contract: common.HexToAddress(contractAddress),
		key:      key,
		address:  crypto.PubkeyToAddress(key.PublicKey),
		signer:   types.LatestSignerForChainID(id),
	}, nil
}

// Address returns the signing account address
func (i *Identity) Address() common.Address {
	return i.address
}

// Contract returns the bound contract address
func (i *Identity) Contract() common.Address {
	return i.contract
}

// ChainID returns the bound chain id
func (i *Identity) ChainID() *big.Int {
	return new(big.Int).Set(i.chainID)
}

// SignTx signs a transaction with the identity's key
func (i *Identity) SignTx(tx *types.Transaction) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, i.signer, i.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}
