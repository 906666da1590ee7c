package auction_house

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
)

func TestSellInstructions_AssetAlreadyInCanonicalAccount(t *testing.T) {
	seller, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.NewWallet().PublicKey()
	sellerAta := mustAta(t, seller.PublicKey(), mint)

	reader := newFakeReader()
	reader.largest[mint] = sellerAta
	actor := newTestActor(t, solana.WrappedSol, reader)

	bundle, err := actor.SellInstructions(seller, mint, 2.5)
	require.NoError(t, err)

	require.Len(t, bundle.Instructions, 1)
	assert.Empty(t, bundle.Signers)

	instruction := bundle.Instructions[0]
	assert.Equal(t, auction_house_types.ProgramID, instruction.ProgramID())
	accounts := instruction.Accounts()
	require.Len(t, accounts, 12)
	assert.Equal(t, seller.PublicKey(), accounts[0].PublicKey)
	assert.Equal(t, sellerAta, accounts[1].PublicKey)

	data, err := instruction.Data()
	require.NoError(t, err)
	assert.Equal(t, auction_house_types.Instruction_Sell[:], data[:8])
}

func TestSellInstructions_MigratesFromNonCanonicalAccount(t *testing.T) {
	seller, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.NewWallet().PublicKey()
	holdingAccount := solana.NewWallet().PublicKey()

	reader := newFakeReader()
	reader.largest[mint] = holdingAccount
	actor := newTestActor(t, solana.WrappedSol, reader)

	bundle, err := actor.SellInstructions(seller, mint, 1)
	require.NoError(t, err)

	// create associated account, transfer the asset into it, then list
	require.Len(t, bundle.Instructions, 3)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, bundle.Instructions[0].ProgramID())
	assert.Equal(t, solana.TokenProgramID, bundle.Instructions[1].ProgramID())
	assert.Equal(t, auction_house_types.ProgramID, bundle.Instructions[2].ProgramID())
	assert.Empty(t, bundle.Signers)
}

func TestSellInstructions_SkipsCreateWhenAccountExists(t *testing.T) {
	seller, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.NewWallet().PublicKey()
	holdingAccount := solana.NewWallet().PublicKey()
	sellerAta := mustAta(t, seller.PublicKey(), mint)

	reader := newFakeReader()
	reader.largest[mint] = holdingAccount
	reader.accounts[sellerAta] = accountResult(t, make([]byte, 165))
	actor := newTestActor(t, solana.WrappedSol, reader)

	bundle, err := actor.SellInstructions(seller, mint, 1)
	require.NoError(t, err)

	require.Len(t, bundle.Instructions, 2)
	assert.Equal(t, solana.TokenProgramID, bundle.Instructions[0].ProgramID())
	assert.Equal(t, auction_house_types.ProgramID, bundle.Instructions[1].ProgramID())
}

func TestSell_LookupFailureEndsUpInResponse(t *testing.T) {
	seller, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	mint := solana.NewWallet().PublicKey()

	// no token accounts exist for the mint
	actor := newTestActor(t, solana.WrappedSol, newFakeReader())

	response := actor.Sell(seller, mint, 2.5)
	assert.NotEmpty(t, response.Error)
	assert.Empty(t, response.Txn)
	assert.Empty(t, response.Status)
	assert.Equal(t, seller.PublicKey().String(), response.SellerWallet)
	assert.Equal(t, mint.String(), response.Mint)
	assert.Equal(t, 2.5, response.Price)
	assert.Equal(t, actor.AuctionHouseAccount.String(), response.AuctionHouse)
}
