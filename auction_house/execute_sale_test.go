package auction_house

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSaleInstructions_TokenMintRoyaltyExpansion(t *testing.T) {
	buyer := solana.NewWallet().PublicKey()
	seller := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	treasuryMint := solana.NewWallet().PublicKey()
	creatorOne := solana.NewWallet().PublicKey()
	creatorTwo := solana.NewWallet().PublicKey()

	reader := newFakeReader()
	reader.accounts[treasuryMint] = accountResult(t, encodeMint(t, 6))
	reader.accounts[mustMetadata(t, mint)] = accountResult(t, metadataBytes(t, mint, []solana.PublicKey{creatorOne, creatorTwo}))
	actor := newTestActor(t, treasuryMint, reader)

	bundle, err := actor.ExecuteSaleInstructions(buyer, seller, mint, 2.5)
	require.NoError(t, err)
	require.Len(t, bundle.Instructions, 1)
	assert.Empty(t, bundle.Signers)

	accounts := bundle.Instructions[0].Accounts()
	// 21 fixed accounts plus two entries per creator
	require.Len(t, accounts, 25)
	assert.Equal(t, creatorOne, accounts[21].PublicKey)
	assert.Equal(t, mustAta(t, creatorOne, treasuryMint), accounts[22].PublicKey)
	assert.Equal(t, creatorTwo, accounts[23].PublicKey)
	assert.Equal(t, mustAta(t, creatorTwo, treasuryMint), accounts[24].PublicKey)
	for i := 21; i < 25; i++ {
		assert.True(t, accounts[i].IsWritable, "royalty account %d must be writable", i)
	}

	// token path pays the seller through the treasury mint associated account
	assert.Equal(t, mustAta(t, seller, treasuryMint), accounts[7].PublicKey)
}

func TestExecuteSaleInstructions_NativeRoyaltyExpansion(t *testing.T) {
	buyer := solana.NewWallet().PublicKey()
	seller := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	creatorOne := solana.NewWallet().PublicKey()
	creatorTwo := solana.NewWallet().PublicKey()

	reader := newFakeReader()
	reader.accounts[mustMetadata(t, mint)] = accountResult(t, metadataBytes(t, mint, []solana.PublicKey{creatorOne, creatorTwo}))
	actor := newTestActor(t, solana.WrappedSol, reader)

	bundle, err := actor.ExecuteSaleInstructions(buyer, seller, mint, 2.5)
	require.NoError(t, err)

	accounts := bundle.Instructions[0].Accounts()
	// one entry per creator on the native path
	require.Len(t, accounts, 23)
	assert.Equal(t, creatorOne, accounts[21].PublicKey)
	assert.Equal(t, creatorTwo, accounts[22].PublicKey)

	// native path pays the seller wallet directly
	assert.Equal(t, seller, accounts[7].PublicKey)
	assert.Equal(t, buyer, accounts[0].PublicKey)
	assert.Equal(t, seller, accounts[1].PublicKey)
	assert.Equal(t, mustAta(t, seller, mint), accounts[2].PublicKey)
	assert.Equal(t, mustAta(t, buyer, mint), accounts[8].PublicKey)
}

func TestExecuteSaleInstructions_NoCreators(t *testing.T) {
	buyer := solana.NewWallet().PublicKey()
	seller := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	reader := newFakeReader()
	reader.accounts[mustMetadata(t, mint)] = accountResult(t, metadataBytes(t, mint, nil))
	actor := newTestActor(t, solana.WrappedSol, reader)

	bundle, err := actor.ExecuteSaleInstructions(buyer, seller, mint, 1)
	require.NoError(t, err)
	require.Len(t, bundle.Instructions[0].Accounts(), 21)
}

func TestExecuteSaleInstructions_MetadataLookupFailure(t *testing.T) {
	actor := newTestActor(t, solana.WrappedSol, newFakeReader())

	_, err := actor.ExecuteSaleInstructions(
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		1,
	)
	require.Error(t, err)
}

func TestBuyAndExecuteSale_FailureEndsUpInResponse(t *testing.T) {
	buyer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	seller := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	// the buy side can be built but the metadata fetch for settlement fails
	reader := newFakeReader()
	reader.largest[mint] = solana.NewWallet().PublicKey()
	actor := newTestActor(t, solana.WrappedSol, reader)

	response := actor.BuyAndExecuteSale(buyer, seller, mint, 2.5)
	assert.NotEmpty(t, response.Error)
	assert.Empty(t, response.Txn)
	assert.Equal(t, buyer.PublicKey().String(), response.BuyerWallet)
	assert.Equal(t, seller.String(), response.SellerWallet)
	assert.Equal(t, mint.String(), response.Mint)
	assert.Equal(t, 2.5, response.Price)
}
