package auction_house

import (
	"encoding/binary"

	token_metadata "github.com/gagliardetto/metaplex-go/clients/token-metadata"
	"github.com/gagliardetto/solana-go"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
)

// The on-chain program recomputes every address below from the same seeds;
// any divergence makes it reject the transaction, so the seed tuples here are
// part of the protocol contract.

func (aucHouse *AuctionHouseActor) getTradeState(
	wallet,
	tokenAccount,
	tokenMint solana.PublicKey,
	price uint64,
	tokenSize uint64,
) (solana.PublicKey, uint8, error) {
	priceBytes := make([]byte, 8)
	tokenSizeBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(priceBytes, price)
	binary.LittleEndian.PutUint64(tokenSizeBytes, tokenSize)
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(auctionHouseSeed),
			wallet.Bytes(),
			aucHouse.AuctionHouseAccount.Bytes(),
			tokenAccount.Bytes(),
			aucHouse.AuctionHouseData.TreasuryMint.Bytes(),
			tokenMint.Bytes(),
			priceBytes,
			tokenSizeBytes,
		},
		auction_house_types.ProgramID,
	)
}

// getFreeTradeState derives the price-zero trade state the program uses to
// mark a listing as cancellable regardless of its listed price.
func (aucHouse *AuctionHouseActor) getFreeTradeState(
	wallet,
	tokenAccount,
	tokenMint solana.PublicKey,
	tokenSize uint64,
) (solana.PublicKey, uint8, error) {
	return aucHouse.getTradeState(wallet, tokenAccount, tokenMint, 0, tokenSize)
}

func (aucHouse *AuctionHouseActor) getBuyerEscrow(wallet solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(auctionHouseSeed), aucHouse.AuctionHouseAccount.Bytes(), wallet.Bytes()},
		auction_house_types.ProgramID,
	)
}

func getProgramAsSigner() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(auctionHouseSeed), []byte(programSignerSeed)},
		auction_house_types.ProgramID,
	)
}

func getTokenWallet(wallet solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	return addr, err
}

func getMetadata(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{
			[]byte(metadataSeed),
			token_metadata.ProgramID.Bytes(),
			mint.Bytes(),
		},
		token_metadata.ProgramID,
	)
	return addr, err
}
