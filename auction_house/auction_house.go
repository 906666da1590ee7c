package auction_house

import (
	"context"

	bin "github.com/gagliardetto/binary"
	token_metadata "github.com/gagliardetto/metaplex-go/clients/token-metadata"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
	"github.com/Aether-eum/auction-house-actions/wallet_manager"
)

// NewAuctionHouseActor loads the auction house configuration account and
// returns an actor bound to it.
func NewAuctionHouseActor(wm *wallet_manager.WalletManager, auctionHouseAccount solana.PublicKey) (*AuctionHouseActor, error) {
	return NewAuctionHouseActorWithReader(wm, wm.Client, auctionHouseAccount)
}

// NewAuctionHouseActorWithReader is NewAuctionHouseActor with an explicit
// read client, so state loading and lookups can be backed by something other
// than the submission client.
func NewAuctionHouseActorWithReader(
	wm *wallet_manager.WalletManager,
	reader ChainReader,
	auctionHouseAccount solana.PublicKey,
) (*AuctionHouseActor, error) {
	aucHouseData, err := getAuctionHouseAccountData(wm.Context, reader, auctionHouseAccount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auction house account data")
	}
	return &AuctionHouseActor{
		Wm:                  wm,
		Reader:              reader,
		AuctionHouseAccount: auctionHouseAccount,
		AuctionHouseData:    aucHouseData,
	}, nil
}

func getAuctionHouseAccountData(
	ctx context.Context,
	reader ChainReader,
	auctionHouseAccountKey solana.PublicKey,
) (*auction_house_types.AuctionHouse, error) {
	accountRaw, err := reader.GetAccountInfo(ctx, auctionHouseAccountKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch auction house account %s", auctionHouseAccountKey)
	}
	return auction_house_types.ParseAccount_AuctionHouse(accountRaw.Value.Data.GetBinary())
}

// submit sends one bundle as a single transaction paid and signed by
// feePayer plus the bundle's own ephemeral signers.
func (aucHouse *AuctionHouseActor) submit(feePayer solana.PrivateKey, bundle InstructionBundle) (solana.Signature, error) {
	signers := append(append([]solana.PrivateKey{}, bundle.Signers...), feePayer)
	return aucHouse.Wm.SendAndConfirmInstructions(feePayer.PublicKey(), bundle.Instructions, signers)
}

// largestTokenAccount returns the token account currently holding the largest
// balance of the mint. For NFTs that is the single holding account, which may
// differ from the owner's associated account.
func (aucHouse *AuctionHouseActor) largestTokenAccount(mint solana.PublicKey) (solana.PublicKey, error) {
	res, err := aucHouse.Reader.GetTokenLargestAccounts(aucHouse.Wm.Context, mint, aucHouse.Wm.Commitment)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "failed to get largest token accounts for mint %s", mint)
	}
	if len(res.Value) == 0 {
		return solana.PublicKey{}, errors.Errorf("mint %s has no token accounts", mint)
	}
	return res.Value[0].Address, nil
}

// assetCreators returns the creator list from the asset's metadata account,
// preserving on-chain order. Settlement pays royalties positionally, so
// callers must not reorder it.
func (aucHouse *AuctionHouseActor) assetCreators(mint solana.PublicKey) ([]solana.PublicKey, error) {
	metadataAccount, err := getMetadata(mint)
	if err != nil {
		return nil, err
	}
	metadataRaw, err := aucHouse.Reader.GetAccountInfo(aucHouse.Wm.Context, metadataAccount)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch metadata for mint %s", mint)
	}
	var metadata token_metadata.Metadata
	if err := bin.NewBorshDecoder(metadataRaw.Value.Data.GetBinary()).Decode(&metadata); err != nil {
		return nil, errors.Wrapf(err, "failed to decode metadata for mint %s", mint)
	}
	if metadata.Data.Creators == nil {
		return nil, nil
	}
	creators := make([]solana.PublicKey, 0, len(*metadata.Data.Creators))
	for _, creator := range *metadata.Data.Creators {
		creators = append(creators, creator.Address)
	}
	return creators, nil
}
