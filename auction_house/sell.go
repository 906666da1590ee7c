package auction_house

import (
	"github.com/gagliardetto/solana-go"
	atok "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
)

// SellInstructions builds the listing bundle: optional migration of the asset
// into the seller's associated account, then one sell instruction. The seller
// wallet is the only signer.
func (aucHouse *AuctionHouseActor) SellInstructions(
	seller solana.PrivateKey,
	mint solana.PublicKey,
	price float64,
) (InstructionBundle, error) {
	priceBaseUnits, err := aucHouse.priceToBaseUnits(price)
	if err != nil {
		return InstructionBundle{}, err
	}
	sellerAta, err := getTokenWallet(seller.PublicKey(), mint)
	if err != nil {
		return InstructionBundle{}, err
	}
	migration, err := aucHouse.migrateToCanonicalAccount(seller, mint, sellerAta)
	if err != nil {
		return InstructionBundle{}, err
	}
	metadata, err := getMetadata(mint)
	if err != nil {
		return InstructionBundle{}, err
	}
	programAsSigner, programAsSignerBump, err := getProgramAsSigner()
	if err != nil {
		return InstructionBundle{}, err
	}
	tradeState, tradeStateBump, err := aucHouse.getTradeState(seller.PublicKey(), sellerAta, mint, priceBaseUnits, wholeTokenSize)
	if err != nil {
		return InstructionBundle{}, err
	}
	freeTradeState, freeTradeStateBump, err := aucHouse.getFreeTradeState(seller.PublicKey(), sellerAta, mint, wholeTokenSize)
	if err != nil {
		return InstructionBundle{}, err
	}
	sellInstruction, err := auction_house_types.NewSellInstructionBuilder().
		SetTradeStateBump(tradeStateBump).
		SetFreeTradeStateBump(freeTradeStateBump).
		SetProgramAsSignerBump(programAsSignerBump).
		SetBuyerPrice(priceBaseUnits).
		SetTokenSize(wholeTokenSize).
		SetWalletAccount(seller.PublicKey()).
		SetTokenAccountAccount(sellerAta).
		SetMetadataAccount(metadata).
		SetAuthorityAccount(aucHouse.AuctionHouseData.Authority).
		SetAuctionHouseAccount(aucHouse.AuctionHouseAccount).
		SetAuctionHouseFeeAccountAccount(aucHouse.AuctionHouseData.AuctionHouseFeeAccount).
		SetSellerTradeStateAccount(tradeState).
		SetFreeSellerTradeStateAccount(freeTradeState).
		SetTokenProgramAccount(solana.TokenProgramID).
		SetSystemProgramAccount(solana.SystemProgramID).
		SetProgramAsSignerAccount(programAsSigner).
		SetRentAccount(solana.SysVarRentPubkey).
		ValidateAndBuild()
	if err != nil {
		return InstructionBundle{}, err
	}
	return InstructionBundle{
		Instructions: append(migration, sellInstruction),
	}, nil
}

// Sell lists the asset and reports the outcome as a response record; failures
// end up in the Error field rather than being raised past this point.
func (aucHouse *AuctionHouseActor) Sell(
	seller solana.PrivateKey,
	mint solana.PublicKey,
	price float64,
) SellResponse {
	response := SellResponse{
		SellerWallet: seller.PublicKey().String(),
		Mint:         mint.String(),
		Price:        price,
		AuctionHouse: aucHouse.AuctionHouseAccount.String(),
	}
	bundle, err := aucHouse.SellInstructions(seller, mint, price)
	if err != nil {
		response.Error = err.Error()
		return response
	}
	sig, err := aucHouse.submit(seller, bundle)
	if !sig.IsZero() {
		response.Txn = sig.String()
	}
	if err != nil {
		response.Error = err.Error()
		return response
	}
	response.Status = "open"
	return response
}

// migrateToCanonicalAccount returns the instructions needed to move the asset
// into the seller's associated account when it currently sits elsewhere, or
// nil when the associated account already holds it.
func (aucHouse *AuctionHouseActor) migrateToCanonicalAccount(
	seller solana.PrivateKey,
	mint solana.PublicKey,
	sellerAta solana.PublicKey,
) ([]solana.Instruction, error) {
	holdingAccount, err := aucHouse.largestTokenAccount(mint)
	if err != nil {
		return nil, err
	}
	if holdingAccount.Equals(sellerAta) {
		return nil, nil
	}
	var instructions []solana.Instruction
	if _, err := aucHouse.Reader.GetAccountInfo(aucHouse.Wm.Context, sellerAta); err != nil {
		if !errors.Is(err, rpc.ErrNotFound) {
			return nil, errors.Wrapf(err, "failed to check token account %s", sellerAta)
		}
		createInstruction, err := atok.NewCreateInstructionBuilder().
			SetPayer(seller.PublicKey()).
			SetWallet(seller.PublicKey()).
			SetMint(mint).
			ValidateAndBuild()
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, createInstruction)
	}
	transferInstruction, err := token.NewTransferInstructionBuilder().
		SetAmount(wholeTokenSize).
		SetSourceAccount(holdingAccount).
		SetDestinationAccount(sellerAta).
		SetOwnerAccount(seller.PublicKey()).
		ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	return append(instructions, transferInstruction), nil
}
