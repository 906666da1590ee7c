package auction_house

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
)

// CancelInstructions builds the bundle withdrawing a listing. The price must
// be the one the listing was created at: it is part of the trade state seeds,
// so a different price derives an address with no on-chain record and the
// program rejects the transaction instead of cancelling anything else.
func (aucHouse *AuctionHouseActor) CancelInstructions(
	seller solana.PublicKey,
	mint solana.PublicKey,
	price float64,
) (InstructionBundle, error) {
	priceBaseUnits, err := aucHouse.priceToBaseUnits(price)
	if err != nil {
		return InstructionBundle{}, err
	}
	sellerAta, err := getTokenWallet(seller, mint)
	if err != nil {
		return InstructionBundle{}, err
	}
	tradeState, _, err := aucHouse.getTradeState(seller, sellerAta, mint, priceBaseUnits, wholeTokenSize)
	if err != nil {
		return InstructionBundle{}, err
	}
	cancelInstruction, err := auction_house_types.NewCancelInstructionBuilder().
		SetBuyerPrice(priceBaseUnits).
		SetTokenSize(wholeTokenSize).
		SetWalletAccount(seller).
		SetTokenAccountAccount(sellerAta).
		SetTokenMintAccount(mint).
		SetAuthorityAccount(aucHouse.AuctionHouseData.Authority).
		SetAuctionHouseAccount(aucHouse.AuctionHouseAccount).
		SetAuctionHouseFeeAccountAccount(aucHouse.AuctionHouseData.AuctionHouseFeeAccount).
		SetTradeStateAccount(tradeState).
		SetTokenProgramAccount(solana.TokenProgramID).
		ValidateAndBuild()
	if err != nil {
		return InstructionBundle{}, err
	}
	return InstructionBundle{
		Instructions: []solana.Instruction{cancelInstruction},
	}, nil
}

// Cancel withdraws a listing and reports the outcome as a response record.
func (aucHouse *AuctionHouseActor) Cancel(
	seller solana.PrivateKey,
	mint solana.PublicKey,
	price float64,
) CancelResponse {
	response := CancelResponse{
		SellerWallet: seller.PublicKey().String(),
		Mint:         mint.String(),
		Price:        price,
		AuctionHouse: aucHouse.AuctionHouseAccount.String(),
	}
	bundle, err := aucHouse.CancelInstructions(seller.PublicKey(), mint, price)
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
	}
	return response
}
