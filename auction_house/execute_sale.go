package auction_house

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
)

// ExecuteSaleInstructions builds the settlement instruction matching an
// existing buyer trade state against the seller's listing. It only references
// the trade states, never creates them. Royalty recipients from the asset
// metadata are appended as remaining accounts in metadata order, one entry
// per creator on the native path plus that creator's payout account for the
// treasury mint on the token path.
func (aucHouse *AuctionHouseActor) ExecuteSaleInstructions(
	buyer solana.PublicKey,
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
	buyerReceiptToken, err := getTokenWallet(buyer, mint)
	if err != nil {
		return InstructionBundle{}, err
	}
	metadata, err := getMetadata(mint)
	if err != nil {
		return InstructionBundle{}, err
	}
	escrowAccount, escrowBump, err := aucHouse.getBuyerEscrow(buyer)
	if err != nil {
		return InstructionBundle{}, err
	}
	buyerTradeState, _, err := aucHouse.getTradeState(buyer, sellerAta, mint, priceBaseUnits, wholeTokenSize)
	if err != nil {
		return InstructionBundle{}, err
	}
	sellerTradeState, _, err := aucHouse.getTradeState(seller, sellerAta, mint, priceBaseUnits, wholeTokenSize)
	if err != nil {
		return InstructionBundle{}, err
	}
	freeTradeState, freeTradeStateBump, err := aucHouse.getFreeTradeState(seller, sellerAta, mint, wholeTokenSize)
	if err != nil {
		return InstructionBundle{}, err
	}
	programAsSigner, programAsSignerBump, err := getProgramAsSigner()
	if err != nil {
		return InstructionBundle{}, err
	}

	mode := aucHouse.paymentMode()
	sellerPaymentReceipt, err := mode.paymentAccount(seller)
	if err != nil {
		return InstructionBundle{}, err
	}

	builder := auction_house_types.NewExecuteSaleInstructionBuilder().
		SetEscrowPaymentBump(escrowBump).
		SetFreeTradeStateBump(freeTradeStateBump).
		SetProgramAsSignerBump(programAsSignerBump).
		SetBuyerPrice(priceBaseUnits).
		SetTokenSize(wholeTokenSize).
		SetBuyerAccount(buyer).
		SetSellerAccount(seller).
		SetTokenAccountAccount(sellerAta).
		SetTokenMintAccount(mint).
		SetMetadataAccount(metadata).
		SetTreasuryMintAccount(mode.Mint).
		SetEscrowPaymentAccountAccount(escrowAccount).
		SetSellerPaymentReceiptAccountAccount(sellerPaymentReceipt).
		SetBuyerReceiptTokenAccountAccount(buyerReceiptToken).
		SetAuthorityAccount(aucHouse.AuctionHouseData.Authority).
		SetAuctionHouseAccount(aucHouse.AuctionHouseAccount).
		SetAuctionHouseFeeAccountAccount(aucHouse.AuctionHouseData.AuctionHouseFeeAccount).
		SetAuctionHouseTreasuryAccount(aucHouse.AuctionHouseData.AuctionHouseTreasury).
		SetBuyerTradeStateAccount(buyerTradeState).
		SetSellerTradeStateAccount(sellerTradeState).
		SetFreeTradeStateAccount(freeTradeState).
		SetTokenProgramAccount(solana.TokenProgramID).
		SetSystemProgramAccount(solana.SystemProgramID).
		SetAtaProgramAccount(solana.SPLAssociatedTokenAccountProgramID).
		SetProgramAsSignerAccount(programAsSigner).
		SetRentAccount(solana.SysVarRentPubkey)

	creators, err := aucHouse.assetCreators(mint)
	if err != nil {
		return InstructionBundle{}, err
	}
	for _, creator := range creators {
		builder.Append(solana.Meta(creator).WRITE())
		if !mode.Native {
			payoutAccount, err := getTokenWallet(creator, mode.Mint)
			if err != nil {
				return InstructionBundle{}, err
			}
			builder.Append(solana.Meta(payoutAccount).WRITE())
		}
	}

	executeSaleInstruction, err := builder.ValidateAndBuild()
	if err != nil {
		return InstructionBundle{}, err
	}
	return InstructionBundle{
		Instructions: []solana.Instruction{executeSaleInstruction},
	}, nil
}

// BuyAndExecuteSale chains the buyer deposit and the settlement into one
// transaction, so funds never sit committed without the sale executing.
func (aucHouse *AuctionHouseActor) BuyAndExecuteSale(
	buyer solana.PrivateKey,
	seller solana.PublicKey,
	mint solana.PublicKey,
	price float64,
) BuyAndExecuteSaleResponse {
	response := BuyAndExecuteSaleResponse{
		BuyerWallet:  buyer.PublicKey().String(),
		SellerWallet: seller.String(),
		Mint:         mint.String(),
		Price:        price,
		AuctionHouse: aucHouse.AuctionHouseAccount.String(),
	}
	buyBundle, err := aucHouse.BuyInstructions(buyer, mint, price)
	if err != nil {
		response.Error = err.Error()
		return response
	}
	saleBundle, err := aucHouse.ExecuteSaleInstructions(buyer.PublicKey(), seller, mint, price)
	if err != nil {
		response.Error = err.Error()
		return response
	}
	sig, err := aucHouse.submit(buyer, buyBundle.Concat(saleBundle))
	if !sig.IsZero() {
		response.Txn = sig.String()
	}
	if err != nil {
		response.Error = err.Error()
	}
	return response
}
