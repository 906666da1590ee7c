package auction_house

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/pkg/errors"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
)

// BuyInstructions builds the deposit bundle for the buyer. On the native path
// this is a single buy instruction drawing from the buyer's wallet. On the
// token path the program moves funds through a delegate, so the bundle is
// approve, buy, revoke with one ephemeral keypair as the delegate. That
// keypair lives only inside the returned bundle and is never reused.
func (aucHouse *AuctionHouseActor) BuyInstructions(
	buyer solana.PrivateKey,
	mint solana.PublicKey,
	price float64,
) (InstructionBundle, error) {
	priceBaseUnits, err := aucHouse.priceToBaseUnits(price)
	if err != nil {
		return InstructionBundle{}, err
	}
	tokenAccount, err := aucHouse.largestTokenAccount(mint)
	if err != nil {
		return InstructionBundle{}, err
	}
	metadata, err := getMetadata(mint)
	if err != nil {
		return InstructionBundle{}, err
	}
	escrowAccount, escrowBump, err := aucHouse.getBuyerEscrow(buyer.PublicKey())
	if err != nil {
		return InstructionBundle{}, err
	}
	buyerTradeState, tradeStateBump, err := aucHouse.getTradeState(buyer.PublicKey(), tokenAccount, mint, priceBaseUnits, wholeTokenSize)
	if err != nil {
		return InstructionBundle{}, err
	}

	mode := aucHouse.paymentMode()
	paymentAccount, err := mode.paymentAccount(buyer.PublicKey())
	if err != nil {
		return InstructionBundle{}, err
	}

	transferAuthority := solana.SystemProgramID
	var ephemeralSigners []solana.PrivateKey
	if !mode.Native {
		delegate, err := solana.NewRandomPrivateKey()
		if err != nil {
			return InstructionBundle{}, errors.Wrap(err, "failed to generate transfer authority")
		}
		transferAuthority = delegate.PublicKey()
		ephemeralSigners = []solana.PrivateKey{delegate}
	}

	buyInstruction, err := auction_house_types.NewBuyInstructionBuilder().
		SetTradeStateBump(tradeStateBump).
		SetEscrowPaymentBump(escrowBump).
		SetBuyerPrice(priceBaseUnits).
		SetTokenSize(wholeTokenSize).
		SetWalletAccount(buyer.PublicKey()).
		SetPaymentAccountAccount(paymentAccount).
		SetTransferAuthorityAccount(transferAuthority, !mode.Native).
		SetTreasuryMintAccount(mode.Mint).
		SetTokenAccountAccount(tokenAccount).
		SetMetadataAccount(metadata).
		SetEscrowPaymentAccountAccount(escrowAccount).
		SetAuthorityAccount(aucHouse.AuctionHouseData.Authority).
		SetAuctionHouseAccount(aucHouse.AuctionHouseAccount).
		SetAuctionHouseFeeAccountAccount(aucHouse.AuctionHouseData.AuctionHouseFeeAccount).
		SetBuyerTradeStateAccount(buyerTradeState).
		SetTokenProgramAccount(solana.TokenProgramID).
		SetSystemProgramAccount(solana.SystemProgramID).
		SetRentAccount(solana.SysVarRentPubkey).
		ValidateAndBuild()
	if err != nil {
		return InstructionBundle{}, err
	}

	if mode.Native {
		return InstructionBundle{
			Instructions: []solana.Instruction{buyInstruction},
		}, nil
	}

	approveInstruction, err := token.NewApproveInstructionBuilder().
		SetAmount(priceBaseUnits).
		SetSourceAccount(paymentAccount).
		SetDelegateAccount(transferAuthority).
		SetOwnerAccount(buyer.PublicKey()).
		ValidateAndBuild()
	if err != nil {
		return InstructionBundle{}, err
	}
	revokeInstruction, err := token.NewRevokeInstructionBuilder().
		SetSourceAccount(paymentAccount).
		SetOwnerAccount(buyer.PublicKey()).
		ValidateAndBuild()
	if err != nil {
		return InstructionBundle{}, err
	}
	return InstructionBundle{
		Instructions: []solana.Instruction{approveInstruction, buyInstruction, revokeInstruction},
		Signers:      ephemeralSigners,
	}, nil
}
