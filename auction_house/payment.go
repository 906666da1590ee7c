package auction_house

import (
	"github.com/gagliardetto/solana-go"
)

// PaymentMode is the payment path for one action, computed once from the
// treasury mint and threaded through instead of re-testing the mint at every
// branch point. Native trades settle straight from the buyer's wallet; token
// trades go through the buyer's associated account for the treasury mint.
type PaymentMode struct {
	Mint   solana.PublicKey
	Native bool
}

func (aucHouse *AuctionHouseActor) paymentMode() PaymentMode {
	mint := aucHouse.AuctionHouseData.TreasuryMint
	return PaymentMode{
		Mint:   mint,
		Native: mint.Equals(solana.WrappedSol),
	}
}

// paymentAccount is the account funds are drawn from or paid into for the
// given wallet under this mode.
func (mode PaymentMode) paymentAccount(wallet solana.PublicKey) (solana.PublicKey, error) {
	if mode.Native {
		return wallet, nil
	}
	return getTokenWallet(wallet, mode.Mint)
}
