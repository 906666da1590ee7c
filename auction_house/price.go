package auction_house

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// toBaseUnits scales a human amount by the mint's decimal precision and
// truncates to the integer base-unit amount.
func toBaseUnits(amount float64, decimals int32) uint64 {
	return decimal.NewFromFloat(amount).Shift(decimals).Truncate(0).BigInt().Uint64()
}

func toHumanUnits(baseUnits uint64, decimals int32) float64 {
	return decimal.NewFromUint64(baseUnits).Shift(-decimals).InexactFloat64()
}

// priceToBaseUnits normalizes a human price against the auction house
// treasury mint. The native mint has a fixed precision; SPL treasuries need
// an on-chain mint lookup.
func (aucHouse *AuctionHouseActor) priceToBaseUnits(price float64) (uint64, error) {
	decimals, err := aucHouse.mintDecimals(aucHouse.AuctionHouseData.TreasuryMint)
	if err != nil {
		return 0, err
	}
	return toBaseUnits(price, decimals), nil
}

func (aucHouse *AuctionHouseActor) mintDecimals(mint solana.PublicKey) (int32, error) {
	if mint.Equals(solana.WrappedSol) {
		return nativeDecimals, nil
	}
	info, err := aucHouse.Reader.GetAccountInfo(aucHouse.Wm.Context, mint)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to fetch mint %s", mint)
	}
	var mintState token.Mint
	if err := bin.NewBinDecoder(info.Value.Data.GetBinary()).Decode(&mintState); err != nil {
		return 0, errors.Wrapf(err, "failed to decode mint %s", mint)
	}
	return int32(mintState.Decimals), nil
}
