package auction_house_types

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// AuctionHouse is the marketplace configuration account, field for field in
// on-chain order.
type AuctionHouse struct {
	AuctionHouseFeeAccount        solana.PublicKey
	AuctionHouseTreasury          solana.PublicKey
	TreasuryWithdrawalDestination solana.PublicKey
	FeeWithdrawalDestination      solana.PublicKey
	TreasuryMint                  solana.PublicKey
	Authority                     solana.PublicKey
	Creator                       solana.PublicKey
	Bump                          uint8
	TreasuryBump                  uint8
	FeePayerBump                  uint8
	SellerFeeBasisPoints          uint16
	RequiresSignOff               bool
	CanChangeSalePrice            bool
}

// ParseAccount_AuctionHouse decodes an auction house account as a closed
// record: the discriminator must match and no bytes may remain after the last
// field.
func ParseAccount_AuctionHouse(data []byte) (*AuctionHouse, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("auction house account data too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:8], Account_AuctionHouse[:]) {
		return nil, fmt.Errorf("unexpected account discriminator %x", data[:8])
	}
	dec := bin.NewBorshDecoder(data[8:])
	var out AuctionHouse
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode auction house account: %w", err)
	}
	if remaining := dec.Remaining(); remaining > 0 {
		return nil, fmt.Errorf("auction house account has %d trailing bytes", remaining)
	}
	return &out, nil
}
