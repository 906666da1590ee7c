package auction_house_types

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// Sell posts a listing: initializes the seller trade state and free trade
// state PDAs at the given price and size.
type Sell struct {
	TradeStateBump      *uint8
	FreeTradeStateBump  *uint8
	ProgramAsSignerBump *uint8
	BuyerPrice          *uint64
	TokenSize           *uint64

	// [0] = [WRITE] wallet
	// [1] = [WRITE] tokenAccount
	// [2] = [] metadata
	// [3] = [] authority
	// [4] = [] auctionHouse
	// [5] = [WRITE] auctionHouseFeeAccount
	// [6] = [WRITE] sellerTradeState
	// [7] = [WRITE] freeSellerTradeState
	// [8] = [] tokenProgram
	// [9] = [] systemProgram
	// [10] = [] programAsSigner
	// [11] = [] rent
	AccountMetaSlice solana.AccountMetaSlice
}

func NewSellInstructionBuilder() *Sell {
	return &Sell{AccountMetaSlice: make(solana.AccountMetaSlice, 12)}
}

func (inst *Sell) SetTradeStateBump(bump uint8) *Sell {
	inst.TradeStateBump = &bump
	return inst
}

func (inst *Sell) SetFreeTradeStateBump(bump uint8) *Sell {
	inst.FreeTradeStateBump = &bump
	return inst
}

func (inst *Sell) SetProgramAsSignerBump(bump uint8) *Sell {
	inst.ProgramAsSignerBump = &bump
	return inst
}

func (inst *Sell) SetBuyerPrice(price uint64) *Sell {
	inst.BuyerPrice = &price
	return inst
}

func (inst *Sell) SetTokenSize(size uint64) *Sell {
	inst.TokenSize = &size
	return inst
}

func (inst *Sell) SetWalletAccount(wallet solana.PublicKey) *Sell {
	inst.AccountMetaSlice[0] = solana.Meta(wallet).WRITE()
	return inst
}

func (inst *Sell) SetTokenAccountAccount(tokenAccount solana.PublicKey) *Sell {
	inst.AccountMetaSlice[1] = solana.Meta(tokenAccount).WRITE()
	return inst
}

func (inst *Sell) SetMetadataAccount(metadata solana.PublicKey) *Sell {
	inst.AccountMetaSlice[2] = solana.Meta(metadata)
	return inst
}

func (inst *Sell) SetAuthorityAccount(authority solana.PublicKey) *Sell {
	inst.AccountMetaSlice[3] = solana.Meta(authority)
	return inst
}

func (inst *Sell) SetAuctionHouseAccount(auctionHouse solana.PublicKey) *Sell {
	inst.AccountMetaSlice[4] = solana.Meta(auctionHouse)
	return inst
}

func (inst *Sell) SetAuctionHouseFeeAccountAccount(feeAccount solana.PublicKey) *Sell {
	inst.AccountMetaSlice[5] = solana.Meta(feeAccount).WRITE()
	return inst
}

func (inst *Sell) SetSellerTradeStateAccount(tradeState solana.PublicKey) *Sell {
	inst.AccountMetaSlice[6] = solana.Meta(tradeState).WRITE()
	return inst
}

func (inst *Sell) SetFreeSellerTradeStateAccount(freeTradeState solana.PublicKey) *Sell {
	inst.AccountMetaSlice[7] = solana.Meta(freeTradeState).WRITE()
	return inst
}

func (inst *Sell) SetTokenProgramAccount(tokenProgram solana.PublicKey) *Sell {
	inst.AccountMetaSlice[8] = solana.Meta(tokenProgram)
	return inst
}

func (inst *Sell) SetSystemProgramAccount(systemProgram solana.PublicKey) *Sell {
	inst.AccountMetaSlice[9] = solana.Meta(systemProgram)
	return inst
}

func (inst *Sell) SetProgramAsSignerAccount(programAsSigner solana.PublicKey) *Sell {
	inst.AccountMetaSlice[10] = solana.Meta(programAsSigner)
	return inst
}

func (inst *Sell) SetRentAccount(rent solana.PublicKey) *Sell {
	inst.AccountMetaSlice[11] = solana.Meta(rent)
	return inst
}

func (inst *Sell) Validate() error {
	if inst.TradeStateBump == nil || inst.FreeTradeStateBump == nil || inst.ProgramAsSignerBump == nil {
		return errors.New("sell: one or more bump seeds are not set")
	}
	if inst.BuyerPrice == nil || inst.TokenSize == nil {
		return errors.New("sell: price or token size is not set")
	}
	for i, meta := range inst.AccountMetaSlice {
		if meta == nil {
			return errors.Errorf("sell: account at index %d is not set", i)
		}
	}
	return nil
}

func (inst *Sell) Build() (*Instruction, error) {
	data, err := encodeInstructionData(Instruction_Sell, struct {
		TradeStateBump      uint8
		FreeTradeStateBump  uint8
		ProgramAsSignerBump uint8
		BuyerPrice          uint64
		TokenSize           uint64
	}{
		TradeStateBump:      *inst.TradeStateBump,
		FreeTradeStateBump:  *inst.FreeTradeStateBump,
		ProgramAsSignerBump: *inst.ProgramAsSignerBump,
		BuyerPrice:          *inst.BuyerPrice,
		TokenSize:           *inst.TokenSize,
	})
	if err != nil {
		return nil, err
	}
	return &Instruction{
		programID: ProgramID,
		accounts:  inst.AccountMetaSlice,
		data:      data,
	}, nil
}

func (inst *Sell) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build()
}
