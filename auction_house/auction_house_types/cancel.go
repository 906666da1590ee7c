package auction_house_types

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// Cancel tears down a trade state. The wallet is a required transaction
// signer, fixed here at construction time.
type Cancel struct {
	BuyerPrice *uint64
	TokenSize  *uint64

	// [0] = [WRITE, SIGNER] wallet
	// [1] = [WRITE] tokenAccount
	// [2] = [] tokenMint
	// [3] = [] authority
	// [4] = [] auctionHouse
	// [5] = [WRITE] auctionHouseFeeAccount
	// [6] = [WRITE] tradeState
	// [7] = [] tokenProgram
	AccountMetaSlice solana.AccountMetaSlice
}

func NewCancelInstructionBuilder() *Cancel {
	return &Cancel{AccountMetaSlice: make(solana.AccountMetaSlice, 8)}
}

func (inst *Cancel) SetBuyerPrice(price uint64) *Cancel {
	inst.BuyerPrice = &price
	return inst
}

func (inst *Cancel) SetTokenSize(size uint64) *Cancel {
	inst.TokenSize = &size
	return inst
}

func (inst *Cancel) SetWalletAccount(wallet solana.PublicKey) *Cancel {
	inst.AccountMetaSlice[0] = solana.Meta(wallet).WRITE().SIGNER()
	return inst
}

func (inst *Cancel) SetTokenAccountAccount(tokenAccount solana.PublicKey) *Cancel {
	inst.AccountMetaSlice[1] = solana.Meta(tokenAccount).WRITE()
	return inst
}

func (inst *Cancel) SetTokenMintAccount(tokenMint solana.PublicKey) *Cancel {
	inst.AccountMetaSlice[2] = solana.Meta(tokenMint)
	return inst
}

func (inst *Cancel) SetAuthorityAccount(authority solana.PublicKey) *Cancel {
	inst.AccountMetaSlice[3] = solana.Meta(authority)
	return inst
}

func (inst *Cancel) SetAuctionHouseAccount(auctionHouse solana.PublicKey) *Cancel {
	inst.AccountMetaSlice[4] = solana.Meta(auctionHouse)
	return inst
}

func (inst *Cancel) SetAuctionHouseFeeAccountAccount(feeAccount solana.PublicKey) *Cancel {
	inst.AccountMetaSlice[5] = solana.Meta(feeAccount).WRITE()
	return inst
}

func (inst *Cancel) SetTradeStateAccount(tradeState solana.PublicKey) *Cancel {
	inst.AccountMetaSlice[6] = solana.Meta(tradeState).WRITE()
	return inst
}

func (inst *Cancel) SetTokenProgramAccount(tokenProgram solana.PublicKey) *Cancel {
	inst.AccountMetaSlice[7] = solana.Meta(tokenProgram)
	return inst
}

func (inst *Cancel) Validate() error {
	if inst.BuyerPrice == nil || inst.TokenSize == nil {
		return errors.New("cancel: price or token size is not set")
	}
	for i, meta := range inst.AccountMetaSlice {
		if meta == nil {
			return errors.Errorf("cancel: account at index %d is not set", i)
		}
	}
	return nil
}

func (inst *Cancel) Build() (*Instruction, error) {
	data, err := encodeInstructionData(Instruction_Cancel, struct {
		BuyerPrice uint64
		TokenSize  uint64
	}{
		BuyerPrice: *inst.BuyerPrice,
		TokenSize:  *inst.TokenSize,
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

func (inst *Cancel) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build()
}
