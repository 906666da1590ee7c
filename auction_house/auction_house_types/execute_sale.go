package auction_house_types

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// ExecuteSale settles a matched buyer/seller trade-state pair. Royalty
// recipients are appended as remaining accounts after the fixed list; the
// program pays them positionally, so append order is part of the contract.
type ExecuteSale struct {
	EscrowPaymentBump   *uint8
	FreeTradeStateBump  *uint8
	ProgramAsSignerBump *uint8
	BuyerPrice          *uint64
	TokenSize           *uint64

	// [0] = [WRITE] buyer
	// [1] = [WRITE] seller
	// [2] = [WRITE] tokenAccount
	// [3] = [] tokenMint
	// [4] = [] metadata
	// [5] = [] treasuryMint
	// [6] = [WRITE] escrowPaymentAccount
	// [7] = [WRITE] sellerPaymentReceiptAccount
	// [8] = [WRITE] buyerReceiptTokenAccount
	// [9] = [] authority
	// [10] = [] auctionHouse
	// [11] = [WRITE] auctionHouseFeeAccount
	// [12] = [WRITE] auctionHouseTreasury
	// [13] = [WRITE] buyerTradeState
	// [14] = [WRITE] sellerTradeState
	// [15] = [WRITE] freeTradeState
	// [16] = [] tokenProgram
	// [17] = [] systemProgram
	// [18] = [] ataProgram
	// [19] = [] programAsSigner
	// [20] = [] rent
	// [21...] remaining accounts (royalty recipients)
	AccountMetaSlice solana.AccountMetaSlice
}

const executeSaleFixedAccounts = 21

func NewExecuteSaleInstructionBuilder() *ExecuteSale {
	return &ExecuteSale{AccountMetaSlice: make(solana.AccountMetaSlice, executeSaleFixedAccounts)}
}

func (inst *ExecuteSale) SetEscrowPaymentBump(bump uint8) *ExecuteSale {
	inst.EscrowPaymentBump = &bump
	return inst
}

func (inst *ExecuteSale) SetFreeTradeStateBump(bump uint8) *ExecuteSale {
	inst.FreeTradeStateBump = &bump
	return inst
}

func (inst *ExecuteSale) SetProgramAsSignerBump(bump uint8) *ExecuteSale {
	inst.ProgramAsSignerBump = &bump
	return inst
}

func (inst *ExecuteSale) SetBuyerPrice(price uint64) *ExecuteSale {
	inst.BuyerPrice = &price
	return inst
}

func (inst *ExecuteSale) SetTokenSize(size uint64) *ExecuteSale {
	inst.TokenSize = &size
	return inst
}

func (inst *ExecuteSale) SetBuyerAccount(buyer solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[0] = solana.Meta(buyer).WRITE()
	return inst
}

func (inst *ExecuteSale) SetSellerAccount(seller solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[1] = solana.Meta(seller).WRITE()
	return inst
}

func (inst *ExecuteSale) SetTokenAccountAccount(tokenAccount solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[2] = solana.Meta(tokenAccount).WRITE()
	return inst
}

func (inst *ExecuteSale) SetTokenMintAccount(tokenMint solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[3] = solana.Meta(tokenMint)
	return inst
}

func (inst *ExecuteSale) SetMetadataAccount(metadata solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[4] = solana.Meta(metadata)
	return inst
}

func (inst *ExecuteSale) SetTreasuryMintAccount(treasuryMint solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[5] = solana.Meta(treasuryMint)
	return inst
}

func (inst *ExecuteSale) SetEscrowPaymentAccountAccount(escrowPaymentAccount solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[6] = solana.Meta(escrowPaymentAccount).WRITE()
	return inst
}

func (inst *ExecuteSale) SetSellerPaymentReceiptAccountAccount(receipt solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[7] = solana.Meta(receipt).WRITE()
	return inst
}

func (inst *ExecuteSale) SetBuyerReceiptTokenAccountAccount(receipt solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[8] = solana.Meta(receipt).WRITE()
	return inst
}

func (inst *ExecuteSale) SetAuthorityAccount(authority solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[9] = solana.Meta(authority)
	return inst
}

func (inst *ExecuteSale) SetAuctionHouseAccount(auctionHouse solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[10] = solana.Meta(auctionHouse)
	return inst
}

func (inst *ExecuteSale) SetAuctionHouseFeeAccountAccount(feeAccount solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[11] = solana.Meta(feeAccount).WRITE()
	return inst
}

func (inst *ExecuteSale) SetAuctionHouseTreasuryAccount(treasury solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[12] = solana.Meta(treasury).WRITE()
	return inst
}

func (inst *ExecuteSale) SetBuyerTradeStateAccount(buyerTradeState solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[13] = solana.Meta(buyerTradeState).WRITE()
	return inst
}

func (inst *ExecuteSale) SetSellerTradeStateAccount(sellerTradeState solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[14] = solana.Meta(sellerTradeState).WRITE()
	return inst
}

func (inst *ExecuteSale) SetFreeTradeStateAccount(freeTradeState solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[15] = solana.Meta(freeTradeState).WRITE()
	return inst
}

func (inst *ExecuteSale) SetTokenProgramAccount(tokenProgram solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[16] = solana.Meta(tokenProgram)
	return inst
}

func (inst *ExecuteSale) SetSystemProgramAccount(systemProgram solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[17] = solana.Meta(systemProgram)
	return inst
}

func (inst *ExecuteSale) SetAtaProgramAccount(ataProgram solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[18] = solana.Meta(ataProgram)
	return inst
}

func (inst *ExecuteSale) SetProgramAsSignerAccount(programAsSigner solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[19] = solana.Meta(programAsSigner)
	return inst
}

func (inst *ExecuteSale) SetRentAccount(rent solana.PublicKey) *ExecuteSale {
	inst.AccountMetaSlice[20] = solana.Meta(rent)
	return inst
}

// Append adds a remaining account after the fixed list.
func (inst *ExecuteSale) Append(meta *solana.AccountMeta) *ExecuteSale {
	inst.AccountMetaSlice = append(inst.AccountMetaSlice, meta)
	return inst
}

func (inst *ExecuteSale) Validate() error {
	if inst.EscrowPaymentBump == nil || inst.FreeTradeStateBump == nil || inst.ProgramAsSignerBump == nil {
		return errors.New("execute_sale: one or more bump seeds are not set")
	}
	if inst.BuyerPrice == nil || inst.TokenSize == nil {
		return errors.New("execute_sale: price or token size is not set")
	}
	for i, meta := range inst.AccountMetaSlice {
		if meta == nil {
			return errors.Errorf("execute_sale: account at index %d is not set", i)
		}
	}
	return nil
}

func (inst *ExecuteSale) Build() (*Instruction, error) {
	data, err := encodeInstructionData(Instruction_ExecuteSale, struct {
		EscrowPaymentBump   uint8
		FreeTradeStateBump  uint8
		ProgramAsSignerBump uint8
		BuyerPrice          uint64
		TokenSize           uint64
	}{
		EscrowPaymentBump:   *inst.EscrowPaymentBump,
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

func (inst *ExecuteSale) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build()
}
