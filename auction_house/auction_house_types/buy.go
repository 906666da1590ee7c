package auction_house_types

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// Buy deposits the buyer's funds into escrow and initializes the buyer trade
// state. Whether the transfer authority signs depends on the payment path, so
// the flag is an explicit constructor parameter rather than a post-build edit.
type Buy struct {
	TradeStateBump    *uint8
	EscrowPaymentBump *uint8
	BuyerPrice        *uint64
	TokenSize         *uint64

	// [0] = [SIGNER] wallet
	// [1] = [WRITE] paymentAccount
	// [2] = [SIGNER?] transferAuthority
	// [3] = [] treasuryMint
	// [4] = [] tokenAccount
	// [5] = [] metadata
	// [6] = [WRITE] escrowPaymentAccount
	// [7] = [] authority
	// [8] = [] auctionHouse
	// [9] = [WRITE] auctionHouseFeeAccount
	// [10] = [WRITE] buyerTradeState
	// [11] = [] tokenProgram
	// [12] = [] systemProgram
	// [13] = [] rent
	AccountMetaSlice solana.AccountMetaSlice
}

func NewBuyInstructionBuilder() *Buy {
	return &Buy{AccountMetaSlice: make(solana.AccountMetaSlice, 14)}
}

func (inst *Buy) SetTradeStateBump(bump uint8) *Buy {
	inst.TradeStateBump = &bump
	return inst
}

func (inst *Buy) SetEscrowPaymentBump(bump uint8) *Buy {
	inst.EscrowPaymentBump = &bump
	return inst
}

func (inst *Buy) SetBuyerPrice(price uint64) *Buy {
	inst.BuyerPrice = &price
	return inst
}

func (inst *Buy) SetTokenSize(size uint64) *Buy {
	inst.TokenSize = &size
	return inst
}

func (inst *Buy) SetWalletAccount(wallet solana.PublicKey) *Buy {
	inst.AccountMetaSlice[0] = solana.Meta(wallet).SIGNER()
	return inst
}

func (inst *Buy) SetPaymentAccountAccount(paymentAccount solana.PublicKey) *Buy {
	inst.AccountMetaSlice[1] = solana.Meta(paymentAccount).WRITE()
	return inst
}

// SetTransferAuthorityAccount marks the delegate as a required signer only on
// the token-mint payment path; the native path passes the system program here.
func (inst *Buy) SetTransferAuthorityAccount(transferAuthority solana.PublicKey, isSigner bool) *Buy {
	meta := solana.Meta(transferAuthority)
	if isSigner {
		meta = meta.SIGNER()
	}
	inst.AccountMetaSlice[2] = meta
	return inst
}

func (inst *Buy) SetTreasuryMintAccount(treasuryMint solana.PublicKey) *Buy {
	inst.AccountMetaSlice[3] = solana.Meta(treasuryMint)
	return inst
}

func (inst *Buy) SetTokenAccountAccount(tokenAccount solana.PublicKey) *Buy {
	inst.AccountMetaSlice[4] = solana.Meta(tokenAccount)
	return inst
}

func (inst *Buy) SetMetadataAccount(metadata solana.PublicKey) *Buy {
	inst.AccountMetaSlice[5] = solana.Meta(metadata)
	return inst
}

func (inst *Buy) SetEscrowPaymentAccountAccount(escrowPaymentAccount solana.PublicKey) *Buy {
	inst.AccountMetaSlice[6] = solana.Meta(escrowPaymentAccount).WRITE()
	return inst
}

func (inst *Buy) SetAuthorityAccount(authority solana.PublicKey) *Buy {
	inst.AccountMetaSlice[7] = solana.Meta(authority)
	return inst
}

func (inst *Buy) SetAuctionHouseAccount(auctionHouse solana.PublicKey) *Buy {
	inst.AccountMetaSlice[8] = solana.Meta(auctionHouse)
	return inst
}

func (inst *Buy) SetAuctionHouseFeeAccountAccount(feeAccount solana.PublicKey) *Buy {
	inst.AccountMetaSlice[9] = solana.Meta(feeAccount).WRITE()
	return inst
}

func (inst *Buy) SetBuyerTradeStateAccount(buyerTradeState solana.PublicKey) *Buy {
	inst.AccountMetaSlice[10] = solana.Meta(buyerTradeState).WRITE()
	return inst
}

func (inst *Buy) SetTokenProgramAccount(tokenProgram solana.PublicKey) *Buy {
	inst.AccountMetaSlice[11] = solana.Meta(tokenProgram)
	return inst
}

func (inst *Buy) SetSystemProgramAccount(systemProgram solana.PublicKey) *Buy {
	inst.AccountMetaSlice[12] = solana.Meta(systemProgram)
	return inst
}

func (inst *Buy) SetRentAccount(rent solana.PublicKey) *Buy {
	inst.AccountMetaSlice[13] = solana.Meta(rent)
	return inst
}

func (inst *Buy) Validate() error {
	if inst.TradeStateBump == nil || inst.EscrowPaymentBump == nil {
		return errors.New("buy: one or more bump seeds are not set")
	}
	if inst.BuyerPrice == nil || inst.TokenSize == nil {
		return errors.New("buy: price or token size is not set")
	}
	for i, meta := range inst.AccountMetaSlice {
		if meta == nil {
			return errors.Errorf("buy: account at index %d is not set", i)
		}
	}
	return nil
}

func (inst *Buy) Build() (*Instruction, error) {
	data, err := encodeInstructionData(Instruction_Buy, struct {
		TradeStateBump    uint8
		EscrowPaymentBump uint8
		BuyerPrice        uint64
		TokenSize         uint64
	}{
		TradeStateBump:    *inst.TradeStateBump,
		EscrowPaymentBump: *inst.EscrowPaymentBump,
		BuyerPrice:        *inst.BuyerPrice,
		TokenSize:         *inst.TokenSize,
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

func (inst *Buy) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build()
}
