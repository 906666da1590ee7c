package auction_house_types

import (
	"bytes"
	"crypto/sha256"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the deployed auction house program all PDAs and instructions
// in this package are bound to.
var ProgramID = solana.MustPublicKeyFromBase58("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")

func SetProgramID(pubkey solana.PublicKey) {
	ProgramID = pubkey
}

// Anchor sighash discriminators, derived the same way the program derives
// them at build time.
func InstructionDiscriminator(name string) [8]byte {
	return sighash("global", name)
}

func AccountDiscriminator(name string) [8]byte {
	return sighash("account", name)
}

func sighash(namespace, name string) [8]byte {
	hash := sha256.Sum256([]byte(namespace + ":" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out
}

var (
	Instruction_Sell        = InstructionDiscriminator("sell")
	Instruction_Buy         = InstructionDiscriminator("buy")
	Instruction_ExecuteSale = InstructionDiscriminator("execute_sale")
	Instruction_Cancel      = InstructionDiscriminator("cancel")

	Account_AuctionHouse = AccountDiscriminator("AuctionHouse")
)

// Instruction is a fully assembled auction house program call. Account metas
// are fixed at build time; nothing mutates them afterwards.
type Instruction struct {
	programID solana.PublicKey
	accounts  []*solana.AccountMeta
	data      []byte
}

func (inst *Instruction) ProgramID() solana.PublicKey {
	return inst.programID
}

func (inst *Instruction) Accounts() []*solana.AccountMeta {
	return inst.accounts
}

func (inst *Instruction) Data() ([]byte, error) {
	return inst.data, nil
}

func encodeInstructionData(discriminator [8]byte, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(discriminator[:], false); err != nil {
		return nil, err
	}
	if err := enc.Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
