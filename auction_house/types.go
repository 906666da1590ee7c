package auction_house

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
	"github.com/Aether-eum/auction-house-actions/wallet_manager"
)

// ChainReader is the read side of the RPC client used by the actor. It is
// satisfied by *rpc.Client.
type ChainReader interface {
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
	GetTokenLargestAccounts(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenLargestAccountsResult, error)
}

// AuctionHouseActor builds and submits marketplace actions against one
// auction house. AuctionHouseData is the snapshot loaded at construction;
// callers that need fresh fee or authority values construct a new actor.
type AuctionHouseActor struct {
	Wm                  *wallet_manager.WalletManager
	Reader              ChainReader
	AuctionHouseAccount solana.PublicKey
	AuctionHouseData    *auction_house_types.AuctionHouse
}

// InstructionBundle is one submission unit: the ordered instruction list plus
// any ephemeral signers those instructions require. Instruction order is
// load-bearing (approve before the action, revoke after).
type InstructionBundle struct {
	Instructions []solana.Instruction
	Signers      []solana.PrivateKey
}

// Concat appends another bundle, preserving instruction and signer order.
func (bundle InstructionBundle) Concat(other InstructionBundle) InstructionBundle {
	return InstructionBundle{
		Instructions: append(append([]solana.Instruction{}, bundle.Instructions...), other.Instructions...),
		Signers:      append(append([]solana.PrivateKey{}, bundle.Signers...), other.Signers...),
	}
}

type SellResponse struct {
	Txn          string  `json:"txn,omitempty"`
	SellerWallet string  `json:"seller_wallet"`
	Mint         string  `json:"mint"`
	Price        float64 `json:"price"`
	AuctionHouse string  `json:"auction_house"`
	Status       string  `json:"status,omitempty"`
	Error        string  `json:"error,omitempty"`
}

type CancelResponse struct {
	Txn          string  `json:"txn,omitempty"`
	SellerWallet string  `json:"seller_wallet"`
	Mint         string  `json:"mint"`
	Price        float64 `json:"price"`
	AuctionHouse string  `json:"auction_house"`
	Error        string  `json:"error,omitempty"`
}

type BuyAndExecuteSaleResponse struct {
	Txn          string  `json:"txn,omitempty"`
	BuyerWallet  string  `json:"buyer_wallet"`
	SellerWallet string  `json:"seller_wallet"`
	Mint         string  `json:"mint"`
	Price        float64 `json:"price"`
	AuctionHouse string  `json:"auction_house"`
	Error        string  `json:"error,omitempty"`
}
