package auction_house

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/Aether-eum/auction-house-actions/auction_house/auction_house_types"
	"github.com/Aether-eum/auction-house-actions/wallet_manager"
)

// fakeReader serves canned accounts so builders can be exercised without a
// network.
type fakeReader struct {
	accounts map[solana.PublicKey]*rpc.GetAccountInfoResult
	largest  map[solana.PublicKey]solana.PublicKey
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		accounts: map[solana.PublicKey]*rpc.GetAccountInfoResult{},
		largest:  map[solana.PublicKey]solana.PublicKey{},
	}
}

func (reader *fakeReader) GetAccountInfo(_ context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	res, ok := reader.accounts[account]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return res, nil
}

func (reader *fakeReader) GetTokenLargestAccounts(_ context.Context, mint solana.PublicKey, _ rpc.CommitmentType) (*rpc.GetTokenLargestAccountsResult, error) {
	addr, ok := reader.largest[mint]
	if !ok {
		return &rpc.GetTokenLargestAccountsResult{}, nil
	}
	return &rpc.GetTokenLargestAccountsResult{
		Value: []*rpc.TokenLargestAccountsResult{{Address: addr}},
	}, nil
}

// accountResult wraps raw account data the way the RPC layer would return it.
func accountResult(t *testing.T, data []byte) *rpc.GetAccountInfoResult {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"lamports": 1,
		"owner":    solana.TokenProgramID.String(),
		"data":     []string{base64.StdEncoding.EncodeToString(data), "base64"},
	})
	require.NoError(t, err)
	var account rpc.Account
	require.NoError(t, json.Unmarshal(payload, &account))
	return &rpc.GetAccountInfoResult{Value: &account}
}

func newTestActor(t *testing.T, treasuryMint solana.PublicKey, reader *fakeReader) *AuctionHouseActor {
	t.Helper()
	if reader == nil {
		reader = newFakeReader()
	}
	return &AuctionHouseActor{
		Wm: &wallet_manager.WalletManager{
			Context:    context.Background(),
			Commitment: rpc.CommitmentFinalized,
		},
		Reader:              reader,
		AuctionHouseAccount: solana.NewWallet().PublicKey(),
		AuctionHouseData: &auction_house_types.AuctionHouse{
			AuctionHouseFeeAccount: solana.NewWallet().PublicKey(),
			AuctionHouseTreasury:   solana.NewWallet().PublicKey(),
			TreasuryMint:           treasuryMint,
			Authority:              solana.NewWallet().PublicKey(),
			Creator:                solana.NewWallet().PublicKey(),
		},
	}
}

func encodeAuctionHouseAccount(t *testing.T, house auction_house_types.AuctionHouse) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	require.NoError(t, enc.WriteBytes(auction_house_types.Account_AuctionHouse[:], false))
	require.NoError(t, enc.Encode(house))
	return buf.Bytes()
}

type testCreator struct {
	Address  solana.PublicKey
	Verified bool
	Share    uint8
}

// metadataBytes encodes just enough of a token metadata account for the
// creator list to decode.
func metadataBytes(t *testing.T, mint solana.PublicKey, creators []solana.PublicKey) []byte {
	t.Helper()
	creatorRecords := make([]testCreator, 0, len(creators))
	for _, creator := range creators {
		creatorRecords = append(creatorRecords, testCreator{Address: creator, Verified: true, Share: uint8(100 / max(len(creators), 1))})
	}
	body := struct {
		Key                  uint8
		UpdateAuthority      solana.PublicKey
		Mint                 solana.PublicKey
		Name                 string
		Symbol               string
		Uri                  string
		SellerFeeBasisPoints uint16
		Creators             *[]testCreator `bin:"optional"`
		PrimarySaleHappened  bool
		IsMutable            bool
	}{
		Key:                  4,
		UpdateAuthority:      solana.NewWallet().PublicKey(),
		Mint:                 mint,
		Name:                 "Test Asset",
		Symbol:               "TEST",
		Uri:                  "https://example.invalid/meta.json",
		SellerFeeBasisPoints: 500,
		PrimarySaleHappened:  true,
		IsMutable:            true,
	}
	if len(creatorRecords) > 0 {
		body.Creators = &creatorRecords
	}
	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(body))
	// unset trailing optional fields (edition nonce, token standard,
	// collection, uses)
	buf.Write([]byte{0, 0, 0, 0})
	return buf.Bytes()
}

func mustMetadata(t *testing.T, mint solana.PublicKey) solana.PublicKey {
	t.Helper()
	addr, err := getMetadata(mint)
	require.NoError(t, err)
	return addr
}

func mustAta(t *testing.T, wallet, mint solana.PublicKey) solana.PublicKey {
	t.Helper()
	addr, err := getTokenWallet(wallet, mint)
	require.NoError(t, err)
	return addr
}
