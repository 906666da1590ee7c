package wallet_manager

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aether-eum/auction-house-actions/config"
)

var ctx = context.TODO()
var commitment = rpc.CommitmentConfirmed

func newDevnetWalletManager(t *testing.T) (*WalletManager, *rpc.Client) {
	if os.Getenv("TEST_DEVNET") == "" {
		t.Skip("TEST_DEVNET is not set")
	}
	client := rpc.New(rpc.DevNet.RPC)
	wm := NewWalletManagerWithOpts(
		ctx,
		client,
		commitment,
		rpc.ConfirmationStatusConfirmed,
		time.Duration(5)*time.Minute,
		time.Duration(5)*time.Second,
		false,
	)
	return wm, client
}

func TestWalletManager_SendLamports(t *testing.T) {
	wm, client := newDevnetWalletManager(t)
	var cntReceivers uint64 = 5
	lamportsPerReceiver := uint64(0.001 * float64(solana.LAMPORTS_PER_SOL))
	from := solana.NewWallet()
	_, err := airdrop(wm, from.PublicKey(), (cntReceivers+1)*lamportsPerReceiver)
	if err != nil {
		t.Fatalf("failed to request airdrop: %s", err.Error())
	}
	var params []SendLamportsInstructionParams
	for i := uint64(0); i < cntReceivers; i++ {
		params = append(params, SendLamportsInstructionParams{
			From:     from.PrivateKey,
			To:       solana.NewWallet().PublicKey(),
			Lamports: lamportsPerReceiver,
		})
	}

	sig, err := wm.SendLamportsTransaction(from.PrivateKey, params)
	if err != nil {
		t.Fatalf("failed to spread lamports. err: %s", err.Error())
	}
	for _, param := range params {
		receiver := param.To
		result, err := client.GetBalance(ctx, receiver, commitment)
		if err != nil {
			t.Fatalf("failed to get balance of %s", receiver.String())
		}
		if result.Value != lamportsPerReceiver {
			t.Fatalf("account %s balance is %d != %d", receiver.String(), result.Value, lamportsPerReceiver)
		}
	}
	t.Log(sig.String())
}

func TestWalletManager_SendAllSol(t *testing.T) {
	wm, client := newDevnetWalletManager(t)
	lamports := uint64(0.001 * float64(solana.LAMPORTS_PER_SOL))
	from := solana.NewWallet()
	_, err := airdrop(wm, from.PublicKey(), lamports)
	if err != nil {
		t.Fatal(err)
	}
	to := solana.NewWallet()
	sig, err := wm.SendAllSol(from.PrivateKey, to.PublicKey())
	if err != nil {
		t.Fatal(err)
	}
	result, err := client.GetBalance(ctx, from.PublicKey(), commitment)
	if err != nil {
		t.Fatalf("failed to check %s balance. err: %s", from.PublicKey().String(), err.Error())
	}
	if result.Value != 0 {
		t.Fatalf("sender %s balance is not zero", from.PublicKey().String())
	}
	t.Log(sig)
}

func airdrop(wm *WalletManager, receiver solana.PublicKey, lamports uint64) (solana.Signature, error) {
	airDropSig, err := wm.Client.RequestAirdrop(ctx, receiver, lamports, commitment)
	if err != nil {
		return solana.Signature{}, errors.Errorf("failed to request airdrop: %s", err.Error())
	}
	awaitedSig, err := wm.awaitSignaturesConfirmation([]solana.Signature{airDropSig})
	if err != nil {
		return solana.Signature{}, errors.Errorf("failed to confirm airdrop: %s", err.Error())
	}
	return awaitedSig, err
}

func TestNewWalletManager_Defaults(t *testing.T) {
	wm := NewWalletManager(nil)
	assert.Equal(t, rpc.CommitmentFinalized, wm.Commitment)
	assert.Equal(t, rpc.ConfirmationStatusFinalized, wm.ConfirmationStatusType)
	assert.Equal(t, defaultMaxSendAttempts, wm.MaxSendAttempts)
	assert.Equal(t, defaultSendRetryBaseDelay, wm.SendRetryBaseDelay)
	assert.NotNil(t, wm.Logger)
}

func TestNewWalletManagerFromConfig(t *testing.T) {
	cfg := config.ClientConfig{
		RPCURL:              rpc.MainNetBeta_RPC,
		Commitment:          rpc.CommitmentConfirmed,
		ConfirmationStatus:  rpc.ConfirmationStatusConfirmed,
		ConfirmationTimeout: time.Minute,
		ConfirmationDelay:   2 * time.Second,
		SendRetryBaseDelay:  time.Second,
		SendRetryMaxDelay:   10 * time.Second,
		MaxSendAttempts:     3,
		SkipPreflight:       true,
	}
	wm := NewWalletManagerFromConfig(context.Background(), cfg, slog.Default())
	require.NotNil(t, wm.Client)
	assert.Equal(t, rpc.CommitmentConfirmed, wm.Commitment)
	assert.Equal(t, time.Minute, wm.ConfirmationTimeout)
	assert.Equal(t, 3, wm.MaxSendAttempts)
	assert.True(t, wm.SkipPreflight)
}

func TestAwaitSignaturesConfirmation_EmptyInput(t *testing.T) {
	wm := NewWalletManager(nil)
	_, err := wm.awaitSignaturesConfirmation(nil)
	require.Error(t, err)
}
