package wallet_manager

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	atok "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"github.com/Aether-eum/auction-house-actions/config"
)

const (
	defaultConfirmationTimeout = time.Duration(30) * time.Second
	defaultConfirmationDelay   = time.Duration(5) * time.Second
	defaultSendRetryBaseDelay  = time.Duration(500) * time.Millisecond
	defaultSendRetryMaxDelay   = time.Duration(8) * time.Second
	defaultMaxSendAttempts     = 5
)

func NewWalletManager(client *rpc.Client) *WalletManager {
	return NewWalletManagerWithOpts(
		context.TODO(),
		client,
		rpc.CommitmentFinalized,
		rpc.ConfirmationStatusFinalized,
		defaultConfirmationTimeout,
		defaultConfirmationDelay,
		false,
	)
}

func NewWalletManagerWithOpts(
	context context.Context,
	client *rpc.Client,
	commitment rpc.CommitmentType,
	confirmationStatusType rpc.ConfirmationStatusType,
	confirmationTimeout time.Duration,
	confirmationDelay time.Duration,
	skipPreflight bool,
) *WalletManager {
	return &WalletManager{
		Context:                context,
		Client:                 client,
		Commitment:             commitment,
		ConfirmationStatusType: confirmationStatusType,
		ConfirmationTimeout:    confirmationTimeout,
		ConfirmationDelay:      confirmationDelay,
		SendRetryBaseDelay:     defaultSendRetryBaseDelay,
		SendRetryMaxDelay:      defaultSendRetryMaxDelay,
		MaxSendAttempts:        defaultMaxSendAttempts,
		SkipPreflight:          skipPreflight,
		Logger:                 slog.Default(),
	}
}

func NewWalletManagerFromConfig(ctx context.Context, cfg config.ClientConfig, logger *slog.Logger) *WalletManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &WalletManager{
		Context:                ctx,
		Client:                 rpc.New(cfg.RPCURL),
		Commitment:             cfg.Commitment,
		ConfirmationStatusType: cfg.ConfirmationStatus,
		ConfirmationTimeout:    cfg.ConfirmationTimeout,
		ConfirmationDelay:      cfg.ConfirmationDelay,
		SendRetryBaseDelay:     cfg.SendRetryBaseDelay,
		SendRetryMaxDelay:      cfg.SendRetryMaxDelay,
		MaxSendAttempts:        cfg.MaxSendAttempts,
		SkipPreflight:          cfg.SkipPreflight,
		Logger:                 logger,
	}
}

func (wm *WalletManager) SendSol(from solana.PrivateKey, to solana.PublicKey, amountSol float64) (solana.Signature, error) {
	return wm.SendSolTransaction(from, []SendSolInstructionParams{{from, to, amountSol}})
}

func (wm *WalletManager) SendLamports(from solana.PrivateKey, to solana.PublicKey, lamports uint64) (solana.Signature, error) {
	return wm.SendLamportsTransaction(from, []SendLamportsInstructionParams{{from, to, lamports}})
}

func (wm *WalletManager) SendSolTransaction(feePayer solana.PrivateKey, instructionsParams []SendSolInstructionParams) (solana.Signature, error) {
	var params []SendLamportsInstructionParams
	for _, solParams := range instructionsParams {
		params = append(params, solParams.toLamports())
	}
	return wm.SendLamportsTransaction(feePayer, params)
}

func (wm *WalletManager) SendLamportsTransaction(feePayer solana.PrivateKey, instructionsParams []SendLamportsInstructionParams) (solana.Signature, error) {
	var instructions []solana.Instruction
	var signers []solana.PrivateKey
	for _, params := range instructionsParams {
		instructions = append(instructions, makeTransferInstruction(params.From.PublicKey(), params.To, params.Lamports))
		signers = append(signers, params.From)
	}
	signers = appendSignerIfNotPresented(signers, feePayer)
	return wm.SendAndConfirmInstructions(
		feePayer.PublicKey(),
		instructions,
		signers,
	)
}

func (wm *WalletManager) SpreadLamports(from solana.PrivateKey, receivers []solana.PublicKey, lamports uint64) (solana.Signature, error) {
	var instructions []solana.Instruction
	for _, receiver := range receivers {
		instructions = append(instructions, makeTransferInstruction(from.PublicKey(), receiver, lamports))
	}
	return wm.SendAndConfirmInstructions(
		from.PublicKey(),
		instructions,
		[]solana.PrivateKey{from},
	)
}

func (wm *WalletManager) SendAllSol(from solana.PrivateKey, to solana.PublicKey) (solana.Signature, error) {
	return wm.CollectAllSol([]solana.PrivateKey{from}, to)
}

func (wm *WalletManager) CollectAllSol(fromWallets []solana.PrivateKey, to solana.PublicKey) (solana.Signature, error) {
	if len(fromWallets) == 0 {
		return solana.Signature{}, errors.New("no wallets to send from")
	}
	feePayer := fromWallets[0]
	feeTx, err := wm.makeTransferTransaction(feePayer, to, 0)
	if err != nil {
		return solana.Signature{}, errors.Errorf(
			"failed to make transfer transaction from %s to %s",
			feePayer.PublicKey().String(),
			to.String(),
		)
	}
	getFeeResult, err := wm.Client.GetFeeForMessage(wm.Context, feeTx.Message.ToBase64(), wm.Commitment)
	if err != nil {
		return solana.Signature{}, errors.Errorf("failed to get fee for transaction %s", feeTx.String())
	}
	totalFee := *getFeeResult.Value * uint64(len(fromWallets))
	var instructions []solana.Instruction
	for i, from := range fromWallets {
		var fee uint64 = 0
		if i == 0 {
			fee = totalFee
		}
		balance, err := wm.Client.GetBalance(wm.Context, from.PublicKey(), wm.Commitment)
		if err != nil {
			return solana.Signature{}, errors.Errorf("failed to get balance of %s", from.PublicKey().String())
		}
		instructions = append(instructions, makeTransferInstruction(from.PublicKey(), to, balance.Value-fee))
	}
	return wm.SendAndConfirmInstructions(feePayer.PublicKey(), instructions, fromWallets)
}

func (wm *WalletManager) makeTransferTransaction(from solana.PrivateKey, to solana.PublicKey, lamports uint64) (*solana.Transaction, error) {
	instruction := makeTransferInstruction(from.PublicKey(), to, lamports)
	recent, err := wm.Client.GetLatestBlockhash(wm.Context, wm.Commitment)
	if err != nil {
		return nil, err
	}
	tx, err := solana.NewTransactionBuilder().
		SetRecentBlockHash(recent.Value.Blockhash).
		AddInstruction(instruction).
		SetFeePayer(from.PublicKey()).
		Build()
	if err != nil {
		return nil, err
	}
	payload, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, err
	}
	sig, err := from.Sign(payload)
	if err != nil {
		return nil, err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return tx, nil
}

func makeTransferInstruction(from, to solana.PublicKey, lamports uint64) solana.Instruction {
	return system.NewTransferInstructionBuilder().
		SetFundingAccount(from).
		SetRecipientAccount(to).
		SetLamports(lamports).
		Build()
}

func (wm *WalletManager) SendTokens(feePayer solana.PrivateKey, to, mint solana.PublicKey, amount uint64) (solana.Signature, error) {
	return wm.SendTokensTransaction(feePayer, []SendTokensInstructionParams{{feePayer, to, mint, amount}})
}

func (wm *WalletManager) SendTokensTransaction(feePayer solana.PrivateKey, instructionsParams []SendTokensInstructionParams) (solana.Signature, error) {
	var instructions []solana.Instruction
	var signers []solana.PrivateKey
	for _, params := range instructionsParams {
		processAddress := func(to solana.PublicKey) (solana.PublicKey, error) {
			atokAddress, createInstruction, err := wm.GetOrCreateAssociatedTokenAddress(params.From.PublicKey(), to, params.Mint)
			if err != nil {
				return solana.PublicKey{}, errors.Errorf(
					"failed to find associated token address for %s. err: %s",
					to.String(),
					err.Error(),
				)
			}
			if createInstruction != nil {
				instructions = append(instructions, createInstruction)
			}
			return atokAddress, nil
		}
		fromAssociatedAddress, err := processAddress(params.From.PublicKey())
		if err != nil {
			return solana.Signature{}, err
		}
		toAssociatedAddress, err := processAddress(params.To)
		if err != nil {
			return solana.Signature{}, err
		}
		instruction := token.NewTransferInstructionBuilder().
			SetAmount(params.Amount).
			SetSourceAccount(fromAssociatedAddress).
			SetDestinationAccount(toAssociatedAddress).
			SetOwnerAccount(params.From.PublicKey()).
			Build()
		instructions = append(instructions, instruction)
		signers = append(signers, params.From)
	}
	signers = appendSignerIfNotPresented(signers, feePayer)
	return wm.SendAndConfirmInstructions(
		feePayer.PublicKey(),
		instructions,
		signers,
	)
}

// GetOrCreateAssociatedTokenAddress resolves the canonical associated token
// account for owner+mint. When the account does not exist yet, it also
// returns the creation instruction to prepend, rent paid by payer.
func (wm *WalletManager) GetOrCreateAssociatedTokenAddress(
	payer,
	account,
	mint solana.PublicKey,
) (solana.PublicKey, *atok.Instruction, error) {
	atokAddress, _, err := solana.FindAssociatedTokenAddress(account, mint)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	_, err = wm.Client.GetAccountInfoWithOpts(wm.Context, atokAddress, &rpc.GetAccountInfoOpts{
		Commitment: wm.Commitment,
	})
	var createInstruction *atok.Instruction
	if err != nil {
		createInstruction = atok.NewCreateInstructionBuilder().
			SetPayer(payer).
			SetMint(mint).
			SetWallet(account).
			Build()
	}
	return atokAddress, createInstruction, nil
}

func (wm *WalletManager) SendAndConfirmInstructions(
	feePayer solana.PublicKey,
	instructions []solana.Instruction,
	signers []solana.PrivateKey,
) (solana.Signature, error) {
	recent, err := wm.Client.GetLatestBlockhash(wm.Context, wm.Commitment)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to get latest blockhash")
	}
	txBuilder := solana.NewTransactionBuilder().
		SetRecentBlockHash(recent.Value.Blockhash).
		SetFeePayer(feePayer)
	for _, instruction := range instructions {
		txBuilder.AddInstruction(instruction)
	}
	tx, err := txBuilder.Build()
	if err != nil {
		return solana.Signature{}, err
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for _, candidate := range signers {
			if candidate.PublicKey().Equals(key) {
				return &candidate
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, err
	}
	return wm.SendAndConfirmTransaction(tx)
}

// SendAndConfirmTransaction submits tx, retrying transport failures with
// exponential backoff up to MaxSendAttempts, then polls until the configured
// confirmation status is reached. On a confirmation timeout the signature is
// returned alongside the error: the network may still finalize the
// transaction after the caller gave up waiting.
func (wm *WalletManager) SendAndConfirmTransaction(
	tx *solana.Transaction,
) (solana.Signature, error) {
	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.InitialInterval = wm.SendRetryBaseDelay
	backoffCfg.MaxInterval = wm.SendRetryMaxDelay

	var sig solana.Signature
	var err error
	for attempt := 1; ; attempt++ {
		sig, err = wm.Client.SendTransactionWithOpts(wm.Context, tx, rpc.TransactionOpts{
			SkipPreflight:       wm.SkipPreflight,
			PreflightCommitment: wm.Commitment,
		})
		if err == nil {
			break
		}
		if attempt >= wm.MaxSendAttempts {
			return solana.Signature{}, errors.Wrapf(err, "failed to send transaction after %d attempts", attempt)
		}
		sleep := backoffCfg.NextBackOff()
		if sleep == backoff.Stop {
			sleep = wm.SendRetryMaxDelay
		}
		wm.Logger.Warn("failed to send transaction, retrying",
			"attempt", attempt,
			"delay", sleep,
			"err", err,
		)
		select {
		case <-wm.Context.Done():
			return solana.Signature{}, wm.Context.Err()
		case <-time.After(sleep):
		}
	}

	confirmed, err := wm.awaitSignaturesConfirmation([]solana.Signature{sig})
	if err != nil {
		return sig, errors.Wrapf(err, "transaction %s was sent but not confirmed", sig.String())
	}
	return confirmed, nil
}

func (wm *WalletManager) awaitSignaturesConfirmation(
	signatures []solana.Signature,
) (solana.Signature, error) {
	if len(signatures) == 0 {
		return solana.Signature{}, errors.New("signatures array is empty")
	}
	after := time.After(wm.ConfirmationTimeout)
	ticker := time.NewTicker(wm.ConfirmationDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			result, err := wm.Client.GetSignatureStatuses(wm.Context, true, signatures...)
			if err == nil {
				for idx, res := range result.Value {
					if res == nil {
						continue
					}
					if res.Err == nil && res.ConfirmationStatus == wm.ConfirmationStatusType {
						wm.Logger.Info("transaction confirmed",
							"signature", signatures[idx].String(),
							"status", string(res.ConfirmationStatus),
						)
						return signatures[idx], nil
					}
				}
			}
		case <-wm.Context.Done():
			return solana.Signature{}, wm.Context.Err()
		case <-after:
			return solana.Signature{}, errors.New("confirmation timeout")
		}
	}
}
