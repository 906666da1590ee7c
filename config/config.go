package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"gopkg.in/yaml.v3"
)

// ClientConfig carries everything needed to talk to one auction house:
// where to send transactions, how hard to wait for them, and which
// marketplace account to load.
type ClientConfig struct {
	RPCURL              string
	Commitment          rpc.CommitmentType
	ConfirmationStatus  rpc.ConfirmationStatusType
	ConfirmationTimeout time.Duration
	ConfirmationDelay   time.Duration
	SendRetryBaseDelay  time.Duration
	SendRetryMaxDelay   time.Duration
	MaxSendAttempts     int
	SkipPreflight       bool
	KeypairPath         string
	AuctionHouse        solana.PublicKey
	Log                 LogConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadClientConfig reads configuration from the environment, optionally
// backed by a yaml file named in AUCTION_CONFIG_FILE. Environment variables
// win over file values. Money moves through these transactions, so the
// defaults ask for the strongest confirmation level.
func LoadClientConfig() (ClientConfig, error) {
	if err := ensureFileConfigLoaded(); err != nil {
		return ClientConfig{}, err
	}

	commitment, err := envCommitment("AUCTION_COMMITMENT", rpc.CommitmentFinalized)
	if err != nil {
		return ClientConfig{}, err
	}

	confirmationTimeout, err := envDuration("AUCTION_CONFIRMATION_TIMEOUT", 30*time.Second)
	if err != nil {
		return ClientConfig{}, err
	}
	confirmationDelay, err := envDuration("AUCTION_CONFIRMATION_DELAY", 5*time.Second)
	if err != nil {
		return ClientConfig{}, err
	}
	sendRetryBaseDelay, err := envDuration("AUCTION_SEND_RETRY_BASE_DELAY", 500*time.Millisecond)
	if err != nil {
		return ClientConfig{}, err
	}
	sendRetryMaxDelay, err := envDuration("AUCTION_SEND_RETRY_MAX_DELAY", 8*time.Second)
	if err != nil {
		return ClientConfig{}, err
	}
	if sendRetryMaxDelay < sendRetryBaseDelay {
		return ClientConfig{}, fmt.Errorf("invalid AUCTION_SEND_RETRY_MAX_DELAY: must be >= AUCTION_SEND_RETRY_BASE_DELAY")
	}
	maxSendAttempts, err := envInt("AUCTION_MAX_SEND_ATTEMPTS", 5)
	if err != nil {
		return ClientConfig{}, err
	}
	skipPreflight, err := envBool("AUCTION_SKIP_PREFLIGHT", false)
	if err != nil {
		return ClientConfig{}, err
	}

	auctionHouse, err := envPubkey("AUCTION_HOUSE")
	if err != nil {
		return ClientConfig{}, err
	}

	keypairPath, err := expandHomePath(envOrDefault("AUCTION_KEYPAIR_PATH", "~/.config/solana/id.json"))
	if err != nil {
		return ClientConfig{}, fmt.Errorf("expand keypair path: %w", err)
	}

	return ClientConfig{
		RPCURL:              envOrDefault("SOLANA_RPC_URL", rpc.MainNetBeta_RPC),
		Commitment:          commitment,
		ConfirmationStatus:  confirmationStatusFor(commitment),
		ConfirmationTimeout: confirmationTimeout,
		ConfirmationDelay:   confirmationDelay,
		SendRetryBaseDelay:  sendRetryBaseDelay,
		SendRetryMaxDelay:   sendRetryMaxDelay,
		MaxSendAttempts:     maxSendAttempts,
		SkipPreflight:       skipPreflight,
		KeypairPath:         keypairPath,
		AuctionHouse:        auctionHouse,
		Log: LogConfig{
			Level:  envOrDefault("LOG_LEVEL", "info"),
			Format: envOrDefault("LOG_FORMAT", "text"),
		},
	}, nil
}

func confirmationStatusFor(commitment rpc.CommitmentType) rpc.ConfirmationStatusType {
	switch commitment {
	case rpc.CommitmentProcessed:
		return rpc.ConfirmationStatusProcessed
	case rpc.CommitmentConfirmed:
		return rpc.ConfirmationStatusConfirmed
	default:
		return rpc.ConfirmationStatusFinalized
	}
}

func envCommitment(key string, fallback rpc.CommitmentType) (rpc.CommitmentType, error) {
	raw := strings.TrimSpace(valueForKey(key))
	if raw == "" {
		return fallback, nil
	}
	switch strings.ToLower(raw) {
	case string(rpc.CommitmentProcessed):
		return rpc.CommitmentProcessed, nil
	case string(rpc.CommitmentConfirmed):
		return rpc.CommitmentConfirmed, nil
	case string(rpc.CommitmentFinalized), "max":
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("invalid %s: %q (expected processed|confirmed|finalized)", key, raw)
	}
}

func envPubkey(key string) (solana.PublicKey, error) {
	raw := strings.TrimSpace(valueForKey(key))
	if raw == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is required", key)
	}
	pk, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return pk, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(valueForKey(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be > 0", key)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(valueForKey(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s: must be > 0", key)
	}
	return v, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(valueForKey(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(valueForKey(key)); value != "" {
		return value
	}
	return fallback
}

func expandHomePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return homeDir, nil
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}

var (
	fileConfigOnce   sync.Once
	fileConfigErr    error
	fileConfigValues map[string]string
)

func ensureFileConfigLoaded() error {
	fileConfigOnce.Do(func() {
		fileConfigValues = make(map[string]string)

		configPath := strings.TrimSpace(os.Getenv("AUCTION_CONFIG_FILE"))
		if configPath == "" {
			return
		}

		body, err := os.ReadFile(configPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fileConfigErr = fmt.Errorf("config file %q does not exist", configPath)
				return
			}
			fileConfigErr = fmt.Errorf("read config file %q: %w", configPath, err)
			return
		}

		raw := make(map[string]string)
		if err := yaml.Unmarshal(body, &raw); err != nil {
			fileConfigErr = fmt.Errorf("parse config file %q: %w", configPath, err)
			return
		}
		for key, value := range raw {
			normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(key), "-", "_"))
			fileConfigValues[normalized] = value
		}
	})
	return fileConfigErr
}

func valueForKey(key string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	if err := ensureFileConfigLoaded(); err != nil {
		return ""
	}
	return strings.TrimSpace(fileConfigValues[key])
}
