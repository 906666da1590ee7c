package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	json "github.com/goccy/go-json"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Aether-eum/auction-house-actions/auction_house"
	"github.com/Aether-eum/auction-house-actions/config"
	"github.com/Aether-eum/auction-house-actions/logging"
	"github.com/Aether-eum/auction-house-actions/wallet_manager"
)

const usage = `usage: auction-house <command> [flags]

commands:
  sell    list an asset for sale
  cancel  withdraw a listing
  buy     buy a listed asset and execute the sale

common flags:
  -mint   asset mint address (required)
  -price  human price in treasury mint units (required)
  -seller seller wallet address (buy only, required)

configuration is read from the environment (see config package), optionally
seeded from a yaml file named in AUCTION_CONFIG_FILE and a local .env file.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	switch command {
	case "sell", "cancel", "buy":
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	mintFlag := flags.String("mint", "", "asset mint address")
	priceFlag := flags.Float64("price", 0, "human price in treasury mint units")
	sellerFlag := flags.String("seller", "", "seller wallet address (buy only)")
	if err := flags.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.LoadClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "auction-house: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "auction-house: %v\n", err)
		os.Exit(1)
	}

	wallet, err := solana.PrivateKeyFromSolanaKeygenFile(cfg.KeypairPath)
	if err != nil {
		logger.Error("failed to load keypair", "path", cfg.KeypairPath, "err", err)
		os.Exit(1)
	}
	mint, err := solana.PublicKeyFromBase58(*mintFlag)
	if err != nil {
		logger.Error("invalid -mint", "err", err)
		os.Exit(2)
	}
	if *priceFlag <= 0 {
		logger.Error("invalid -price: must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()
	wm := wallet_manager.NewWalletManagerFromConfig(ctx, cfg, logger)

	actor, err := auction_house.NewAuctionHouseActor(wm, cfg.AuctionHouse)
	if err != nil {
		logger.Error("failed to load auction house", "auction_house", cfg.AuctionHouse, "err", err)
		os.Exit(1)
	}

	var response interface{}
	var responseErr string
	switch command {
	case "sell":
		res := actor.Sell(wallet, mint, *priceFlag)
		response, responseErr = res, res.Error
	case "cancel":
		res := actor.Cancel(wallet, mint, *priceFlag)
		response, responseErr = res, res.Error
	case "buy":
		seller, err := solana.PublicKeyFromBase58(*sellerFlag)
		if err != nil {
			logger.Error("invalid -seller", "err", err)
			os.Exit(2)
		}
		res := actor.BuyAndExecuteSale(wallet, seller, mint, *priceFlag)
		response, responseErr = res, res.Error
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		logger.Error("failed to encode response", "err", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
	if responseErr != "" {
		os.Exit(1)
	}
}
