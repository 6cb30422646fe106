package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/dero-bridge/pkg/app"
	"github.com/chainsafe/dero-bridge/pkg/app/api"
	"github.com/chainsafe/dero-bridge/pkg/config"
	"github.com/chainsafe/dero-bridge/pkg/request"
)

var (
	configPath    = flag.String("config", "config.yaml", "Path to configuration file")
	walletAddress = flag.String("wallet", "", "Destination DERO address; with -symbol and -amount runs one transfer and exits")
	symbol        = flag.String("symbol", "", "Token symbol registered on the bridge")
	amount        = flag.String("amount", "", "Amount to bridge in human units")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner
	if *walletAddress != "" || *symbol != "" || *amount != "" {
		runner = api.NewTransfer(cfg, request.Payload{
			WalletAddress: *walletAddress,
			Symbol:        *symbol,
			Amount:        *amount,
		}, os.Stdout)
	} else {
		runner = api.NewServer(cfg)
	}

	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
