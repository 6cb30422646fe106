package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/dero-bridge/pkg/app/devwallet"
	"github.com/chainsafe/dero-bridge/pkg/config"
)

var configPath = flag.String("config", "devwallet.yaml", "Path to devwallet configuration file")

func main() {
	flag.Parse()

	cfg, err := config.LoadDevChain(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := devwallet.NewServer(cfg).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "devwallet: %v\n", err)
		os.Exit(1)
	}
}
