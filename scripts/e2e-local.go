//go:build ignore

// e2e-local.go - Local end-to-end run of a bridge transfer
//
// Expects a devwallet node and a bridge client API to be running:
//
//	go run ./cmd/devwallet -config devwallet.yaml
//	go run ./cmd/bridge-client -config config.yaml
//
// Test Flow:
// 1. Wait for both services to be healthy
// 2. Connect the wallet through the bridge client
// 3. Submit the bridge request and read the fee
// 4. Execute and poll the transfer state until it is terminal
// 5. Verify the deposit recorded by the devwallet and the token balance
//
// Usage:
//   go run scripts/e2e-local.go [-client URL] [-devwallet URL] [-symbol USDC] [-amount 10]

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/chainsafe/dero-bridge/pkg/ethereum"
	"github.com/chainsafe/dero-bridge/pkg/ethereum/contracts"
)

const (
	colorRed   = "\033[0;31m"
	colorGreen = "\033[0;32m"
	colorBlue  = "\033[0;34m"
	colorCyan  = "\033[0;36m"
	colorReset = "\033[0m"
)

var (
	clientURL    = flag.String("client", "http://127.0.0.1:8080", "Bridge client API URL")
	devwalletURL = flag.String("devwallet", "http://127.0.0.1:8545", "Devwallet JSON-RPC URL")
	destination  = flag.String("wallet", "dero1qyexamplereceiver", "Destination DERO address")
	symbol       = flag.String("symbol", "USDC", "Token symbol")
	amount       = flag.String("amount", "10", "Amount in human units")
	bridgeAddr   = flag.String("bridge", "0x00000000000000000000000000000000000000b1", "Bridge contract address on the devwallet chain")
	timeout      = flag.Duration("timeout", 2*time.Minute, "Overall timeout")
)

type transferState struct {
	Phase       string `json:"phase"`
	Step        string `json:"step"`
	Account     string `json:"account"`
	BridgeFee   string `json:"bridgeFee"`
	TxHash      string `json:"txHash"`
	ExplorerURL string `json:"explorerUrl"`
	Error       *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

type deposit struct {
	TxHash      common.Hash
	From        common.Address
	Token       common.Address
	DeroAddress string
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	printHeader("DERO Bridge Local E2E Test")

	printStep("Waiting for services to be healthy...")
	for _, url := range []string{*clientURL + "/health", *devwalletURL + "/health"} {
		if err := waitHealthy(ctx, url); err != nil {
			fail("%s: %v", url, err)
		}
	}
	printSuccess("Services healthy")

	printStep("Connecting wallet...")
	var session struct {
		ChainID string `json:"chainId"`
		Account string `json:"account"`
	}
	if err := call(ctx, http.MethodPost, *clientURL+"/api/v1/session/connect", nil, &session); err != nil {
		fail("connect: %v", err)
	}
	printSuccess("Connected %s on chain %s", session.Account, session.ChainID)

	printStep("Submitting bridge request...")
	payload := map[string]string{"walletAddress": *destination, "symbol": *symbol, "amount": *amount}
	var state transferState
	if err := call(ctx, http.MethodPost, *clientURL+"/api/v1/bridge/request", payload, &state); err != nil {
		fail("request: %v", err)
	}
	printSuccess("Request accepted, fee %s wei, phase %s", state.BridgeFee, state.Phase)

	tokenAddr, before := tokenBalance(ctx, session.Account)

	printStep("Executing transfer...")
	if err := call(ctx, http.MethodPost, *clientURL+"/api/v1/bridge/execute", nil, &state); err != nil {
		fail("execute: %v", err)
	}
	for state.Phase != "succeeded" && state.Phase != "failed" {
		select {
		case <-ctx.Done():
			fail("timed out in phase %s step %s", state.Phase, state.Step)
		case <-time.After(500 * time.Millisecond):
		}
		if err := call(ctx, http.MethodGet, *clientURL+"/api/v1/bridge/state", nil, &state); err != nil {
			fail("state: %v", err)
		}
		printInfo("phase=%s step=%s", state.Phase, state.Step)
	}
	if state.Phase == "failed" {
		fail("transfer failed: %s: %s", state.Error.Kind, state.Error.Message)
	}
	printSuccess("Bridge transaction %s", state.TxHash)
	printInfo("%s", state.ExplorerURL)

	printStep("Verifying devwallet deposit...")
	var deposits struct {
		Deposits []deposit `json:"deposits"`
	}
	if err := call(ctx, http.MethodGet, *devwalletURL+"/api/v1/deposits", nil, &deposits); err != nil {
		fail("deposits: %v", err)
	}
	found := false
	for _, d := range deposits.Deposits {
		if strings.EqualFold(d.TxHash.Hex(), state.TxHash) {
			found = d.DeroAddress == *destination && d.Token == tokenAddr
		}
	}
	if !found {
		fail("no matching deposit for %s", state.TxHash)
	}

	_, after := tokenBalance(ctx, session.Account)
	printSuccess("Deposit recorded, balance %s -> %s %s", before, after, *symbol)

	printHeader("E2E test passed")
}

// tokenBalance reads the account's balance of the requested token straight
// from the devwallet node.
func tokenBalance(ctx context.Context, account string) (common.Address, string) {
	client, err := ethclient.DialContext(ctx, *devwalletURL)
	if err != nil {
		fail("dial devwallet: %v", err)
	}
	defer client.Close()

	addr := common.HexToAddress(*bridgeAddr)

	opts := &bind.CallOpts{Context: ctx}
	bridge, err := contracts.NewDeroBridgeCaller(addr, client)
	if err != nil {
		fail("bind bridge: %v", err)
	}
	tokenAddr, err := bridge.RegisteredSymbol(opts, *symbol)
	if err != nil {
		fail("resolve %s: %v", *symbol, err)
	}

	token, err := contracts.NewERC20Caller(tokenAddr, client)
	if err != nil {
		fail("bind token: %v", err)
	}
	decimals, err := token.Decimals(opts)
	if err != nil {
		fail("decimals: %v", err)
	}
	balance, err := token.BalanceOf(opts, common.HexToAddress(account))
	if err != nil {
		fail("balance: %v", err)
	}
	return tokenAddr, ethereum.FromSmallestUnit(balance, decimals).String()
}

func waitHealthy(ctx context.Context, url string) error {
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

func call(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return json.Unmarshal(data, out)
}

func fail(format string, args ...any) {
	printError(format, args...)
	os.Exit(1)
}

func printHeader(msg string) {
	fmt.Printf("\n%s══════════════════════════════════════════════════════════════════════%s\n", colorBlue, colorReset)
	fmt.Printf("%s  %s%s\n", colorBlue, msg, colorReset)
	fmt.Printf("%s══════════════════════════════════════════════════════════════════════%s\n", colorBlue, colorReset)
}

func printStep(format string, args ...any) {
	fmt.Printf("%s>>> %s%s\n", colorCyan, fmt.Sprintf(format, args...), colorReset)
}

func printSuccess(format string, args ...any) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, fmt.Sprintf(format, args...), colorReset)
}

func printError(format string, args ...any) {
	fmt.Printf("%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
}

func printInfo(format string, args ...any) {
	fmt.Printf("    %s\n", fmt.Sprintf(format, args...))
}
