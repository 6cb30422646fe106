// Package contracts holds Go bindings for the two contracts the bridge client
// talks to. They follow abigen's layout but only cover the methods the client
// calls.
package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DeroBridgeMetaData contains all meta data concerning the DeroBridge contract.
var DeroBridgeMetaData = &bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"bridgeFee\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"registeredSymbol\",\"inputs\":[{\"name\":\"symbol\",\"type\":\"string\",\"internalType\":\"string\"}],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"bridgeETH2DERO\",\"inputs\":[{\"name\":\"token\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"deroAddress\",\"type\":\"string\",\"internalType\":\"string\"},{\"name\":\"amount\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"outputs\":[],\"stateMutability\":\"payable\"}]",
}

// DeroBridge is a Go binding around the Ethereum side of the Dero Stargate bridge.
type DeroBridge struct {
	DeroBridgeCaller     // Read-only binding to the contract
	DeroBridgeTransactor // Write-only binding to the contract
}

// DeroBridgeCaller is a read-only Go binding around the bridge contract.
type DeroBridgeCaller struct {
	contract *bind.BoundContract // Generic contract wrapper for the low level calls
}

// DeroBridgeTransactor is a write-only Go binding around the bridge contract.
type DeroBridgeTransactor struct {
	contract *bind.BoundContract // Generic contract wrapper for the low level calls
}

// NewDeroBridge creates a new instance of DeroBridge, bound to a specific deployed contract.
func NewDeroBridge(address common.Address, backend bind.ContractBackend) (*DeroBridge, error) {
	contract, err := bindDeroBridge(address, backend, backend, backend)
	if err != nil {
		return nil, err
	}
	return &DeroBridge{DeroBridgeCaller: DeroBridgeCaller{contract: contract}, DeroBridgeTransactor: DeroBridgeTransactor{contract: contract}}, nil
}

// NewDeroBridgeCaller creates a new read-only instance of DeroBridge, bound to a specific deployed contract.
func NewDeroBridgeCaller(address common.Address, caller bind.ContractCaller) (*DeroBridgeCaller, error) {
	contract, err := bindDeroBridge(address, caller, nil, nil)
	if err != nil {
		return nil, err
	}
	return &DeroBridgeCaller{contract: contract}, nil
}

// NewDeroBridgeTransactor creates a new write-only instance of DeroBridge, bound to a specific deployed contract.
func NewDeroBridgeTransactor(address common.Address, transactor bind.ContractTransactor) (*DeroBridgeTransactor, error) {
	contract, err := bindDeroBridge(address, nil, transactor, nil)
	if err != nil {
		return nil, err
	}
	return &DeroBridgeTransactor{contract: contract}, nil
}

// bindDeroBridge binds a generic wrapper to an already deployed contract.
func bindDeroBridge(address common.Address, caller bind.ContractCaller, transactor bind.ContractTransactor, filterer bind.ContractFilterer) (*bind.BoundContract, error) {
	parsed, err := DeroBridgeMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(address, *parsed, caller, transactor, filterer), nil
}

// BridgeFee is a free data retrieval call binding the contract method bridgeFee.
//
// Solidity: function bridgeFee() view returns(uint256)
func (_DeroBridge *DeroBridgeCaller) BridgeFee(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := _DeroBridge.contract.Call(opts, &out, "bridgeFee")

	if err != nil {
		return *new(*big.Int), err
	}

	out0 := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)

	return out0, err

}

// RegisteredSymbol is a free data retrieval call binding the contract method registeredSymbol.
//
// Solidity: function registeredSymbol(string symbol) view returns(address)
func (_DeroBridge *DeroBridgeCaller) RegisteredSymbol(opts *bind.CallOpts, symbol string) (common.Address, error) {
	var out []interface{}
	err := _DeroBridge.contract.Call(opts, &out, "registeredSymbol", symbol)

	if err != nil {
		return *new(common.Address), err
	}

	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)

	return out0, err

}

// BridgeETH2DERO is a paid mutator transaction binding the contract method bridgeETH2DERO.
//
// Solidity: function bridgeETH2DERO(address token, string deroAddress, uint256 amount) payable returns()
func (_DeroBridge *DeroBridgeTransactor) BridgeETH2DERO(opts *bind.TransactOpts, token common.Address, deroAddress string, amount *big.Int) (*types.Transaction, error) {
	return _DeroBridge.contract.Transact(opts, "bridgeETH2DERO", token, deroAddress, amount)
}
