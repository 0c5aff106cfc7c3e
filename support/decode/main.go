package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/urfave/cli/v2"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/escrow"
)

var requestDecodeCmd = &cli.Command{
	Name:        "request",
	Description: "decode a ledger request record from hex CBOR",
	Action:      runDecodeRequestCmd,
}

var escrowDecodeCmd = &cli.Command{
	Name:        "escrow",
	Description: "decode an escrow record from hex CBOR",
	Action:      runDecodeEscrowCmd,
}

var intDecodeCmd = &cli.Command{
	Name:        "int",
	Description: "decode big.Int from hex bytes",
	Action:      runDecodeIntCmd,
}

var addrDecodeCmd = &cli.Command{
	Name:        "addr",
	Description: "decode an address from hex bytes",
	Action:      runDecodeAddrCmd,
}

var topicCmd = &cli.Command{
	Name:        "topic",
	Description: "print the keccak256 topic of an event signature, e.g. \"Created(bytes32,address,address)\"",
	Action:      runTopicCmd,
}

func main() {
	app := &cli.App{
		Name:        "decode",
		Usage:       "Decode a hex encoded request-actors data structure",
		Description: "Decode a hex encoded request-actors data structure",
		Commands: []*cli.Command{
			requestDecodeCmd,
			escrowDecodeCmd,
			intDecodeCmd,
			addrDecodeCmd,
			topicCmd,
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	for _, c := range app.Commands {
		sort.Sort(cli.FlagsByName(c.Flags))
	}
	err := app.Run(os.Args)
	if err != nil {
		panic(err)
	}
}

func hexArg(ctx *cli.Context) ([]byte, error) {
	s := strings.TrimPrefix(ctx.Args().First(), "0x")
	return hex.DecodeString(s)
}

func runDecodeRequestCmd(ctx *cli.Context) error {
	b, err := hexArg(ctx)
	if err != nil {
		return err
	}
	var req core.Request
	if err := req.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return err
	}

	fmt.Printf("creator:   %v\n", req.Creator)
	fmt.Printf("payee:     %v\n", req.Payee)
	fmt.Printf("payer:     %v\n", req.Payer)
	fmt.Printf("expected:  %v\n", req.ExpectedAmount)
	fmt.Printf("balance:   %v\n", req.Balance)
	fmt.Printf("currency:  %v\n", req.CurrencyContract)
	fmt.Printf("state:     %v\n", req.State)
	if ext := req.ExtensionAddress(); ext != addr.Undef {
		fmt.Printf("extension: %v\n", ext)
	}
	if req.Data != "" {
		fmt.Printf("data:      %s\n", req.Data)
	}
	return nil
}

func runDecodeEscrowCmd(ctx *cli.Context) error {
	b, err := hexArg(ctx)
	if err != nil {
		return err
	}
	var e escrow.Escrow
	if err := e.UnmarshalCBOR(bytes.NewReader(b)); err != nil {
		return err
	}

	fmt.Printf("sub-contract: %v\n", e.SubContract)
	fmt.Printf("agent:        %v\n", e.EscrowAgent)
	fmt.Printf("state:        %v\n", e.State)
	fmt.Printf("paid:         %v\n", e.AmountPaid)
	fmt.Printf("refunded:     %v\n", e.AmountRefunded)
	fmt.Printf("net:          %v\n", e.Net())
	return nil
}

func runDecodeIntCmd(ctx *cli.Context) error {
	b, err := hexArg(ctx)
	if err != nil {
		return err
	}
	i, err := big.FromBytes(b)
	if err != nil {
		return err
	}
	fmt.Println(i)
	return nil
}

func runDecodeAddrCmd(ctx *cli.Context) error {
	b, err := hexArg(ctx)
	if err != nil {
		return err
	}
	a, err := addr.NewFromBytes(b)
	if err != nil {
		return err
	}
	fmt.Println(a)
	return nil
}

func runTopicCmd(ctx *cli.Context) error {
	fmt.Println(builtin.SignatureTopic(ctx.Args().First()).Hex())
	return nil
}
