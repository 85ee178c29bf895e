package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	nonceimpl "github.com/textileio/go-ethmiddleware/pkg/nonce/impl"
	"github.com/textileio/go-ethmiddleware/pkg/stack"
	"github.com/textileio/go-ethmiddleware/pkg/txn"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sends a transaction",
	Long:  `Fills, signs and sends a transaction through the middleware stack`,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		tx, err := txFromFlags(cmd)
		if err != nil {
			return err
		}
		wait, err := cmd.Flags().GetBool("wait")
		if err != nil {
			return errors.New("failed to parse wait")
		}
		confirmations, err := cmd.Flags().GetUint64("confirmations")
		if err != nil {
			return errors.New("failed to parse confirmations")
		}
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return errors.New("failed to parse json")
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		pl, err := buildPipeline(ctx, conf)
		if err != nil {
			return err
		}
		defer pl.close(context.Background())

		pending, err := pl.top.SendTransaction(ctx, tx, nil)
		if err != nil {
			return fmt.Errorf("sending transaction: %w", err)
		}
		fmt.Printf("Transaction %s sent\n", pending.Hash)

		if !wait {
			return nil
		}
		receipt, err := pending.Confirmations(confirmations).Wait(ctx)
		if err != nil {
			return fmt.Errorf("waiting for receipt: %w", err)
		}
		if asJSON {
			b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(receipt, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding receipt: %s", err)
			}
			fmt.Println(string(b))
		} else {
			fmt.Printf("Included in block %s with status %d\n", receipt.BlockNumber, receipt.Status)
		}

		if nm, ok := stack.Layer[*nonceimpl.NonceManager](pl.top); ok {
			if err := nm.Confirm(ctx, pl.wallet.Address(), pl.provider.Backend(), confirmations); err != nil {
				log.Warn().Err(err).Msg("confirming journaled transactions")
			}
		}

		return nil
	},
}

func addSendFlags(cmd *cobra.Command) {
	cmd.Flags().String("to", "", "recipient address")
	cmd.Flags().String("value", "0", "value in wei")
	cmd.Flags().String("data", "", "hex encoded calldata")
	cmd.Flags().Bool("legacy", false, "send a legacy transaction")
	cmd.Flags().Bool("wait", false, "wait for the receipt")
	cmd.Flags().Uint64("confirmations", 1, "confirmations to wait for")
	cmd.Flags().Bool("json", false, "print the receipt as JSON")
}

func txFromFlags(cmd *cobra.Command) (*txn.TypedTransaction, error) {
	flags := cmd.Flags()
	to, err := flags.GetString("to")
	if err != nil {
		return nil, errors.New("failed to parse to")
	}
	value, err := flags.GetString("value")
	if err != nil {
		return nil, errors.New("failed to parse value")
	}
	data, err := flags.GetString("data")
	if err != nil {
		return nil, errors.New("failed to parse data")
	}
	legacy, err := flags.GetBool("legacy")
	if err != nil {
		return nil, errors.New("failed to parse legacy")
	}

	tx := txn.NewDynamicFee()
	if legacy {
		tx = txn.NewLegacy()
	}
	if to != "" {
		if !common.IsHexAddress(to) {
			return nil, fmt.Errorf("recipient %q isn't an address", to)
		}
		tx.SetTo(common.HexToAddress(to))
	}
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("value %q has invalid format", value)
	}
	tx.SetValue(v)
	if data != "" {
		b, err := hexutil.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decoding data: %s", err)
		}
		tx.SetData(b)
	}
	if tx.To == nil && len(tx.Data) == 0 {
		return nil, errors.New("either a recipient or contract creation data is required")
	}
	return tx, nil
}
