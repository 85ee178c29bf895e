package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/textileio/go-ethmiddleware/pkg/wallet"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Offers wallet utilites",
	Long:  `Offers wallet utilites`,
	Args:  cobra.ExactArgs(1),
}

var walletCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates an ETH wallet",
	Long:  `Creates an ETH wallet and stores its private key in a file`,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename, err := cmd.Flags().GetString("filename")
		if err != nil {
			return errors.New("failed to parse filename")
		}
		w, err := wallet.New()
		if err != nil {
			return fmt.Errorf("creating wallet: %s", err)
		}
		key, ok := w.Key().(*wallet.LocalKey)
		if !ok {
			return errors.New("wallet isn't backed by a local key")
		}

		if err := os.WriteFile(filename, []byte(hexutil.Encode(key.Bytes())[2:]), 0o600); err != nil {
			return fmt.Errorf("writing to file %s: %s", filename, err)
		}

		fmt.Printf("Wallet address %s created\n", w.Address())
		fmt.Printf("Private key saved in %s\n", filename)

		return nil
	},
}

var walletAddressCmd = &cobra.Command{
	Use:   "address <privatekey>",
	Short: "Returns address of ETH wallet",
	Long:  `Returns address of ETH wallet`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.NewWallet(args[0])
		if err != nil {
			return fmt.Errorf("decode key: %s", err)
		}

		fmt.Printf("Wallet address %s\n", w.Address())

		return nil
	},
}
