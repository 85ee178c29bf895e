package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/textileio/go-ethmiddleware/pkg/wallet"
)

var signCmd = &cobra.Command{
	Use:   "sign <message>",
	Short: "Signs a message",
	Long:  `Signs a message with the EIP-191 personal message prefix, as personal_sign does`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if conf.PrivateKey == "" {
			return errors.New("a private key is required")
		}
		w, err := wallet.NewWallet(conf.PrivateKey)
		if err != nil {
			return fmt.Errorf("decode key: %s", err)
		}

		sig, err := w.SignMessage([]byte(args[0]))
		if err != nil {
			return fmt.Errorf("signing message: %s", err)
		}

		fmt.Printf("Signer %s\n", w.Address())
		fmt.Printf("Signature %s\n", sig)

		return nil
	},
}
