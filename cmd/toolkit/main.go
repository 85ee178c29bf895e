package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/textileio/go-ethmiddleware/buildinfo"
	"github.com/textileio/go-ethmiddleware/pkg/logging"
)

var cliName = "toolkit"

var rootCmd = &cobra.Command{
	Use:   cliName,
	Short: "toolkit signs and sends EVM transactions through a middleware stack",
	Long:  `toolkit manages local wallets, signs messages and sends transactions through a middleware stack`,
	Args:  cobra.ExactArgs(0),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		cfg, err := loadConfig(path)
		if err != nil {
			return err
		}
		if err := cfg.applyFlags(cmd); err != nil {
			return err
		}
		logging.SetupLogger(logging.Config{
			Version: buildinfo.GitCommit,
			Debug:   cfg.Log.Debug,
			Human:   cfg.Log.Human,
			Output:  os.Stderr,
		})
		conf = cfg
		return nil
	},
	SilenceUsage: true,
}

// conf is loaded before any command runs.
var conf *config

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", configFilename, "JSON configuration file, ignored if missing")
	rootCmd.PersistentFlags().String("privatekey", "", "hex encoded private key used to sign")
	rootCmd.PersistentFlags().String("gateway", "", "URL of an Ethereum node API (i.e: Alchemy/Infura)")
	rootCmd.PersistentFlags().Uint64("chain-id", 0, "chain id, used to build the gateway URL when none is given")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logs")
	rootCmd.PersistentFlags().Bool("human", false, "human readable logs")

	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(chainsCmd)
	rootCmd.AddCommand(versionCmd)

	walletCreateCmd.Flags().String("filename", "privatekey.hex", "Filename to store hex representation of private key")
	walletCmd.AddCommand(walletCreateCmd)
	walletCmd.AddCommand(walletAddressCmd)

	addSendFlags(sendCmd)
}
