package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/omeid/uconfig"
	"github.com/omeid/uconfig/plugins"
	"github.com/omeid/uconfig/plugins/defaults"
	"github.com/omeid/uconfig/plugins/env"
	"github.com/omeid/uconfig/plugins/file"
	"github.com/spf13/cobra"
)

// configFilename is the filename of the config file loaded when present.
var configFilename = "toolkit.json"

type config struct {
	Gateway struct {
		URL      string `default:""`
		Provider string `default:"alchemy"` // alchemy, infura or local
		APIKey   string `default:""`
	}
	ChainID    string `default:""`
	PrivateKey string `default:""`

	Nonce struct {
		Journal  string `default:""` // sqlite file of pending transactions, disabled if empty
		Resubmit bool   `default:"false"`
	}
	Policy struct {
		MaxValue   string `default:""` // wei
		Recipients string `default:""` // comma separated allow-list
		RateLimit  struct {
			Tokens   string `default:""` // disabled if empty
			Interval string `default:"1m"`
		}
	}
	Proxy string `default:""` // DSProxy address

	Metrics struct {
		Port string `default:""` // disabled if empty
	}
	Log struct {
		Human bool `default:"false"`
		Debug bool `default:"false"`
	}
}

func loadConfig(path string) (*config, error) {
	conf := &config{}

	ps := []plugins.Plugin{defaults.New()}
	if _, err := os.Stat(path); err == nil {
		ps = append(ps, file.New(path, jsoniter.Unmarshal, file.Config{}))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %s", path, err)
	}
	ps = append(ps, env.New())

	c, err := uconfig.New(conf, ps...)
	if err != nil {
		return nil, fmt.Errorf("creating config: %s", err)
	}
	if err := c.Parse(); err != nil {
		c.Usage()
		return nil, fmt.Errorf("parsing config: %s", err)
	}

	return conf, nil
}

// applyFlags overrides the configuration with the flags set in the command line.
func (c *config) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("privatekey") {
		v, err := flags.GetString("privatekey")
		if err != nil {
			return errors.New("failed to parse privatekey")
		}
		c.PrivateKey = v
	}
	if flags.Changed("gateway") {
		v, err := flags.GetString("gateway")
		if err != nil {
			return errors.New("failed to parse gateway")
		}
		c.Gateway.URL = v
	}
	if flags.Changed("chain-id") {
		v, err := flags.GetUint64("chain-id")
		if err != nil {
			return errors.New("failed to parse chain-id")
		}
		c.ChainID = strconv.FormatUint(v, 10)
	}
	if flags.Changed("debug") {
		c.Log.Debug = true
	}
	if flags.Changed("human") {
		c.Log.Human = true
	}
	return nil
}

// chainID returns the configured chain id, or zero if unset.
func (c *config) chainID() (uint64, error) {
	if c.ChainID == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(c.ChainID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("chain id %q has invalid format: %s", c.ChainID, err)
	}
	return id, nil
}
