package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/textileio/go-ethmiddleware/pkg/chains"
	"github.com/textileio/go-ethmiddleware/pkg/metrics"
	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	nonceimpl "github.com/textileio/go-ethmiddleware/pkg/nonce/impl"
	"github.com/textileio/go-ethmiddleware/pkg/policy"
	"github.com/textileio/go-ethmiddleware/pkg/provider"
	"github.com/textileio/go-ethmiddleware/pkg/stack"
	"github.com/textileio/go-ethmiddleware/pkg/transformer"
	"github.com/textileio/go-ethmiddleware/pkg/wallet"
)

// pipeline is the stack built from the configuration, with the resources to release once done.
type pipeline struct {
	top      middleware.Middleware
	provider *provider.Provider
	wallet   *wallet.Wallet
	closers  []func(context.Context) error
}

func (p *pipeline) close(ctx context.Context) {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("releasing resources")
		}
	}
}

func buildPipeline(ctx context.Context, cfg *config) (*pipeline, error) {
	if cfg.PrivateKey == "" {
		return nil, errors.New("a private key is required")
	}
	w, err := wallet.NewWallet(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("decode key: %s", err)
	}

	chainID, err := cfg.chainID()
	if err != nil {
		return nil, err
	}
	url := cfg.Gateway.URL
	if url == "" {
		if chainID == 0 {
			return nil, errors.New("either a gateway url or a chain id is required")
		}
		url, err = chains.EndpointURL(chains.ChainID(chainID), cfg.Gateway.Provider, cfg.Gateway.APIKey)
		if err != nil {
			return nil, fmt.Errorf("building gateway url: %s", err)
		}
	}

	pl := &pipeline{wallet: w}

	if cfg.Metrics.Port != "" {
		endpoint, err := metrics.SetupInstrumentation(":"+cfg.Metrics.Port, cliName)
		if err != nil {
			return nil, fmt.Errorf("setting up instrumentation: %s", err)
		}
		pl.closers = append(pl.closers, endpoint.Close)
	}

	var providerOpts []provider.Option
	if chainID != 0 {
		providerOpts = append(providerOpts, provider.WithChainID(chainID))
	}
	p, err := provider.Dial(ctx, url, providerOpts...)
	if err != nil {
		pl.close(ctx)
		return nil, fmt.Errorf("failed to connect to ethereum endpoint: %s", err)
	}
	pl.provider = p
	pl.closers = append(pl.closers, func(context.Context) error {
		p.Close()
		return nil
	})

	var nonceOpts []nonceimpl.Option
	if cfg.Nonce.Journal != "" {
		store, err := nonceimpl.NewPendingStore(cfg.Nonce.Journal)
		if err != nil {
			pl.close(ctx)
			return nil, fmt.Errorf("opening nonce journal: %s", err)
		}
		pl.closers = append(pl.closers, func(context.Context) error {
			return store.Close()
		})
		nonceOpts = append(nonceOpts, nonceimpl.WithPendingStore(store))
	}
	if cfg.Nonce.Resubmit {
		nonceOpts = append(nonceOpts, nonceimpl.WithResubmit())
	}

	b := stack.New(p).
		Instrumented("provider").
		WithSignerFromChain(ctx, w).
		WithNonceManager(nonceOpts...)

	policies, err := buildPolicies(cfg)
	if err != nil {
		pl.close(ctx)
		return nil, err
	}
	for _, pol := range policies {
		if c, ok := pol.(interface{ Close(context.Context) error }); ok {
			pl.closers = append(pl.closers, c.Close)
		}
	}
	if len(policies) > 0 {
		b = b.WithPolicy(policy.All(policies...))
	}

	if cfg.Proxy != "" {
		if !common.IsHexAddress(cfg.Proxy) {
			pl.close(ctx)
			return nil, fmt.Errorf("proxy %q isn't an address", cfg.Proxy)
		}
		proxy, err := transformer.NewDsProxy(common.HexToAddress(cfg.Proxy))
		if err != nil {
			pl.close(ctx)
			return nil, fmt.Errorf("creating proxy transformer: %s", err)
		}
		b = b.WithTransformer(proxy)
	}

	top, err := b.Instrumented(cliName).Build()
	if err != nil {
		pl.close(ctx)
		return nil, fmt.Errorf("building stack: %s", err)
	}
	pl.top = top
	if nm, ok := stack.Layer[*nonceimpl.NonceManager](top); ok {
		pl.closers = append(pl.closers, func(context.Context) error {
			return nm.Close()
		})
	}

	return pl, nil
}

func buildPolicies(cfg *config) ([]policy.Policy, error) {
	var policies []policy.Policy

	if cfg.Policy.MaxValue != "" {
		limit, ok := new(big.Int).SetString(cfg.Policy.MaxValue, 10)
		if !ok {
			return nil, fmt.Errorf("max value %q has invalid format", cfg.Policy.MaxValue)
		}
		policies = append(policies, policy.MaxValue(limit))
	}

	if cfg.Policy.Recipients != "" {
		var addrs []common.Address
		for _, s := range strings.Split(cfg.Policy.Recipients, ",") {
			s = strings.TrimSpace(s)
			if !common.IsHexAddress(s) {
				return nil, fmt.Errorf("recipient %q isn't an address", s)
			}
			addrs = append(addrs, common.HexToAddress(s))
		}
		policies = append(policies, policy.AllowRecipients(addrs...))
	}

	if cfg.Policy.RateLimit.Tokens != "" {
		tokens, err := strconv.ParseUint(cfg.Policy.RateLimit.Tokens, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("rate limit tokens %q has invalid format: %s", cfg.Policy.RateLimit.Tokens, err)
		}
		interval, err := time.ParseDuration(cfg.Policy.RateLimit.Interval)
		if err != nil {
			return nil, fmt.Errorf("rate limit interval has invalid format: %s", err)
		}
		rl, err := policy.RateLimit(tokens, interval)
		if err != nil {
			return nil, fmt.Errorf("creating rate limit: %s", err)
		}
		policies = append(policies, rl)
	}

	return policies, nil
}
