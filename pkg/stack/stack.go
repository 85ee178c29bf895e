package stack

import (
	"context"
	"fmt"

	"github.com/textileio/go-ethmiddleware/pkg/middleware"
	"github.com/textileio/go-ethmiddleware/pkg/middleware/instrumented"
	"github.com/textileio/go-ethmiddleware/pkg/middleware/signing"
	nonceimpl "github.com/textileio/go-ethmiddleware/pkg/nonce/impl"
	"github.com/textileio/go-ethmiddleware/pkg/policy"
	"github.com/textileio/go-ethmiddleware/pkg/signer"
	"github.com/textileio/go-ethmiddleware/pkg/transformer"
)

// Builder composes a stack of layers. Each call wraps the current top of the stack, so layers
// are listed from the endpoint outwards. The first failure is kept and returned by Build.
//
// The nonce manager is meant to wrap the signer: it reads the sender from it and hands it filled
// nonces.
type Builder struct {
	top middleware.Middleware
	err error
}

// New starts a stack over base, usually a *provider.Provider.
func New(base middleware.Middleware) *Builder {
	return &Builder{top: base}
}

// WithSigner wraps the stack with a signer layer.
func (b *Builder) WithSigner(s signer.Signer, opts ...signing.Option) *Builder {
	if b.err != nil {
		return b
	}
	b.top = signing.New(b.top, s, opts...)
	return b
}

// WithSignerFromChain wraps the stack with a signer layer bound to the chain id of the stack.
func (b *Builder) WithSignerFromChain(ctx context.Context, s signer.Signer, opts ...signing.Option) *Builder {
	if b.err != nil {
		return b
	}
	m, err := signing.NewWithProviderChain(ctx, b.top, s, opts...)
	if err != nil {
		b.err = fmt.Errorf("creating signer layer: %w", err)
		return b
	}
	b.top = m
	return b
}

// WithNonceManager wraps the stack with a nonce manager.
func (b *Builder) WithNonceManager(opts ...nonceimpl.Option) *Builder {
	if b.err != nil {
		return b
	}
	m, err := nonceimpl.New(b.top, opts...)
	if err != nil {
		b.err = fmt.Errorf("creating nonce manager: %w", err)
		return b
	}
	b.top = m
	return b
}

// WithPolicy wraps the stack with a policy layer.
func (b *Builder) WithPolicy(p policy.Policy) *Builder {
	if b.err != nil {
		return b
	}
	b.top = policy.New(b.top, p)
	return b
}

// WithTransformer wraps the stack with a transformer layer.
func (b *Builder) WithTransformer(t transformer.Transformer, opts ...transformer.Option) *Builder {
	if b.err != nil {
		return b
	}
	b.top = transformer.New(b.top, t, opts...)
	return b
}

// Instrumented records metrics for the current top of the stack under the given layer name.
func (b *Builder) Instrumented(layer string) *Builder {
	if b.err != nil {
		return b
	}
	m, err := instrumented.New(b.top, layer)
	if err != nil {
		b.err = fmt.Errorf("instrumenting %s: %w", layer, err)
		return b
	}
	b.top = m
	return b
}

// Build returns the outermost layer.
func (b *Builder) Build() (middleware.Middleware, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.top, nil
}

// Layer returns the first layer of type T found walking down from m.
func Layer[T middleware.Middleware](m middleware.Middleware) (T, bool) {
	for m != nil {
		if l, ok := m.(T); ok {
			return l, true
		}
		m = m.Inner()
	}
	var zero T
	return zero, false
}
