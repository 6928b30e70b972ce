package sui

import (
	"context"

	"github.com/oasislabs/sui-gateway/log"
)

// ClientFactory creates a new instance of a client based
// on the provided properties
type ClientFactory interface {
	New(context.Context, log.Logger, RPCClientProps) (Client, error)
}

// ClientFactoryFunc allows for functions to act as a ClientFactory
type ClientFactoryFunc func(context.Context, log.Logger, RPCClientProps) (Client, error)

// New implementation of ClientFactory for ClientFactoryFunc
func (f ClientFactoryFunc) New(ctx context.Context, logger log.Logger, props RPCClientProps) (Client, error) {
	return f(ctx, logger, props)
}

// NewClient dials a node over JSON-RPC
var NewClient = ClientFactoryFunc(func(ctx context.Context, logger log.Logger, props RPCClientProps) (Client, error) {
	return DialContext(ctx, logger, props)
})
