package version

import (
	"context"

	"github.com/oasislabs/sui-gateway/rpc"
)

// APIVersion is the version of the HTTP API served by the gateway
const APIVersion = 0

// Deps are the dependencies expected by the version Handler
type Deps struct {
	// Backend is the name of the provider transactions are executed on
	Backend string
}

// Handler is the handler to satisfy version related requests
type Handler struct {
	backend string
}

// NewHandler creates a new instance of a version handler
func NewHandler(deps *Deps) Handler {
	return Handler{backend: deps.Backend}
}

// GetVersion returns the version of the component
func (h Handler) GetVersion(ctx context.Context, v interface{}) (interface{}, error) {
	_ = v.(*GetVersionRequest)
	return &GetVersionResponse{
		Version: APIVersion,
		Backend: h.backend,
	}, nil
}

// BindHandler binds the version handler to the handler binder
func BindHandler(deps *Deps, binder rpc.HandlerBinder) {
	handler := NewHandler(deps)

	binder.Bind("GET", "/v0/api/version", rpc.HandlerFunc(handler.GetVersion),
		rpc.EntityFactoryFunc(func() interface{} { return &GetVersionRequest{} }))
}
