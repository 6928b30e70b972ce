package sui

import (
	"context"
	"encoding/base64"
	"net/url"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/stats"
	"github.com/pkg/errors"
)

const executeTransactionBlock = "sui_executeTransactionBlock"

// RPCClientProps are the properties used to dial a node
type RPCClientProps struct {
	URL string
}

// RPCClient is a Client that talks JSON-RPC 2.0 to a node
type RPCClient struct {
	logger  log.Logger
	client  *rpc.Client
	tracker *stats.MethodTracker
}

// NewRPCClientWithDeps wraps an already connected rpc client
func NewRPCClientWithDeps(logger log.Logger, client *rpc.Client) *RPCClient {
	return &RPCClient{
		logger:  logger.ForClass("sui", "RPCClient"),
		client:  client,
		tracker: stats.NewMethodTracker(executeTransactionBlock),
	}
}

// DialContext connects to the node at props.URL. Supported schemes are
// http, https, ws and wss.
func DialContext(ctx context.Context, logger log.Logger, props RPCClientProps) (*RPCClient, error) {
	if len(props.URL) == 0 {
		return nil, errors.New("no url provided for sui client")
	}

	u, err := url.Parse(props.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse url")
	}

	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, errors.Errorf("unsupported scheme %q, expected http, https, ws or wss", u.Scheme)
	}

	client, err := rpc.DialContext(ctx, props.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial sui node")
	}

	return NewRPCClientWithDeps(logger, client), nil
}

func (c *RPCClient) Name() string {
	return "sui.RPCClient"
}

func (c *RPCClient) Stats() stats.Metrics {
	return c.tracker.Stats()
}

// Close closes the underlying connection
func (c *RPCClient) Close() {
	c.client.Close()
}

// ExecuteTransactionBlock is the implementation of Client for RPCClient
func (c *RPCClient) ExecuteTransactionBlock(
	ctx context.Context,
	req ExecuteRequest,
) (*TransactionBlockResponse, error) {
	v, err := c.tracker.Instrument(executeTransactionBlock, func() (interface{}, error) {
		return c.executeTransactionBlock(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	return v.(*TransactionBlockResponse), nil
}

func (c *RPCClient) executeTransactionBlock(
	ctx context.Context,
	req ExecuteRequest,
) (*TransactionBlockResponse, error) {
	signatures := make([]string, 0, len(req.Signatures))
	for _, sig := range req.Signatures {
		signatures = append(signatures, base64.StdEncoding.EncodeToString(sig))
	}

	c.logger.Debug(ctx, "", log.MapFields{
		"call_type":   "ExecuteTransactionBlockAttempt",
		"signatures":  len(signatures),
		"requestType": string(req.RequestType),
	})

	var res TransactionBlockResponse
	if err := c.client.CallContext(ctx, &res, executeTransactionBlock,
		base64.StdEncoding.EncodeToString(req.TxBytes),
		signatures,
		req.Options,
		req.RequestType,
	); err != nil {
		c.logger.Debug(ctx, "node call failed", log.MapFields{
			"call_type": "ExecuteTransactionBlockFailure",
			"err":       err.Error(),
		})
		return nil, err
	}

	c.logger.Debug(ctx, "node call succeeded", log.MapFields{
		"call_type": "ExecuteTransactionBlockSuccess",
		"digest":    res.Digest,
		"errors":    len(res.Errors),
	})

	return &res, nil
}
