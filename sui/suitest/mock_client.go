package suitest

import (
	"context"

	"github.com/oasislabs/sui-gateway/stats"
	"github.com/oasislabs/sui-gateway/sui"
	"github.com/stretchr/testify/mock"
)

type MockMethod struct {
	Arguments []interface{}
	Return    []interface{}
	Run       func(mock.Arguments)
}

type MockMethods map[string]MockMethod

var DefaultMockMethods = MockMethods{
	"ExecuteTransactionBlock": MockMethod{
		Arguments: []interface{}{mock.Anything, mock.Anything},
		Return:    []interface{}{SuccessResponse(), nil},
	},
}

func OverwriteDefaults(overwrite MockMethods) MockMethods {
	methods := make(MockMethods)

	for key, value := range DefaultMockMethods {
		if o, ok := overwrite[key]; ok {
			methods[key] = o
		} else {
			methods[key] = value
		}
	}

	return methods
}

func ImplementMockWithOverwrite(client *MockClient, overwrite MockMethods) {
	ImplementMockWithMethods(client, OverwriteDefaults(overwrite))
}

func ImplementMockWithMethods(client *MockClient, methods MockMethods) {
	for key, method := range methods {
		call := client.On(key, method.Arguments...)
		if len(method.Return) > 0 {
			call = call.Return(method.Return...)
		}
		if method.Run != nil {
			call = call.Run(method.Run)
		}
	}
}

func ImplementMock(client *MockClient) {
	ImplementMockWithMethods(client, DefaultMockMethods)
}

type MockClient struct {
	mock.Mock
}

func (c *MockClient) Name() string {
	return "suitest.MockClient"
}

func (c *MockClient) Stats() stats.Metrics {
	return nil
}

func (c *MockClient) ExecuteTransactionBlock(
	ctx context.Context,
	req sui.ExecuteRequest,
) (*sui.TransactionBlockResponse, error) {
	args := c.Called(ctx, req)
	if args.Get(1) != nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*sui.TransactionBlockResponse), nil
}
