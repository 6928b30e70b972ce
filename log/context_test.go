package log

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetTraceIDEmpty(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))
}

func TestGetTraceIDWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ContextKeyTraceID, 1234)
	assert.Equal(t, "", GetTraceID(ctx))
}

func TestPutTraceID(t *testing.T) {
	ctx := PutTraceID(context.Background(), "trace")
	assert.Equal(t, "trace", GetTraceID(ctx))
}

func TestNewTraceID(t *testing.T) {
	id, err := uuid.Parse(NewTraceID())

	assert.Nil(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())
}
