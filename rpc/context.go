package rpc

import (
	"github.com/oasislabs/sui-gateway/log"
)

const maxTraceIDLength = 128

// ParseTraceID returns the trace id provided by a caller or a newly
// generated one if it is missing or too long
func ParseTraceID(s string) string {
	if len(s) == 0 || len(s) > maxTraceIDLength {
		return log.NewTraceID()
	}

	return s
}
