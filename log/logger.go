package log

import "context"

// Fields collects the key/value pairs attached to a log entry
type Fields interface {
	Add(key string, value interface{})
}

// Loggable is implemented by types that know how to describe
// themselves in a log entry
type Loggable interface {
	Log(fields Fields)
}

// MapFields is a simple Loggable backed by a map. It can also be
// used as Fields to capture what a Loggable writes
type MapFields map[string]interface{}

// Log is the implementation of Loggable for MapFields
func (m MapFields) Log(fields Fields) {
	for key, value := range m {
		fields.Add(key, value)
	}
}

// Add is the implementation of Fields for MapFields
func (m MapFields) Add(key string, value interface{}) {
	m[key] = value
}

type Logger interface {
	ForClass(pkg string, class string) Logger
	Debug(ctx context.Context, msg string, loggable ...Loggable)
	Info(ctx context.Context, msg string, loggable ...Loggable)
	Warn(ctx context.Context, msg string, loggable ...Loggable)
	Error(ctx context.Context, msg string, loggable ...Loggable)
	Fatal(ctx context.Context, msg string, loggable ...Loggable)
}
