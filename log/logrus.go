package log

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type LogrusLoggerProperties struct {
	Formatter logrus.Formatter
	Level     logrus.Level
	Output    io.Writer
}

// LogrusLogger is the root logger. Loggers for specific
// components are derived from it with ForClass
type LogrusLogger struct {
	root *logrus.Logger
}

// LogrusEntry is a logger bound to a package and class
type LogrusEntry struct {
	root  *logrus.Logger
	entry *logrus.Entry
}

func NewLogrus(properties LogrusLoggerProperties) Logger {
	log := logrus.New()

	if properties.Formatter == nil {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(properties.Formatter)
	}

	log.SetLevel(properties.Level)

	if properties.Output == nil {
		log.SetOutput(os.Stdout)
	} else {
		log.SetOutput(properties.Output)
	}

	return LogrusLogger{root: log}
}

func (l LogrusLogger) ForClass(pkg string, class string) Logger {
	return LogrusEntry{
		root: l.root,
		entry: l.root.WithFields(logrus.Fields{
			"pkg":   pkg,
			"class": class,
		}),
	}
}

func (l LogrusLogger) Debug(ctx context.Context, msg string, loggables ...Loggable) {
	l.root.WithFields(logrusMakeFields(ctx, loggables...)).Debug(msg)
}

func (l LogrusLogger) Info(ctx context.Context, msg string, loggables ...Loggable) {
	l.root.WithFields(logrusMakeFields(ctx, loggables...)).Info(msg)
}

func (l LogrusLogger) Warn(ctx context.Context, msg string, loggables ...Loggable) {
	l.root.WithFields(logrusMakeFields(ctx, loggables...)).Warn(msg)
}

func (l LogrusLogger) Error(ctx context.Context, msg string, loggables ...Loggable) {
	l.root.WithFields(logrusMakeFields(ctx, loggables...)).Error(msg)
}

func (l LogrusLogger) Fatal(ctx context.Context, msg string, loggables ...Loggable) {
	l.root.WithFields(logrusMakeFields(ctx, loggables...)).Fatal(msg)
}

func (e LogrusEntry) ForClass(pkg string, class string) Logger {
	return LogrusEntry{
		root: e.root,
		entry: e.root.WithFields(logrus.Fields{
			"pkg":   pkg,
			"class": class,
		}),
	}
}

func (e LogrusEntry) Debug(ctx context.Context, msg string, loggables ...Loggable) {
	e.entry.WithFields(logrusMakeFields(ctx, loggables...)).Debug(msg)
}

func (e LogrusEntry) Info(ctx context.Context, msg string, loggables ...Loggable) {
	e.entry.WithFields(logrusMakeFields(ctx, loggables...)).Info(msg)
}

func (e LogrusEntry) Warn(ctx context.Context, msg string, loggables ...Loggable) {
	e.entry.WithFields(logrusMakeFields(ctx, loggables...)).Warn(msg)
}

func (e LogrusEntry) Error(ctx context.Context, msg string, loggables ...Loggable) {
	e.entry.WithFields(logrusMakeFields(ctx, loggables...)).Error(msg)
}

func (e LogrusEntry) Fatal(ctx context.Context, msg string, loggables ...Loggable) {
	e.entry.WithFields(logrusMakeFields(ctx, loggables...)).Fatal(msg)
}

func logrusMakeFields(ctx context.Context, loggables ...Loggable) logrus.Fields {
	fields := LogrusFields{logrus.Fields{}}

	for _, loggable := range loggables {
		if loggable != nil {
			loggable.Log(&fields)
		}
	}

	if traceID := GetTraceID(ctx); len(traceID) > 0 {
		fields.Add("traceId", traceID)
	}

	return fields.fields
}

type LogrusFields struct {
	fields logrus.Fields
}

func (f *LogrusFields) Add(key string, value interface{}) {
	f.fields[key] = value
}
