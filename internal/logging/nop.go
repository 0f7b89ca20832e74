package logging

import "github.com/cool-japan/legalis-cluster/types"

// NopLogger is a no-op logger that discards all log messages.
//
// Used as the default when no logger is configured, so components never need
// nil checks before logging.
type NopLogger struct{}

// Compile-time assertion that NopLogger implements Logger.
var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger that discards all messages.
func NewNop() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (n *NopLogger) Debug(_ string, _ ...any) {}

// Info discards the message.
func (n *NopLogger) Info(_ string, _ ...any) {}

// Warn discards the message.
func (n *NopLogger) Warn(_ string, _ ...any) {}

// Error discards the message.
func (n *NopLogger) Error(_ string, _ ...any) {}

// Fatal discards the message. Unlike production loggers it does NOT call
// os.Exit, which is intentional for testing scenarios.
func (n *NopLogger) Fatal(_ string, _ ...any) {}
