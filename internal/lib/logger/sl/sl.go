// Package sl wraps an error as a slog.Attr, so a logging call site (such as
// package bulkload's) can attach an error without spelling out the key and
// string value each time.
package sl

import "log/slog"

// Err wraps err under the conventional "error" key.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
