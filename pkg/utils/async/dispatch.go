package async

import (
	"context"

	"github.com/secmon-lab/zombiequote/pkg/utils/errutil"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine with a background context that keeps the
// caller's logger. Errors and panics are logged and never reach the caller.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) <-chan struct{} {
	bgCtx := logging.With(context.Background(), logging.From(ctx))
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()

	return done
}
