package httpapi

import (
	"context"
)

// serverBaseCtx ties in-flight handlers to the daemon's lifetime so a
// shutdown also cancels model switches and predictions still running.
var serverBaseCtx = context.Background()

// SetBaseContext installs the daemon-lifetime context consulted by the POST
// handlers. A nil ctx restores the Background default.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context canceled as soon as the daemon context or
// the request context is done. The returned cancel releases the watching
// goroutine and must be called when the handler returns.
func joinContexts(daemon, request context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		select {
		case <-daemon.Done():
		case <-request.Done():
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
