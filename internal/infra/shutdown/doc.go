// Package shutdown coordinates teardown of long-running console
// work, such as the metrics watch loop and the session refresher.
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-bounded hook execution
//   - Reverse-order cleanup registration
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { poller.Stop(); return nil })
//	err := h.Wait(ctx)
package shutdown
