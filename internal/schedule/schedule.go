// Package schedule runs recurring agent tasks on a fixed interval.
package schedule

import (
	"context"
	"log"
	"time"
)

// Every runs task immediately and then once per interval until ctx is
// canceled. A task error is logged and the loop keeps going; one bad
// cycle never stops the service.
func Every(ctx context.Context, interval time.Duration, name string, task func(context.Context) error) error {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] cycle error: %v", name, err)
		}
		log.Printf("⏳ [%s] next run in %s", name, interval)
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			run()
		}
	}
}
