// Package main is a manual harness for the audit trail pipeline. It emits
// portal events through the async publisher, floods the buffer to show the
// drop behavior, and prints what the store retained.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := audit.NewInMemoryStore()
	publisher := audit.NewPublisher(
		store,
		audit.WithAsyncBuffer(10), // Small buffer to test backpressure
		audit.WithPublisherLogger(logger),
	)
	defer publisher.Close()

	ctx := context.Background()

	fmt.Println("\n=== Audit Publisher Test ===")

	fmt.Println("1. Emitting 5 events (should all succeed)...")
	for i := 0; i < 5; i++ {
		event := audit.Event{
			Actor:     "admin",
			Subject:   fmt.Sprintf("student%d@example.com", i+1),
			Action:    string(audit.EventCertificateIssued),
			Decision:  "granted",
			Reason:    fmt.Sprintf("test event %d", i+1),
			RequestID: uuid.New().String(),
			ClientIP:  "203.0.113.42",
		}
		if err := publisher.Emit(ctx, event); err != nil {
			fmt.Printf("   Event %d failed: %v\n", i+1, err)
		} else {
			fmt.Printf("   Event %d emitted\n", i+1)
		}
		time.Sleep(50 * time.Millisecond) // Small delay to let worker process
	}

	// Give worker time to process
	time.Sleep(200 * time.Millisecond)

	fmt.Println("\n2. Flooding buffer with 50 events (buffer size is 10)...")
	for i := 0; i < 50; i++ {
		event := audit.Event{
			Actor:     "admin",
			Subject:   "flood@example.com",
			Action:    string(audit.EventCertificateDownloaded),
			Decision:  "granted",
			Reason:    fmt.Sprintf("flood event %d", i+1),
			RequestID: uuid.New().String(),
		}
		// Overflow is dropped with a warning rather than surfaced as an error,
		// so the hot path never blocks on the trail.
		_ = publisher.Emit(ctx, event)
	}

	// Give worker time to process remaining
	time.Sleep(500 * time.Millisecond)

	fmt.Println("\n3. Checking store contents...")
	events, err := store.ListRecent(ctx, 1000)
	if err != nil {
		fmt.Printf("   ListRecent failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   Events retained: %d of 55 emitted (gap = dropped by full buffer)\n", len(events))

	fmt.Println("\n4. Checking client IP anonymization...")
	for _, event := range events {
		if event.ClientIP != "" {
			fmt.Printf("   Stored client IP: %s (raw was 203.0.113.42)\n", event.ClientIP)
			break
		}
	}
}
