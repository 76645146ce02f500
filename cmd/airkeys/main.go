package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayusman/airkeys/internal/app"
	"github.com/ayusman/airkeys/internal/store"
)

func main() {
	fmt.Println("Airkeys - Dwell-to-Type Air Keyboard")

	// The journal only lives for this run
	st, err := store.New(store.MemoryPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cfg := app.DefaultConfig()
	cfg.Store = st

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create keyboard: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Hover your index finger over a key to type it. Press ESC to quit.")
	if err := a.Run(ctx); err != nil {
		stop()
		log.Fatalf("Keyboard failed: %v", err)
	}

	printSummary(a)
}

// printSummary writes the typed text and per-key commit counts to stdout.
func printSummary(a *app.App) {
	text := a.Text()
	fmt.Printf("\nTyped %d characters\n", len([]rune(text)))
	if text != "" {
		fmt.Printf("%q\n", text)
	}

	counts, err := a.Summary()
	if err != nil {
		log.Printf("Failed to read journal: %v", err)
		return
	}
	for _, kc := range counts {
		fmt.Printf("  %-6s %d\n", kc.Key, kc.Count)
	}
}
