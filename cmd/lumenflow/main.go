// Command lumenflow runs the two stages of the alpha video pipeline:
// "key" removes a uniform background into an alpha MP4 and "transcode"
// converts that intermediate into the delivery codec.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Ctrl+C and SIGTERM cancel the running engine instead of orphaning it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "lumenflow: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
