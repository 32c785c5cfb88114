// vlcrc - remote control for a media player's telnet interface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vlcrc/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "vlcrc: %v\n", err)
		os.Exit(1)
	}
}
