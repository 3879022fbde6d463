// Command mindpaper opens mind maps on an infinite canvas, exports them as
// images and serves a small note list.
package main

import (
	"context"
	"os"

	"github.com/phanxgames/mindpaper/internal/ui"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		ui.Bad.Fprintf(os.Stderr, "mindpaper: %v\n", err)
		os.Exit(1)
	}
}
