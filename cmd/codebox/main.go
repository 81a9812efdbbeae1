package main

import (
	"fmt"
	"os"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/style"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// A user-chosen no-op is not a failure.
		if errors.IsCancelled(err) {
			fmt.Println(style.Muted("Cancelled, nothing was changed."))
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, style.Error(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
