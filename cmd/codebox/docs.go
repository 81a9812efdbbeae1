package main

import (
	"fmt"
	"strings"

	"github.com/codebox-dev/codebox/pkg/docs"
	"github.com/codebox-dev/codebox/pkg/style"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:       "docs [topic]",
	Short:     "Show built-in documentation",
	ValidArgs: docs.Topics(),
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(style.Bold("Available topics:"))
			fmt.Println("  " + strings.Join(docs.Topics(), "\n  "))
			return nil
		}

		out, err := docs.Render(args[0])
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}
