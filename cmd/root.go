// Package cmd is the main command file for Cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	closecmd "github.com/summafin/summa/cmd/close"
	"github.com/summafin/summa/cmd/generate"
	"github.com/summafin/summa/cmd/initialize"
	"github.com/summafin/summa/cmd/post"
	"github.com/summafin/summa/cmd/report"
)

var rootCmd = &cobra.Command{
	Use:   "summa",
	Short: "summa is a double entry bookkeeping tool",
	Long: `summa keeps a chart of accounts and a journal of balanced entries,
closes accounting periods and derives financial statements.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initialize.CreateCmd())
	rootCmd.AddCommand(post.CreateCmd())
	rootCmd.AddCommand(closecmd.CreateCmd())
	rootCmd.AddCommand(report.CreateCmd())
	rootCmd.AddCommand(generate.CreateCmd())
}
