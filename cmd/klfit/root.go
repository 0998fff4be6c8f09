package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "v0.1.0"

var rootCmd = &cobra.Command{
	Use:   "klfit",
	Short: "KLFit - Gaussian fitting by KL minimization",
	Long: `KLFit fits a trainable multivariate Gaussian to a fixed target
distribution by gradient descent on the closed-form KL divergence.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("KLFit %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
