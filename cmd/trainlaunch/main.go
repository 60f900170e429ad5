package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "trainlaunch",
		Short: "Training-job launcher for the external image-classification trainer",
		Long: `trainlaunch validates training parameters, stages the label file into the
artifact directory, assembles the external trainer invocation, runs it,
and reports whether the run produced the expected model artifacts.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
