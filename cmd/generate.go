package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/chrisdamba/deliverysim/internal/factories"
	"github.com/chrisdamba/deliverysim/internal/models"
	"github.com/chrisdamba/deliverysim/internal/simulator"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic command stream for load testing",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		out := os.Stdout
		if generateOut != "" {
			file, err := os.Create(generateOut)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
				os.Exit(1)
			}
			defer file.Close()
			out = file
		}

		factory := factories.NewCommandFactory(cfg.Generator.Seed)
		commands := factory.GenerateCommands(&cfg.Generator)

		w := bufio.NewWriter(out)
		for _, c := range commands {
			fmt.Fprintln(w, simulator.FormatCommandLine(c))
		}
		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing commands: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Write the stream to this file (stdout if empty)")
	generateCmd.Flags().Int64("seed", 42, "Random seed for the workload")
	generateCmd.Flags().Int("command-count", 50, "Number of commands to generate")
	generateCmd.Flags().Int("horizon-days", 2, "Length of the simulated horizon in days")

	viper.BindPFlag("generator.seed", generateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("generator.command_count", generateCmd.Flags().Lookup("command-count"))
	viper.BindPFlag("generator.horizon_days", generateCmd.Flags().Lookup("horizon-days"))

	rootCmd.AddCommand(generateCmd)
}
