package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/chrisdamba/deliverysim/internal/models"
	"github.com/chrisdamba/deliverysim/internal/simulator"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "deliverysim",
	Short: "Simulates a single-courier delivery center minute by minute",
	Long: `deliverysim replays a timed stream of delivery commands against a
delivery center with one courier: three priority classes, reserved windows
for appointment deliveries, and deterministic tick-by-tick dispatch. Every
observable outcome is emitted as an event to the configured destination.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		input := os.Stdin
		if cfg.InputFile != "" {
			file, err := os.Open(cfg.InputFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
				os.Exit(1)
			}
			defer file.Close()
			input = file
		}

		commands, err := simulator.ParseCommands(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading commands: %v\n", err)
			os.Exit(1)
		}

		sched := simulator.NewScheduler(cfg)
		sched.LoadCommands(commands)
		if err := sched.Run(); err != nil {
			log.Fatalf("Simulation failed: %v", err)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")

	rootCmd.Flags().String("input-file", "", "Command stream file (stdin if empty)")
	rootCmd.Flags().String("output-destination", "console", "Event destination: console, file, parquet, kafka, postgres")
	rootCmd.Flags().String("output-path", "", "Base directory for file and parquet output")
	rootCmd.Flags().String("output-folder", "events", "Folder name under the output path")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().Int("max-ticks", models.DefaultMaxTicks, "Abort the run after this many simulated minutes")
	rootCmd.Flags().Bool("show-progress", false, "Show a command-consumption progress bar on stderr")

	viper.BindPFlag("input_file", rootCmd.Flags().Lookup("input-file"))
	viper.BindPFlag("output_destination", rootCmd.Flags().Lookup("output-destination"))
	viper.BindPFlag("output_path", rootCmd.Flags().Lookup("output-path"))
	viper.BindPFlag("output_folder", rootCmd.Flags().Lookup("output-folder"))
	viper.BindPFlag("kafka_broker_list", rootCmd.Flags().Lookup("kafka-broker-list"))
	viper.BindPFlag("max_ticks", rootCmd.Flags().Lookup("max-ticks"))
	viper.BindPFlag("show_progress", rootCmd.Flags().Lookup("show-progress"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
