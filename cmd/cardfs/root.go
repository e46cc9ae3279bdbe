package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uicctools/cardfs/config"
	"github.com/uicctools/cardfs/definitions"
	"github.com/uicctools/cardfs/filesystem"
	"github.com/uicctools/cardfs/internal/util"
	"github.com/uicctools/cardfs/sim"
	"github.com/uicctools/cardfs/transport/simcard"
)

var (
	cfg *config.Config

	flagVerbose        int
	flagConfigPath     string
	flagDefinitions    string
	flagIgnoreExisting bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cardfs",
	Short: "Explore and edit the ISO7816 smart card filesystem model",
	Long: `cardfs models the smart card filesystem (MF, DF, ADF and EF entries) as a
navigable tree. The built-in SIM/USIM catalogs can be extended with YAML or
JSON tree definitions, and the shell subcommand runs an interactive session
against a simulated card.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var override *config.ConfigOverride
		if flagConfigPath != "" {
			var err error
			override, err = config.LoadConfigOverrideFile(flagConfigPath)
			if err != nil {
				return err
			}
		} else {
			override = &config.ConfigOverride{}
		}
		// CLI flags beat the config file
		if cmd.Flags().Changed("verbose") {
			override.LogLvl = &flagVerbose
		}
		if cmd.Flags().Changed("definitions") {
			override.Definitions = &flagDefinitions
		}
		if cmd.Flags().Changed("ignore-existing") {
			override.IgnoreExisting = &flagIgnoreExisting
		}
		cfg = config.NewConfig(override)
		util.InitializeLogger(cfg.LogLvl)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagVerbose, "verbose", "v", config.InfoVerbose,
		"Log verbosity between 1 (error) and 5 (trace)")
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&flagDefinitions, "definitions", "n", "",
		"Path to a YAML/JSON tree definitions file loaded on top of the built-in catalogs")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreExisting, "ignore-existing", false,
		"Skip duplicate fid/name definitions instead of failing")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newShellCommand())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cardfs version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// buildTree assembles the built-in catalogs plus any configured definitions
// file, returning the MF and, when a card is supplied, seeding it with the
// definitions' payloads.
func buildTree(card *simcard.Card) (*filesystem.MF, error) {
	sim.RegisterCodecs()
	mf, err := sim.NewCard()
	if err != nil {
		return nil, err
	}
	if cfg.Definitions == "" {
		return mf, nil
	}
	defs, err := definitions.Load(cfg.Definitions)
	if err != nil {
		return nil, err
	}
	if err := definitions.Build(mf, defs, cfg.IgnoreExisting); err != nil {
		return nil, err
	}
	if card != nil {
		if err := card.SeedDefinitions(defs); err != nil {
			return nil, err
		}
	}
	return mf, nil
}
