package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lbergmann/backport/internal/config"
	"github.com/lbergmann/backport/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show effective configuration",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Show the effective configuration.

Global config: ~/.config/backport/config.toml
Repo config:   git config backport.* (seeded from flags on first run)

Values persisted in the repository override the global file; flags
override both.`,
		Example: `  backport config         # Show effective config
  backport config init    # Create default global config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			eff := cfg
			inRepo := requireRepo(ctx) == nil
			if inRepo {
				var err error
				eff, err = effectiveConfig(ctx)
				if err != nil {
					return err
				}
			}

			out.Println("# Global config: ~/.config/backport/config.toml")
			if inRepo {
				out.Println("# Repo config:   git config backport.* (overrides global)")
			} else {
				out.Println("# Not in a git repository, showing global config only")
			}
			out.Println("")

			return toml.NewEncoder(out.Writer()).Encode(eff)
		},
	}

	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create the default global config file at ~/.config/backport/config.toml.

The file documents every setting; per-repository values live in the
repository's own config store instead (git config backport.*).`,
		Example: `  backport config init      # Create global config
  backport config init -f   # Overwrite existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init(force)
			if err != nil {
				return err
			}
			fmt.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}
