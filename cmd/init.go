package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"edbackup/internal/config"
	"edbackup/internal/hostenv"
)

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  "Create the config file with the auto-detected game folders as sources. Existing files are kept unless --force is given.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	env := hostenv.Detect()
	path := config.ResolveConfigPath(env)

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
		}
	}

	cfg := config.Default(env)
	if err := config.Write(cfg, path); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", path)
	for i, src := range cfg.Sources {
		cmd.Printf("  source %d: %s\n", i+1, src)
	}
	return nil
}
