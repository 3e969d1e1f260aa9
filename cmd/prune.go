package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"edbackup/internal/backup"
	"edbackup/internal/config"
	"edbackup/internal/hostenv"
)

var (
	pruneDest string
	pruneKeep int
)

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().StringVar(&pruneDest, "dest", "", "Destination root to prune (default: configured destination)")
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", 0, "Number of newest backups to keep (default: retention.keep from config)")
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups, keeping the newest N",
	RunE:  runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	env := hostenv.Detect()
	v, err := config.Load(env)
	if err != nil {
		return err
	}
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return err
	}

	dest := pruneDest
	if dest == "" {
		dest = cfg.Destination
	}
	if dest == "" {
		return fmt.Errorf("no destination: pass --dest or set destination in the config")
	}

	keep := pruneKeep
	if keep == 0 && cfg.Retention != nil {
		keep = cfg.Retention.Keep
	}
	if keep < 1 {
		return fmt.Errorf("nothing to do: pass --keep or set retention.keep in the config")
	}

	removed, err := backup.Prune(dest, keep)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		cmd.Printf("Nothing to prune (%d or fewer backups in %s)\n", keep, dest)
		return nil
	}
	for _, p := range removed {
		cmd.Printf("Removed %s\n", p)
	}
	return nil
}
