package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"edbackup/internal/backup"
	"edbackup/internal/config"
	"edbackup/internal/hostenv"
)

var listDest string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDest, "dest", "", "Destination root to scan (default: configured destination)")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups found at a destination",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	dest := listDest
	if dest == "" {
		env := hostenv.Detect()
		v, err := config.Load(env)
		if err != nil {
			return err
		}
		cfg, err := config.Unmarshal(v)
		if err != nil {
			return err
		}
		if cfg.Destination == "" {
			return fmt.Errorf("no destination: pass --dest or set destination in the config")
		}
		dest = cfg.Destination
	}

	backups, err := backup.List(dest)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		cmd.Printf("No backups found in %s\n", dest)
		return nil
	}
	for _, b := range backups {
		kind := "mirror"
		if b.Zip {
			kind = "zip"
		}
		cmd.Printf("%s  %-6s  %8s  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), kind, humanSize(b.Size), b.Name)
	}
	return nil
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
