package cmd

import (
	"github.com/spf13/cobra"

	"edbackup/internal/hostenv"
)

var drivesAll bool

func init() {
	rootCmd.AddCommand(drivesCmd)
	drivesCmd.Flags().BoolVar(&drivesAll, "all", false, "List every mounted partition, not just removable ones")
}

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "List candidate destination drives",
	RunE:  runDrives,
}

func runDrives(cmd *cobra.Command, args []string) error {
	drives, err := hostenv.ListDrives()
	if err != nil {
		return err
	}
	shown := 0
	for _, d := range drives {
		if !drivesAll && !d.Removable {
			continue
		}
		marker := " "
		if d.Removable {
			marker = "*"
		}
		cmd.Printf("%s %-24s %-10s %s\n", marker, d.Mountpoint, d.Fstype, d.Device)
		shown++
	}
	if shown == 0 {
		cmd.Println("No removable drives found (use --all to list everything)")
	}
	return nil
}
