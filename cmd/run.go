package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"edbackup/internal/backup"
	"edbackup/internal/config"
	"edbackup/internal/hostenv"
)

var (
	runDest        string
	runZip         bool
	runIncremental bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runDest, "dest", "", "Destination root (default: configured destination, else first removable drive)")
	runCmd.Flags().BoolVar(&runZip, "zip", false, "Write one ZIP archive instead of a mirror tree")
	runCmd.Flags().BoolVar(&runIncremental, "incremental", true, "Skip unchanged files in mirror mode")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backup to a USB drive or folder",
	Long:  "Run one backup of the configured sources. Ctrl-C cancels at the next file boundary; whatever was written stays on disk.",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	env := hostenv.Detect()

	v, err := config.Load(env)
	if err != nil {
		return err
	}
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return err
	}
	config.ApplyDefaults(cfg, env)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	dest, err := resolveDestination(cmd, cfg)
	if err != nil {
		return err
	}

	req := backup.Request{
		Sources:     cfg.Sources,
		DestRoot:    dest,
		ZipMode:     cfg.ZipMode,
		Incremental: cfg.Incremental,
		Excludes:    cfg.Exclude,
	}
	if cmd.Flags().Changed("zip") {
		req.ZipMode = runZip
	}
	if cmd.Flags().Changed("incremental") {
		req.Incremental = runIncremental
	}

	events := make(chan backup.Event, 128)
	w := backup.NewWorker(req, env.MachineName, events, logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)
	go func() {
		select {
		case <-sigc:
			cmd.PrintErrln("Cancelling after the current file ...")
			w.Cancel()
		case <-ctx.Done():
		}
	}()

	go w.Run(ctx)

	var runErr error
	for ev := range events {
		switch e := ev.(type) {
		case backup.LogEvent:
			cmd.Println(e.Text)
		case backup.ProgressEvent:
			cmd.Printf("Progress: %d/%d (%d%%)\n", e.Done, e.Total, e.Done*100/e.Total)
		case backup.DoneEvent:
			cmd.Printf("Backup complete: %s\n", e.Target)
			if n := len(w.Errors()); n > 0 {
				runErr = fmt.Errorf("completed with %d file error(s)", n)
			}
		case backup.FailedEvent:
			runErr = fmt.Errorf("backup failed: %s", e.Reason)
		case backup.CancelledEvent:
			cmd.Println("Backup cancelled.")
		}
	}
	return runErr
}

// resolveDestination picks the destination root: explicit flag, then the
// configured path, then the first removable drive found on the host.
func resolveDestination(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if runDest != "" {
		return runDest, nil
	}
	if cfg.Destination != "" {
		return cfg.Destination, nil
	}
	drives, err := hostenv.ListRemovableDrives()
	if err == nil && len(drives) > 0 {
		cmd.Printf("Using removable drive: %s\n", drives[0].Mountpoint)
		return drives[0].Mountpoint, nil
	}
	return "", fmt.Errorf("no destination: pass --dest, set destination in the config, or plug in a removable drive")
}
