package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/foundation/backup"
)

var backupConfig backup.Config

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the project sources into a timestamped snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Backup(backupConfig)
	},
}

func init() {
	flags := backupCmd.Flags()
	flags.StringVar(&backupConfig.Root, "root", ".", "Project root the folders are resolved against.")
	flags.StringVar(&backupConfig.Dest, "dest", "backups", "Folder under the root the snapshot is written to.")
	flags.StringSliceVar(&backupConfig.Dirs, "dirs", []string{"app", "business", "foundation"}, "Folders copied recursively.")
	flags.StringSliceVar(&backupConfig.Files, "files", []string{"go.mod", "go.sum", "makefile"}, "Individual files copied.")
	rootCmd.AddCommand(backupCmd)
}

// Backup creates the snapshot and prints what was copied.
func Backup(cfg backup.Config) error {
	report, err := backup.Run(cfg, time.Now())
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	for _, name := range report.Copied {
		fmt.Println("copied: ", name)
	}
	for _, name := range report.Skipped {
		fmt.Println("skipped:", name)
	}

	log.Infow("backup", "status", "complete", "dir", report.Dir, "copied", len(report.Copied), "skipped", len(report.Skipped))

	return nil
}
