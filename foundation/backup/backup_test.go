package backup_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zaplanje/coin/foundation/backup"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Name(t *testing.T) {
	now := time.Date(2025, time.March, 19, 16, 0, 43, 645000000, time.UTC)

	got := backup.Name(now)
	exp := "backup-2025-03-19T16-00-43-645Z"

	if got != exp {
		t.Logf("\t%s\tgot: %s", failed, got)
		t.Logf("\t%s\texp: %s", failed, exp)
		t.Fatalf("\t%s\tShould format the snapshot name.", failed)
	}
	t.Logf("\t%s\tShould format the snapshot name.", success)
}

func Test_Run(t *testing.T) {
	t.Log("Given the need to snapshot a source tree.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen some folders and files are missing.", testID)
		{
			root := t.TempDir()

			write := func(name string, data string) {
				path := filepath.Join(root, name)
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to create %s : %v", failed, testID, name, err)
				}
				if err := os.WriteFile(path, []byte(data), 0644); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to write %s : %v", failed, testID, name, err)
				}
			}

			write("app/main.go", "package main")
			write("app/handlers/v1/v1.go", "package v1")
			write("go.mod", "module x")

			cfg := backup.Config{
				Root:  root,
				Dest:  "backups",
				Dirs:  []string{"app", "public"},
				Files: []string{"go.mod", "makefile"},
			}

			now := time.Date(2025, time.March, 19, 19, 37, 29, 106000000, time.UTC)
			report, err := backup.Run(cfg, now)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to run the backup : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to run the backup.", success, testID)

			if len(report.Copied) != 2 || len(report.Skipped) != 2 {
				t.Logf("\t%s\tTest %d:\tgot copied: %v skipped: %v", failed, testID, report.Copied, report.Skipped)
				t.Fatalf("\t%s\tTest %d:\tShould report copied and skipped entries.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould report copied and skipped entries.", success, testID)

			nested := filepath.Join(report.Dir, "app", "handlers", "v1", "v1.go")
			data, err := os.ReadFile(nested)
			if err != nil || string(data) != "package v1" {
				t.Fatalf("\t%s\tTest %d:\tShould copy nested folders : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould copy nested folders.", success, testID)

			if filepath.Base(report.Dir) != "backup-2025-03-19T19-37-29-106Z" {
				t.Fatalf("\t%s\tTest %d:\tShould place the snapshot in a timestamped folder : got %s", failed, testID, report.Dir)
			}
			t.Logf("\t%s\tTest %d:\tShould place the snapshot in a timestamped folder.", success, testID)
		}
	}
}
