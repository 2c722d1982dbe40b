// Package commands contains the functionality for the set of commands
// currently supported by the admin tool.
package commands

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/business/sys/database"
	"go.uber.org/zap"
)

// log is shared by every command and set by Execute.
var log *zap.SugaredLogger

var dbConfig database.Config

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Administrative tasks for the Zaplanje coin service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dbConfig.User, "db-user", env("COIN_DB_USER", "postgres"), "Database user.")
	flags.StringVar(&dbConfig.Password, "db-password", env("COIN_DB_PASSWORD", "postgres"), "Database password.")
	flags.StringVar(&dbConfig.Host, "db-host", env("COIN_DB_HOST", "localhost"), "Database host.")
	flags.StringVar(&dbConfig.Name, "db-name", env("COIN_DB_NAME", "postgres"), "Database name.")
	flags.BoolVar(&dbConfig.DisableTLS, "db-disable-tls", envBool("COIN_DB_DISABLE_TLS", true), "Connect without TLS.")
	dbConfig.MaxIdleConns = 2
	dbConfig.MaxOpenConns = 2
}

// Execute runs the command named on the command line.
func Execute(l *zap.SugaredLogger, build string) error {
	log = l
	rootCmd.Version = build

	return rootCmd.Execute()
}

func env(key string, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
