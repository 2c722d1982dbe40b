package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/business/core/stats/stores/statsdb"
	"github.com/zaplanje/coin/business/core/user/stores/userdb"
	"github.com/zaplanje/coin/business/sys/database"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Print the member count next to the community statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Users(dbConfig)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

// Users prints the number of registered members. The statistics counter
// can drift from the table when sign ups fail halfway, so both are shown.
func Users(cfg database.Config) error {
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := userdb.NewStore(db).Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	st, err := statsdb.NewStore(db).Query(ctx)
	if err != nil {
		return fmt.Errorf("query statistics: %w", err)
	}

	fmt.Printf("Members:    %d\n", count)
	fmt.Printf("Statistics: %d (updated %s)\n", st.TotalUsers, st.DateUpdated.Format(time.RFC3339))

	return nil
}
