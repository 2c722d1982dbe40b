package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/business/core/mining"
)

var poll time.Duration

// ErrInvalidPoll is returned when the poll interval is not positive.
var ErrInvalidPoll = errors.New("poll interval must be greater than zero")

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Start the mining rig and follow it until the block is found",
	RunE: func(cmd *cobra.Command, args []string) error {
		if poll <= 0 {
			return ErrInvalidPoll
		}

		token, err := loadToken()
		if err != nil {
			return err
		}

		var st mining.Status
		if err := call(http.MethodPost, "/v1/mining/start", token, nil, &st); err != nil {
			return err
		}
		blocks := st.Blocks

		ticker := time.NewTicker(poll)
		defer ticker.Stop()

		for range ticker.C {
			if err := call(http.MethodGet, "/v1/mining/status", token, nil, &st); err != nil {
				return err
			}

			fmt.Printf("\r[%-20s] %3d%%", strings.Repeat("#", st.Progress/5), st.Progress)

			if !st.Mining {
				break
			}
		}
		fmt.Println()

		if st.Blocks == blocks {
			fmt.Println("Mining stopped.")
			return nil
		}

		fmt.Println("Block found, reward:", st.Reward)
		fmt.Println("Balance:", st.Balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().DurationVar(&poll, "poll", 500*time.Millisecond, "How often the rig status is polled.")
}
