package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/business/core/wallet"
)

var count int

var genAddressCmd = &cobra.Command{
	Use:   "genaddress",
	Short: "Generate wallet addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return GenAddress(count)
	},
}

func init() {
	genAddressCmd.Flags().IntVarP(&count, "count", "n", 1, "Number of addresses to generate.")
	rootCmd.AddCommand(genAddressCmd)
}

// GenAddress prints n freshly generated wallet addresses.
func GenAddress(n int) error {
	for i := 0; i < n; i++ {
		addr, err := wallet.GenerateAddress()
		if err != nil {
			return fmt.Errorf("generate address: %w", err)
		}
		fmt.Println(addr)
	}
	return nil
}
