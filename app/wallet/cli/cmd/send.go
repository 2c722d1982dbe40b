package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/core/wallet"
)

var (
	to     string
	amount string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send coins to another address",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := loadToken()
		if err != nil {
			return err
		}

		value, err := balance.Parse(amount)
		if err != nil {
			return err
		}

		fmt.Println("Sending", value, "to", to, "...")

		var rcpt wallet.Receipt
		tr := wallet.Transfer{To: to, Amount: value}
		if err := call(http.MethodPost, "/v1/wallet/send", token, tr, &rcpt); err != nil {
			return err
		}

		fmt.Println("Transaction:", rcpt.ID)
		fmt.Println("Status:     ", rcpt.Status)
		fmt.Println("Balance:    ", rcpt.Balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Recipient address.")
	sendCmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount to send, like 12.50.")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}
