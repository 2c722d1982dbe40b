package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	qrSize int
	qrOut  string
)

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Save the QR code of your wallet address as a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := loadToken()
		if err != nil {
			return err
		}

		png, err := raw("/v1/wallet/qr?size="+strconv.Itoa(qrSize), token)
		if err != nil {
			return err
		}

		if err := os.WriteFile(qrOut, png, 0644); err != nil {
			return err
		}

		fmt.Println("Saved:", qrOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(qrCmd)
	qrCmd.Flags().IntVar(&qrSize, "size", 256, "Image size in pixels.")
	qrCmd.Flags().StringVarP(&qrOut, "out", "o", "wallet-qr.png", "File the image is written to.")
}
