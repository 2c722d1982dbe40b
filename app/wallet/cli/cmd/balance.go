package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/walletgrp"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print your wallet address.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := queryWallet()
		if err != nil {
			return err
		}

		fmt.Println(w.Address)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := queryWallet()
		if err != nil {
			return err
		}

		fmt.Println("For Address:", w.Address)
		fmt.Println(w.Balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(balanceCmd)
}

func queryWallet() (walletgrp.AppWallet, error) {
	token, err := loadToken()
	if err != nil {
		return walletgrp.AppWallet{}, err
	}

	var w walletgrp.AppWallet
	if err := call(http.MethodGet, "/v1/wallet", token, nil, &w); err != nil {
		return walletgrp.AppWallet{}, err
	}

	return w, nil
}
