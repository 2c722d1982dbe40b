package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/authgrp"
)

var (
	email    string
	password string
	register bool
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in, or join the community with --register",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/v1/auth/signin"
		if register {
			path = "/v1/auth/signup"
		}

		var sess authgrp.AppSession
		creds := authgrp.AppCredentials{Email: email, Password: password}
		if err := call(http.MethodPost, path, "", creds, &sess); err != nil {
			return err
		}

		if err := saveToken(sess.Token); err != nil {
			return fmt.Errorf("store session: %w", err)
		}

		fmt.Println("Signed in as:", sess.User.Email)
		if sess.Address != "" {
			fmt.Println("Address:     ", sess.Address)
		}
		fmt.Println("Expires:     ", sess.ExpiresAt)
		return nil
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := loadToken()
		if err != nil {
			return err
		}

		if err := call(http.MethodPost, "/v1/auth/signout", token, nil, nil); err != nil {
			return err
		}

		return removeToken()
	},
}

func init() {
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signoutCmd)
	signinCmd.Flags().StringVarP(&email, "email", "e", "", "Member email address.")
	signinCmd.Flags().StringVarP(&password, "password", "p", "", "Member password.")
	signinCmd.Flags().BoolVarP(&register, "register", "r", false, "Create the account before signing in.")
	signinCmd.MarkFlagRequired("email")
	signinCmd.MarkFlagRequired("password")
}
