package main

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jonathan/cvfiller/internal/apiclient"
	"github.com/jonathan/cvfiller/internal/config"
	"github.com/jonathan/cvfiller/internal/session"
)

var loginCommand = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to a CVFiller server and persist the session token",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCommand = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session token",
	RunE:  runLogout,
}

var whoamiCommand = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the persisted session token",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCommand)
	rootCmd.AddCommand(logoutCommand)
	rootCmd.AddCommand(whoamiCommand)
}

// newSessionManager wires the session manager against the configured
// server and the on-disk token store.
func newSessionManager() (*session.Manager, error) {
	cfg, err := config.NewClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load client config: %w", err)
	}
	client := apiclient.New(cfg.ServerURL)
	store := session.NewFileTokenStore(cfg.StateDir)
	return session.NewManager(client, store), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	mgr, err := newSessionManager()
	if err != nil {
		return err
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := mgr.Login(context.Background(), args[0], string(password)); err != nil {
		return err
	}

	user := mgr.CurrentUser()
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	mgr, err := newSessionManager()
	if err != nil {
		return err
	}
	mgr.Logout()
	fmt.Println("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	mgr, err := newSessionManager()
	if err != nil {
		return err
	}

	if err := mgr.Init(context.Background()); err != nil {
		return err
	}
	if !mgr.Authorized() {
		return fmt.Errorf("not logged in")
	}

	user := mgr.CurrentUser()
	fmt.Printf("%s (%s)\n", user.Username, user.Email)
	return nil
}
