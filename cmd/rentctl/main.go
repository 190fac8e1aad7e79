package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"house-rent-api/pkg/client"
)

var (
	serverURL   string
	sessionPath string
)

var rootCmd = &cobra.Command{
	Use:   "rentctl",
	Short: "Command line client for the rental catalog service",
}

func init() {
	def := "rentctl/session.json"
	if home, err := os.UserHomeDir(); err == nil {
		def = filepath.Join(home, ".rentctl", "session.json")
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "catalog service base URL")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", def, "session file path")
}

// newClient 启动即加载会话，后续请求自动带 Bearer 头
func newClient() (*client.Client, *client.Session, error) {
	sess := client.NewSession(sessionPath)
	if err := sess.Load(); err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}
	return client.New(serverURL, sess), sess, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
