// chaletctl はChaletF予約サーバーを操作するコマンドラインクライアント
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	cfgKeyServer = "server"

	defaultServer = "http://localhost:8080"
)

var (
	// configFile は --config フラグで指定された設定ファイル
	configFile string

	// serverFlag は --server フラグの値（設定ファイルより優先）
	serverFlag string

	// client は全サブコマンドで共有するAPIクライアント
	client *Client
)

var rootCmd = &cobra.Command{
	Use:   "chaletctl",
	Short: "chaletctl manages chalet reservations from the terminal",
	Long: `chaletctl is a client for the ChaletF reservation server.
It shows the monthly calendar and books, searches, edits and
cancels reservations. One reservation per date.`,
	PersistentPreRunE: initClient,
	SilenceUsage:      true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ~/.chaletctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "server base URL (default: http://localhost:8080)")

	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(cancelCmd)
}

// initClient は設定を解決してAPIクライアントを構築する
// 優先順位: --server フラグ > 環境変数 CHALETCTL_SERVER > 設定ファイル > デフォルト
func initClient(cmd *cobra.Command, args []string) error {
	v := viper.New()
	v.SetDefault(cfgKeyServer, defaultServer)
	v.SetEnvPrefix("CHALETCTL")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(filepath.Join(home, ".chaletctl"))
			if err := v.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return fmt.Errorf("read config: %w", err)
				}
			}
		}
	}

	server := v.GetString(cfgKeyServer)
	if serverFlag != "" {
		server = serverFlag
	}

	client = NewClient(server)
	return nil
}
