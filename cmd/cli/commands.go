package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var useMean bool

func init() {
	leaderboardCmd.Flags().BoolVar(&useMean, "mean", false, "Rank by raw rating mean instead of the conservative estimate")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [competition] [season]",
	Short: "Fetch a leaderboard, the alltime one when no competition is given",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return performGetRequest("/leaderboard/")
		}
		if len(args) != 2 {
			return fmt.Errorf("a competition requires a season")
		}
		endpoint := fmt.Sprintf("/leaderboard/%s/%s", url.PathEscape(args[0]), url.PathEscape(args[1]))
		if useMean {
			endpoint += "?mode=mean"
		}
		return performGetRequest(endpoint)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List all players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/")
	},
}

var playerCmd = &cobra.Command{
	Use:   "player [token]",
	Short: "Fetch the aggregate view for one human",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/" + url.PathEscape(args[0]))
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [query]",
	Short: "Fetch search suggestions for a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/recommend?q=" + url.QueryEscape(args[0]))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
