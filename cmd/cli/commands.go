package main

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
	"github.com/spf13/cobra"
)

var (
	timezone   string
	planRounds int
	exportPath string
)

func init() {
	recapCmd.Flags().StringVar(&timezone, "tz", "Europe/Stockholm", "Club time zone used to resolve relative dates")
	planCmd.Flags().IntVar(&planRounds, "rounds", 0, "Number of rounds (0 uses the default)")
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "Output file (defaults to the server's file name)")

	tournamentCmd.AddCommand(nextCmd, planCmd)
	rootCmd.AddCommand(healthCmd, leaderboardCmd, playerCmd, recapCmd, highlightCmd, mvpCmd,
		rotationCmd, tournamentCmd, importCmd, exportCmd, metricsCmd, statsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the Elo leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/leaderboard", nil)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Show a player's rating, history and badges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/players/"+url.PathEscape(args[0]), nil)
	},
}

var recapCmd = &cobra.Command{
	Use:   "recap [date]",
	Short: "Show the evening recap, e.g. 'recap yesterday' or 'recap 2024-05-10'",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := timeutil.ParseDayInput(strings.Join(args, " "), time.Now(), timeutil.MustLocation(timezone))
		if err != nil {
			return err
		}
		return performRequest(http.MethodGet, "/api/recap", url.Values{"date": {date}})
	},
}

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Show the highlight of the latest evening",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/highlight", nil)
	},
}

var mvpCmd = &cobra.Command{
	Use:   "mvp",
	Short: "Show the MVP of the last 30 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/mvp", nil)
	},
}

var rotationCmd = &cobra.Command{
	Use:   "rotation <player-id>...",
	Short: "Build a fair rotation for a pool of players",
	Args:  cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/rotation", url.Values{"players": {strings.Join(args, ",")}})
	},
}

var tournamentCmd = &cobra.Command{
	Use:   "tournament",
	Short: "Americano and Mexicano tournaments",
}

var nextCmd = &cobra.Command{
	Use:   "next <tournament-id>",
	Short: "Generate, store and announce the next round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/tournaments/"+url.PathEscape(args[0])+"/next", nil)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <tournament-id>",
	Short: "Preview a full Americano schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if planRounds > 0 {
			q.Set("rounds", strconv.Itoa(planRounds))
		}
		return performRequest(http.MethodGet, "/api/tournaments/"+url.PathEscape(args[0])+"/plan", q)
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import recently played Playtomic matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/import", nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the leaderboard as an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		return downloadExport()
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get persisted activity counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/stats", nil)
	},
}

func buildURL(endpoint string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	u := host + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func performRequest(method, endpoint string, query url.Values) error {
	target := buildURL(endpoint, query)
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
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

func downloadExport() error {
	resp, err := http.Get(buildURL("/export/leaderboard.xlsx", nil))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("export failed with status %d: %s", resp.StatusCode, body)
	}

	path := exportPath
	if path == "" {
		path = "leaderboard.xlsx"
		if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
			path = params["filename"]
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %d bytes to %s\n", n, path)
	return nil
}
