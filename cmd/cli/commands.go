package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	gameLengthMinutes int
	periodCount       int
	seconds           int
	periodIndex       int
	allPeriods        bool
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(halftimeCmd)
	halftimeCmd.AddCommand(halftimeEndCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(stoppageCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(subCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(metricsCmd)

	configureCmd.Flags().IntVar(&gameLengthMinutes, "length", 60, "Regulation game length in minutes")
	configureCmd.Flags().IntVar(&periodCount, "periods", 2, "Number of periods")
	stoppageCmd.Flags().IntVar(&seconds, "seconds", 0, "Stoppage seconds to add")
	stoppageCmd.Flags().IntVar(&periodIndex, "period", -1, "Period index (defaults to the current period)")
	adjustCmd.Flags().IntVar(&seconds, "seconds", 0, "Signed adjustment in seconds")
	adjustCmd.Flags().IntVar(&periodIndex, "period", -1, "Period index (defaults to the current period)")
	adjustCmd.Flags().BoolVar(&allPeriods, "all", false, "Apply the adjustment to every period")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the full game state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/state")
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start (or restart) the game clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/timer/start", "")
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the game clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/timer/pause", "")
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the game clock after a pause",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/timer/resume", "")
	},
}

var halftimeCmd = &cobra.Command{
	Use:   "halftime",
	Short: "Start the halftime break",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/timer/halftime", "")
	},
}

var halftimeEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the halftime break and start the next period",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/timer/halftime/end", "")
	},
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set game length and period count (before kickoff)",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"game_length_minutes": %d, "period_count": %d}`, gameLengthMinutes, periodCount)
		return performPostRequest("/api/timer/configure", body)
	},
}

var stoppageCmd = &cobra.Command{
	Use:   "stoppage",
	Short: "Add stoppage time to a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/timer/stoppage", perPeriodBody(seconds, periodIndex, false))
	},
}

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Apply a signed clock correction",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/timer/adjustment", perPeriodBody(seconds, periodIndex, allPeriods))
	},
}

var subCmd = &cobra.Command{
	Use:   "sub <out> <in>",
	Short: "Substitute one player for another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"out": %q, "in": %q}`, args[0], args[1])
		return performPostRequest("/api/substitution", body)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the most recent action",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/undo", "")
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the most recently undone action",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/redo", "")
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the playing-time fairness report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/analytics/report")
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the fairness report as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/analytics/export")
	},
}

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved game snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/saves")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func perPeriodBody(seconds, periodIndex int, applyToAll bool) string {
	if applyToAll {
		return fmt.Sprintf(`{"seconds": %d, "apply_to_all": true}`, seconds)
	}
	if periodIndex >= 0 {
		return fmt.Sprintf(`{"seconds": %d, "period_index": %d}`, seconds, periodIndex)
	}
	return fmt.Sprintf(`{"seconds": %d}`, seconds)
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

func performPostRequest(endpoint, jsonBody string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(jsonBody))
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
