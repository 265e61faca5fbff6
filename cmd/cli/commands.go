package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(clubsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "List the clubs in the league",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clubs")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches [id]",
	Short: "List played matches, or show one match in full",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/matches/" + url.PathEscape(args[0]))
		}
		return performGetRequest("/matches")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings [player]",
	Short: "Show the season player leaderboard, or one player's record",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/standings/" + url.PathEscape(args[0]))
		}
		return performGetRequest("/standings")
	},
}

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Schedule the next league round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/rounds", nil)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate all pending fixtures with the statistical engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/simulate-round", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Post the season leaderboard to the notification channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/notify-leaderboard", nil)
	},
}

var playCmd = &cobra.Command{
	Use:   "play <home-club-id> <away-club-id>",
	Short: "Run a full live match minute by minute and print the events",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		homeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid home club id %q", args[0])
		}
		awayID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid away club id %q", args[1])
		}
		return playLiveMatch(homeID, awayID)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get lifetime simulation counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

// playLiveMatch drives the live match API end to end: create, kick off,
// tick both halves to completion and finalize the record.
func playLiveMatch(homeID, awayID int) error {
	var state struct {
		ID string `json:"id"`
	}
	if err := postJSON("/live", map[string]int{"home_club_id": homeID, "away_club_id": awayID}, &state); err != nil {
		return fmt.Errorf("failed to create live match: %w", err)
	}
	fmt.Printf("Live match created: %s\n", state.ID)

	type event struct {
		Minute int    `json:"minute"`
		Text   string `json:"text"`
	}
	var tick struct {
		Events []event `json:"events"`
		State  struct {
			Phase     string `json:"phase"`
			HomeScore int    `json:"home_score"`
			AwayScore int    `json:"away_score"`
		} `json:"state"`
	}

	// Two resume/tick cycles: kickoff to half time, restart to full time.
	for half := 0; half < 2; half++ {
		if err := postJSON("/live/"+state.ID+"/resume", nil, nil); err != nil {
			return fmt.Errorf("failed to resume match: %w", err)
		}
		if err := postJSON("/live/"+state.ID+"/tick?minutes=120", nil, &tick); err != nil {
			return fmt.Errorf("failed to tick match: %w", err)
		}
		for _, ev := range tick.Events {
			fmt.Printf("%3d' %s\n", ev.Minute, ev.Text)
		}
	}

	if tick.State.Phase != "full_time" {
		return fmt.Errorf("match ended in unexpected phase %q", tick.State.Phase)
	}
	if err := postJSON("/live/"+state.ID+"/finalize", nil, nil); err != nil {
		return fmt.Errorf("failed to finalize match: %w", err)
	}
	fmt.Printf("Full time: %d-%d\n", tick.State.HomeScore, tick.State.AwayScore)
	return nil
}

func withParams(endpoint string) string {
	if !dryRun {
		return host + endpoint
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return host + endpoint + sep + "dry_run=true"
}

func performGetRequest(endpoint string) error {
	url := withParams(endpoint)
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

func performPostRequest(endpoint string, payload any) error {
	url := withParams(endpoint)
	fmt.Printf("Making request to %s\n", url)

	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
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

// postJSON posts to the server and decodes the JSON response into out.
func postJSON(endpoint string, payload, out any) error {
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return err
		}
	}
	resp, err := http.Post(withParams(endpoint), "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
