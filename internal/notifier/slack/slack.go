package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/match"
	"github.com/dmoller/touchline/internal/metrics"
	"github.com/dmoller/touchline/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendResultNotification posts the full-time summary for a finished match.
func (s *Notifier) SendResultNotification(rec *match.Match, homeName, awayName string, dryRun bool) error {
	msg := s.formatResultNotification(rec, homeName, awayName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendLeaderboard posts the season player leaderboard.
func (s *Notifier) SendLeaderboard(stats []club.SeasonPlayerStats, dryRun bool) error {
	msg := s.formatLeaderboard(stats)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatResultNotification(rec *match.Match, homeName, awayName string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Full time!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	home, away := rec.Score()
	scoreText := fmt.Sprintf("%s %d - %d %s\n%s", homeName, home, away, awayName, rec.Date.Format("Monday 02 Jan, 15:04"))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	// Goals
	var goalLines []string
	for _, ev := range rec.Events {
		if ev.Category == match.EventGoal {
			goalLines = append(goalLines, fmt.Sprintf("%d' %s", ev.Minute, ev.Text))
		}
	}
	if len(goalLines) > 0 {
		goalsText := "Goals:\n" + strings.Join(goalLines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", goalsText, true, false), nil, nil))
	}

	// Context: cards and injuries
	var contextElements []slack.MixedElement
	if len(rec.Cards) > 0 {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("Cards shown: %d", len(rec.Cards)), true, false))
	}
	if len(rec.Injuries) > 0 {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("Injuries: %d", len(rec.Injuries)), true, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the season player leaderboard.
func (s *Notifier) formatLeaderboard(stats []club.SeasonPlayerStats) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Season Leaderboard", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Simulate some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, stat := range stats {
		playerText := fmt.Sprintf("%d. %s\n> Goals: %d | Assists: %d | Apps: %d | Avg rating: %.2f",
			i+1,
			stat.PlayerName,
			stat.Goals,
			stat.Assists,
			stat.Appearances,
			stat.AverageRating,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
