package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rohanthewiz/serr"
)

// MoodRecord is one aggregated mood data point from the history
// endpoint. The service returns records in chronological order and the
// client preserves that order — no sorting happens on this side.
type MoodRecord struct {
	Date string  `json:"date"`
	Mood float64 `json:"mood"`
}

// MoodHistory fetches the user's mood history. Unlike the form
// submissions this returns an error: the chart layer applies the same
// log-and-fallback policy the forms use, rather than silently skipping
// the render.
func (c *Client) MoodHistory(ctx context.Context) ([]MoodRecord, error) {
	resp, err := c.get(ctx, MoodHistoryPath)
	if err != nil {
		return nil, serr.Wrap(err, "mood history request failed")
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, serr.New(fmt.Sprintf("mood history returned status %d", resp.StatusCode))
	}

	var records []MoodRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, serr.Wrap(err, "failed to decode mood history")
	}
	return records, nil
}

// QuickMood records a one-tap mood without journal text. The service
// stores it as a synthetic entry with the chosen label at full weight.
func (c *Client) QuickMood(ctx context.Context, mood string) error {
	if mood == "" {
		return serr.New("no mood selected")
	}

	resp, err := c.postJSON(ctx, QuickMoodPath, map[string]string{"mood": mood})
	if err != nil {
		return serr.Wrap(err, "quick mood request failed")
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		errMsg, ferr := errorField(resp.Body)
		if ferr != nil || errMsg == "" {
			return serr.New(fmt.Sprintf("quick mood returned status %d", resp.StatusCode))
		}
		return serr.New(errMsg)
	}
	return nil
}
