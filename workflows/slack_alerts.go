package workflows

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

type SlackPayload struct {
	Text string `json:"text"`
}

// ReportErrorToSlack posts an error message to the tracking-alerts channel.
func ReportErrorToSlack(err error) error {
	if err == nil {
		return nil
	}

	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")
	if webhookURL == "" {
		return errors.New("SLACK_WEBHOOK_URL environment variable is not set")
	}

	message := fmt.Sprintf(
		":rotating_light: *Tracking Pipeline Error*\n"+
			"*Time:* %s\n"+
			"*Error:* ```%s```",
		time.Now().UTC().Format(time.RFC3339),
		err.Error(),
	)

	payload := SlackPayload{
		Text: message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// ReportTrackingFailureToSlack reports tracking job failures with context.
func ReportTrackingFailureToSlack(step, businessID, businessName string, err error) error {
	if err == nil {
		return nil
	}

	if businessName == "" {
		businessName = "unknown"
	}
	if step == "" {
		step = "unknown"
	}

	reportErr := fmt.Errorf(
		"tracking job failed: step=%s business_id=%s business_name=%s error=%v",
		step,
		businessID,
		businessName,
		err,
	)

	return ReportErrorToSlack(reportErr)
}
