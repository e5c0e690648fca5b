package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/cenkalti/backoff/v4"
	"google.golang.org/protobuf/proto"
)

// maxRetries bounds the retry loop around one alerts request.
const maxRetries = 3

// Client fetches LIRR service alerts from the MTA API. Failures here never
// touch the schedule resolution path; callers report them and move on.
type Client struct {
	apiKey string
	client *http.Client
}

// NewClient creates an alerts client authenticating with apiKey.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Status fetches the JSON alerts payload from url and re-indents it for
// display.
func (c *Client) Status(ctx context.Context, url string) (string, error) {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return "", fmt.Errorf("malformed alerts JSON: %w", err)
	}
	return pretty.String(), nil
}

// Alert is one decoded service alert with its GTFS-RT enums mapped to
// their string names.
type Alert struct {
	ID     string
	Cause  string
	Effect string
	Header string
}

// Feed fetches the protobuf variant of the alerts feed from url and
// decodes it into a flat list of alerts.
func (c *Client) Feed(ctx context.Context, url string) ([]Alert, error) {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	feed := &gtfsrt.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("failed to parse protobuf: %w", err)
	}

	var parsed []Alert
	for _, entity := range feed.Entity {
		if entity.Alert == nil || entity.Id == nil {
			continue
		}

		alert := Alert{ID: *entity.Id}
		if entity.Alert.Cause != nil {
			alert.Cause = CauseMap[int32(*entity.Alert.Cause)]
		}
		if entity.Alert.Effect != nil {
			alert.Effect = EffectMap[int32(*entity.Alert.Effect)]
		}
		alert.Header = englishText(entity.Alert.HeaderText)

		parsed = append(parsed, alert)
	}
	return parsed, nil
}

// fetch GETs url with the API key header, retrying transient failures
// with exponential backoff. Client-side errors other than throttling are
// not retried.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if c.apiKey != "" {
			req.Header.Set("x-api-key", c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch alerts: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("alerts endpoint returned status %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	return b
}

// englishText picks the English translation of a GTFS-RT translated
// string, falling back to the first translation present.
func englishText(ts *gtfsrt.TranslatedString) string {
	if ts == nil {
		return ""
	}
	fallback := ""
	for _, translation := range ts.Translation {
		if translation.Text == nil {
			continue
		}
		if fallback == "" {
			fallback = *translation.Text
		}
		if translation.Language != nil && *translation.Language == "en" {
			return *translation.Text
		}
	}
	return fallback
}
