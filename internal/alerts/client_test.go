package alerts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func TestStatusPrettyPrintsJSON(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		w.Write([]byte(`{"header":{"timestamp":1},"entity":[]}`))
	}))
	defer server.Close()

	client := NewClient("secret", 5*time.Second)
	payload, err := client.Status(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}

	if gotKey != "secret" {
		t.Errorf("x-api-key header = %q, want %q", gotKey, "secret")
	}

	want := "{\n  \"header\": {\n    \"timestamp\": 1\n  },\n  \"entity\": []\n}"
	if payload != want {
		t.Errorf("pretty payload = %q, want %q", payload, want)
	}
}

func TestStatusMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient("secret", 5*time.Second)
	_, err := client.Status(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
	if !strings.Contains(err.Error(), "malformed alerts JSON") {
		t.Errorf("error %q does not mention malformed JSON", err)
	}
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("secret", 5*time.Second)
	payload, err := client.Status(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Status should succeed after a retry, got error: %v", err)
	}
	if payload != "{}" {
		t.Errorf("payload = %q, want {}", payload)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("expected 2 requests (one retry), got %d", got)
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("wrong-key", 5*time.Second)
	_, err := client.Status(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for status 403")
	}
	if !strings.Contains(err.Error(), "status 403") {
		t.Errorf("error %q does not mention status 403", err)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("a 403 must not be retried, got %d requests", got)
	}
}

func TestFeedDecodesAlerts(t *testing.T) {
	cause := gtfsrt.Alert_MAINTENANCE
	effect := gtfsrt.Alert_REDUCED_SERVICE
	incrementality := gtfsrt.FeedHeader_FULL_DATASET
	message := &gtfsrt.FeedMessage{
		Header: &gtfsrt.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      &incrementality,
		},
		Entity: []*gtfsrt.FeedEntity{
			{
				Id: proto.String("lirr:42"),
				Alert: &gtfsrt.Alert{
					Cause:  &cause,
					Effect: &effect,
					HeaderText: &gtfsrt.TranslatedString{
						Translation: []*gtfsrt.TranslatedString_Translation{
							{Text: proto.String("Obras en la vía"), Language: proto.String("es")},
							{Text: proto.String("Track work between Jamaica and Hempstead"), Language: proto.String("en")},
						},
					},
				},
			},
			// Entity without an alert payload is skipped
			{Id: proto.String("lirr:43")},
		},
	}
	body, err := proto.Marshal(message)
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	client := NewClient("secret", 5*time.Second)
	decoded, err := client.Feed(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}

	if len(decoded) != 1 {
		t.Fatalf("expected 1 decoded alert, got %d", len(decoded))
	}
	alert := decoded[0]
	if alert.ID != "lirr:42" {
		t.Errorf("ID = %q, want lirr:42", alert.ID)
	}
	if alert.Cause != "MAINTENANCE" {
		t.Errorf("Cause = %q, want MAINTENANCE", alert.Cause)
	}
	if alert.Effect != "REDUCED_SERVICE" {
		t.Errorf("Effect = %q, want REDUCED_SERVICE", alert.Effect)
	}
	if alert.Header != "Track work between Jamaica and Hempstead" {
		t.Errorf("Header = %q, want the English translation", alert.Header)
	}
}

func TestFeedRejectsGarbage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not protobuf"))
	}))
	defer server.Close()

	client := NewClient("secret", 5*time.Second)
	if _, err := client.Feed(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for a payload that is not a FeedMessage")
	}
}
