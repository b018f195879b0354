package messaging

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testClient(url string, timeout time.Duration) *Client {
	return NewClient(Config{
		GatewayURL:  url,
		PhonePrefix: "994",
		LocalDigits: 9,
		Timeout:     timeout,
	}, zerolog.Nop())
}

func TestNormalizeDestination(t *testing.T) {
	c := testClient("", 0)

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"994705085021", "994705085021", true},
		{"+994705085021", "994705085021", true},
		{"+994 70 508 50 21", "994705085021", true},
		{"123", "", false},
		{"", "", false},
		{"99470508502", "", false},    // one digit short
		{"9947050850211", "", false},  // one digit long
		{"995705085021", "", false},   // wrong country code
		{"994-70-5085021", "", false}, // non-digit separator
	}

	for _, tc := range cases {
		got, ok := c.NormalizeDestination(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("NormalizeDestination(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSend_InvalidDestinationSkipsNetwork(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 0)
	if c.Send(context.Background(), "123", "hello") {
		t.Error("expected false for invalid destination")
	}
	if atomic.LoadInt64(&hits) != 0 {
		t.Errorf("expected no network I/O, gateway hit %d times", hits)
	}
}

func TestSend_DeliversNormalizedPayload(t *testing.T) {
	var got gatewayPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 0)
	if !c.Send(context.Background(), "+994 705 085 021", "your appointment is confirmed") {
		t.Fatal("expected successful send")
	}
	if got.PhoneNumber != "994705085021@c.us" {
		t.Errorf("unexpected phoneNumber: %q", got.PhoneNumber)
	}
	if got.Message != "your appointment is confirmed" {
		t.Errorf("unexpected message: %q", got.Message)
	}
}

func TestSend_Non2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 0)
	if c.Send(context.Background(), "994705085021", "hi") {
		t.Error("expected false for 502 response")
	}
}

func TestSend_TimeoutReturnsFalseWithinSlack(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := testClient(srv.URL, 100*time.Millisecond)

	start := time.Now()
	ok := c.Send(context.Background(), "994705085021", "hi")
	elapsed := time.Since(start)

	if ok {
		t.Error("expected false on timeout")
	}
	if elapsed > time.Second {
		t.Errorf("call took %s, expected return near the 100ms deadline", elapsed)
	}
}

func TestSend_UnreachableGateway(t *testing.T) {
	c := testClient("http://127.0.0.1:1", 200*time.Millisecond)
	if c.Send(context.Background(), "994705085021", "hi") {
		t.Error("expected false for unreachable gateway")
	}
}
