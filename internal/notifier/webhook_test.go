package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWhatsAppSink_AppendsEscapedText(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotText = r.URL.Query().Get("text")
	}))
	defer srv.Close()

	sink := NewWhatsAppSink(srv.URL+"/send?apikey=k", "")
	if err := sink.Send("line one\nline two & more"); err != nil {
		t.Fatal(err)
	}
	if gotText != "line one\nline two & more" {
		t.Errorf("text not round-tripped through query escaping: %q", gotText)
	}
}

func TestWhatsAppSink_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	sink := NewWhatsAppSink(srv.URL+"/send?apikey=k", "")
	if err := sink.Send("msg"); err == nil {
		t.Error("expected error on non-200 gateway response")
	}
}

func TestEmailWebhookSink_PostsJSON(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewEmailWebhookSink(srv.URL, "")
	if err := sink.Send("daily summary"); err != nil {
		t.Fatal(err)
	}
	if payload["text"] != "daily summary" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

type failingSink struct{ calls int }

func (f *failingSink) Name() string { return "failing" }
func (f *failingSink) Send(string) error {
	f.calls++
	return io.ErrUnexpectedEOF
}

type okSink struct{ got []string }

func (o *okSink) Name() string { return "ok" }
func (o *okSink) Send(text string) error {
	o.got = append(o.got, text)
	return nil
}

func TestNotifier_FansOutPastFailures(t *testing.T) {
	bad := &failingSink{}
	good := &okSink{}
	n := NewNotifier(bad, good)
	n.MaxRetries = 0 // keep the test fast

	err := n.Send(context.Background(), "alert")
	if err == nil {
		t.Error("expected the failing sink's error to surface")
	}
	if len(good.got) != 1 || good.got[0] != "alert" {
		t.Errorf("second sink must still receive the message: %v", good.got)
	}
	if bad.calls != 1 {
		t.Errorf("expected exactly one attempt with MaxRetries=0, got %d", bad.calls)
	}
}
