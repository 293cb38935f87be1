package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// WhatsAppSink delivers messages through a WhatsApp gateway URL that already
// carries the credentials as query parameters; the message text is appended
// as a final &text= parameter.
type WhatsAppSink struct {
	URL    string
	Client *http.Client
}

// NewWhatsAppSink creates a sink with optional proxy support.
func NewWhatsAppSink(gatewayURL, proxyURL string) *WhatsAppSink {
	return &WhatsAppSink{URL: gatewayURL, Client: newHTTPClient(proxyURL)}
}

func (w *WhatsAppSink) Name() string { return "whatsapp" }

func (w *WhatsAppSink) Send(text string) error {
	resp, err := w.Client.Get(w.URL + "&text=" + url.QueryEscape(text))
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp gateway error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

// EmailWebhookSink delivers messages as a JSON {"text": ...} POST to an
// email-forwarding webhook (Zapier-style).
type EmailWebhookSink struct {
	URL    string
	Client *http.Client
}

// NewEmailWebhookSink creates a sink with optional proxy support.
func NewEmailWebhookSink(webhookURL, proxyURL string) *EmailWebhookSink {
	return &EmailWebhookSink{URL: webhookURL, Client: newHTTPClient(proxyURL)}
}

func (e *EmailWebhookSink) Name() string { return "email-webhook" }

func (e *EmailWebhookSink) Send(text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := e.Client.Post(e.URL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("email webhook send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email webhook error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}
