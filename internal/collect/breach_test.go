package collect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBreachCheck_MissingCredential(t *testing.T) {
	client := NewBreachClient(http.DefaultClient, "")

	_, err := client.Check(context.Background(), "user@example.com")
	if !errors.Is(err, ErrCredentialRequired) {
		t.Fatalf("err = %v, want ErrCredentialRequired", err)
	}
}

func TestBreachCheck_CleanAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("hibp-api-key") != "test-key" {
			t.Errorf("hibp-api-key = %q, want test-key", r.Header.Get("hibp-api-key"))
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewBreachClient(srv.Client(), "test-key")
	client.BaseURL = srv.URL

	findings, err := client.Check(context.Background(), "clean@example.com")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if findings.Found || findings.Count != 0 {
		t.Errorf("findings = %+v, want clean", findings)
	}
	if findings.Message != "No breaches found" {
		t.Errorf("Message = %q, want %q", findings.Message, "No breaches found")
	}
}

func TestBreachCheck_BreachedAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"Name": "Adobe", "Title": "Adobe", "Domain": "adobe.com",
			 "BreachDate": "2013-10-04", "PwnCount": 152445165,
			 "DataClasses": ["Email addresses", "Passwords"], "IsVerified": true},
			{"Name": "LinkedIn", "Title": "LinkedIn", "Domain": "linkedin.com",
			 "BreachDate": "2012-05-05", "PwnCount": 164611595,
			 "DataClasses": ["Email addresses"], "IsVerified": true}
		]`))
	}))
	defer srv.Close()

	client := NewBreachClient(srv.Client(), "test-key")
	client.BaseURL = srv.URL

	findings, err := client.Check(context.Background(), "pwned@example.com")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !findings.Found || findings.Count != 2 {
		t.Fatalf("Found=%t Count=%d, want 2 breaches", findings.Found, findings.Count)
	}
	if findings.Breaches[0].Title != "Adobe" {
		t.Errorf("first breach = %q, want Adobe", findings.Breaches[0].Title)
	}
}
