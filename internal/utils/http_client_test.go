package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}
	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}

func TestNewHTTPClient_SendsCookiesBack(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/set":
			http.SetCookie(w, &http.Cookie{Name: "refresh", Value: "r-1", Path: "/"})
		case "/echo":
			if c, err := r.Cookie("refresh"); err == nil {
				gotCookie = c.Value
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient()

	if _, err := client.R().Get(srv.URL + "/set"); err != nil {
		t.Fatalf("set request: %v", err)
	}
	if _, err := client.R().Get(srv.URL + "/echo"); err != nil {
		t.Fatalf("echo request: %v", err)
	}

	if gotCookie != "r-1" {
		t.Errorf("expected cookie 'r-1' to be sent back, got %q", gotCookie)
	}
}

func TestNewHTTPClient_CookiesNotShared(t *testing.T) {
	var gotCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/set" {
			http.SetCookie(w, &http.Cookie{Name: "refresh", Value: "r-1", Path: "/"})
		} else if _, err := r.Cookie("refresh"); err == nil {
			gotCookie = true
		}
	}))
	defer srv.Close()

	if _, err := NewHTTPClient().R().Get(srv.URL + "/set"); err != nil {
		t.Fatalf("set request: %v", err)
	}
	if _, err := NewHTTPClient().R().Get(srv.URL + "/echo"); err != nil {
		t.Fatalf("echo request: %v", err)
	}

	if gotCookie {
		t.Error("expected a fresh client not to carry cookies of another client")
	}
}
