//go:build integration
// +build integration

package client

import (
	"context"
	"net/http"
	"os"
	"testing"
)

var c = Client{
	Addr:   "http://localhost:3333",
	Client: http.Client{},
}

func TestPing(t *testing.T) {
	if s, err := c.Ping(); err != nil || s != "pong" {
		t.Fail()
	}
}

// TestFeed expects REST_TEST_LOGIN and REST_TEST_PASSWORD of a registered
// account.
func TestFeed(t *testing.T) {
	login, password := os.Getenv("REST_TEST_LOGIN"), os.Getenv("REST_TEST_PASSWORD")
	if login == "" {
		t.Skip("REST_TEST_LOGIN not set")
	}

	ctx := context.Background()
	if _, err := c.Login(ctx, login, password); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Feed(ctx); err != nil {
		t.Fatal(err)
	}
}
