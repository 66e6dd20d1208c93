package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// Client talks to a running article feed service. Login stores the session
// token used by the other calls.
type Client struct {
	http.Client
	Addr  string
	Token string
}

type User struct {
	ID          string   `json:"_id"`
	FirstName   string   `json:"firstName"`
	Email       string   `json:"email"`
	Preferences []string `json:"preferences"`
	Token       string   `json:"token"`
}

type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Author   struct {
		ID        string `json:"_id"`
		FirstName string `json:"firstName"`
	} `json:"author"`
	IsLiked       bool `json:"isLiked"`
	IsDisliked    bool `json:"isDisliked"`
	IsBlocked     bool `json:"isBlocked"`
	LikesCount    int  `json:"likesCount"`
	DislikesCount int  `json:"dislikesCount"`
	BlocksCount   int  `json:"blocksCount"`
}

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (c *Client) Ping() (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) Login(ctx context.Context, emailOrPhone, password string) (*User, error) {
	u := &User{}
	in := map[string]string{"emailOrPhone": emailOrPhone, "password": password}
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", in, u); err != nil {
		return nil, errors.Wrap(err, "login")
	}
	c.Token = u.Token

	return u, nil
}

// Feed returns the logged-in user's feed.
func (c *Client) Feed(ctx context.Context) ([]Article, error) {
	var out struct {
		Feed []Article `json:"feed"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/articles", nil, &out); err != nil {
		return nil, errors.Wrap(err, "feed")
	}

	return out.Feed, nil
}

// React sends a like, dislike or block toggle and returns the article as
// the server sees it afterwards.
func (c *Client) React(ctx context.Context, articleID, action string) (*Article, error) {
	a := &Article{}
	in := map[string]string{"action": action}
	if err := c.call(ctx, http.MethodPut, "/api/articles/"+articleID+"/reaction", in, a); err != nil {
		return nil, errors.Wrapf(err, "react to %s", articleID)
	}

	return a, nil
}

func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	return json.Unmarshal(data, out)
}
