package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/session"
)

// Client talks to a running engine api.
type Client struct {
	apiURL string
	client *http.Client
}

// NewClient returns a client for the api at apiURL, e.g. http://localhost:3005.
func NewClient(apiURL string) *Client {
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Frame fetches the current frame.
func (c *Client) Frame() (*pb.Frame, error) {
	f := &pb.Frame{}
	if err := c.get("/session", f); err != nil {
		return nil, err
	}
	return f, nil
}

// Send posts an intent.
func (c *Client) Send(in session.Intent) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.apiURL+"/session/intents", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrap(err, "unable to post intent")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return decodeError(resp)
	}
	return nil
}

// Scores lists the best summaries.
func (c *Client) Scores(limit int) ([]*pb.Summary, error) {
	res := &ScoresResponse{}
	if err := c.get(fmt.Sprintf("/scores?limit=%d", limit), res); err != nil {
		return nil, err
	}
	return res.Summaries, nil
}

// Score fetches one summary. A missing summary is controller.ErrNotFound.
func (c *Client) Score(id string) (*pb.Summary, error) {
	sum := &pb.Summary{}
	if err := c.get("/scores/"+url.PathEscape(id), sum); err != nil {
		return nil, err
	}
	return sum, nil
}

// Socket opens the frame stream.
func (c *Client) Socket() (*websocket.Conn, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid api url")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/session/socket"

	ws, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to dial %s", u.String())
	}
	return ws, nil
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return errors.Wrapf(err, "unable to get %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return controller.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "unable to decode %s", path)
}

func decodeError(resp *http.Response) error {
	e := &ErrorResponse{}
	if err := json.NewDecoder(resp.Body).Decode(e); err != nil || e.Error == "" {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return errors.Errorf("status %d: %s", resp.StatusCode, e.Error)
}
