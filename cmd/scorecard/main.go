// Command scorecard prints recent matches, or one full scorecard, from a
// running cricfanzz server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xaitan80/cricfanzz/internal/matches"
	"github.com/xaitan80/cricfanzz/internal/scorecard"
)

var errNotFound = errors.New("match not found")

type client struct {
	base string
	http *http.Client
}

func main() {
	server := flag.String("server", "http://localhost:3001", "Base URL of the cricfanzz server")
	id := flag.String("id", "", "Match id to print (lists recent matches when empty)")
	limit := flag.Int("limit", matches.DefaultLimit, "Number of recent matches to list")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP timeout")
	flag.Parse()

	c := &client{base: strings.TrimRight(*server, "/"), http: &http.Client{Timeout: *timeout}}
	ctx := context.Background()

	var err error
	if *id != "" {
		err = c.printMatch(ctx, os.Stdout, *id)
	} else {
		err = c.printRecent(ctx, os.Stdout, *limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "scorecard: %v\n", err)
		os.Exit(1)
	}
}

func (c *client) printRecent(ctx context.Context, w io.Writer, limit int) error {
	var list []scorecard.Record
	if err := c.get(ctx, "/get-data?limit="+strconv.Itoa(limit), &list); err != nil {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No matches yet.")
		return err
	}
	return scorecard.WriteTable(w, recentTable(list))
}

func (c *client) printMatch(ctx context.Context, w io.Writer, id string) error {
	var v scorecard.View
	if err := c.get(ctx, "/view-match/"+url.PathEscape(id), &v); err != nil {
		return err
	}
	return scorecard.WriteText(w, v)
}

func recentTable(list []scorecard.Record) scorecard.Table {
	t := scorecard.Table{Columns: []string{"ID", "Status", "Team 1", "Score", "Team 2", "Score"}}
	for _, m := range list {
		t.Rows = append(t.Rows, []string{m.ID, m.Status, m.Team1, m.Score1, m.Team2, m.Score2})
	}
	return t
}

func (c *client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
