package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/s0up4200/epoll/filter"
	"github.com/s0up4200/epoll/request"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	detailColor  = color.New(color.Faint)
)

// listPaths are the envelope fields a listing may be wrapped in
var listPaths = []string{"data", "items", "results"}

// dispatch runs a built call and logs its outcome
func dispatch(ctx context.Context, call *request.Call) (*request.Response, error) {
	resp, err := call.Do(ctx)
	if err != nil {
		logger.Debug().Err(err).Str("operation", string(call.Operation())).Msg("Request failed")
		return nil, fmt.Errorf("%s %s: %w", call.Method(), call.URL(), err)
	}
	return resp, nil
}

// printResponse writes the response body as indented JSON or a status line
func printResponse(w io.Writer, resp *request.Response, summary string) error {
	if outputFormat == outputJSON {
		return writeJSON(w, resp.Body)
	}

	successColor.Fprintf(w, "✓ %s", summary)
	if id := resp.Get("id"); id.Exists() {
		fmt.Fprintf(w, " (id: %s)", id.String())
	}
	fmt.Fprintln(w)
	return nil
}

// printItems writes listed items, one per line in text mode
func printItems(w io.Writer, items []filter.Item, noun string) error {
	if outputFormat == outputJSON {
		raw, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", noun, err)
		}
		return writeJSON(w, raw)
	}

	if len(items) == 0 {
		fmt.Fprintf(w, "No %s found.\n", noun)
		return nil
	}

	fmt.Fprintf(w, "Found %d %s:\n", len(items), noun)
	fmt.Fprintln(w, strings.Repeat("━", 80))
	for _, item := range items {
		fmt.Fprintf(w, "• %s", itemTitle(item))
		if id, ok := item["id"]; ok {
			detailColor.Fprintf(w, " [%v]", id)
		}
		if state, ok := item["state"]; ok {
			detailColor.Fprintf(w, " state=%v", state)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("━", 80))
	return nil
}

// decodeItems extracts a list of objects from a bare array or a common envelope
func decodeItems(resp *request.Response) ([]filter.Item, error) {
	list := gjson.ParseBytes(resp.Body)
	if !list.IsArray() {
		for _, path := range listPaths {
			if r := list.Get(path); r.IsArray() {
				list = r
				break
			}
		}
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("response is not a list")
	}

	var items []filter.Item
	if err := json.Unmarshal([]byte(list.Raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return items, nil
}

func itemTitle(item filter.Item) string {
	for _, key := range []string{"title", "name", "content"} {
		if v, ok := item[key].(string); ok && v != "" {
			return v
		}
	}
	return "(untitled)"
}

func writeJSON(w io.Writer, raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		// Not JSON; print as received
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func printFailure(format string, args ...any) {
	failureColor.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}
