package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// client talks to the kv-server HTTP API.
type client struct {
	baseURL string
	http    *http.Client
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Get server address from environment or use default
	baseURL := os.Getenv("KV_SERVER_ADDR")
	if baseURL == "" {
		baseURL = "http://localhost:4000"
	}

	c := &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}

	command := os.Args[1]

	switch command {
	case "get":
		if len(os.Args) < 3 {
			fmt.Println("Usage: kv-cli get <key>")
			os.Exit(1)
		}
		handleGet(c, os.Args[2])

	case "set":
		if len(os.Args) < 4 {
			fmt.Println("Usage: kv-cli set <key> <value>")
			os.Exit(1)
		}
		handleSet(c, os.Args[2], os.Args[3])

	case "delete":
		if len(os.Args) < 3 {
			fmt.Println("Usage: kv-cli delete <key>")
			os.Exit(1)
		}
		handleDelete(c, os.Args[2])

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleGet(c *client, key string) {
	resp, err := c.http.Get(c.baseURL + "/get?key=" + url.QueryEscape(key))
	if err != nil {
		log.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		fmt.Printf("Key '%s' not found\n", key)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Get failed: %s", readError(resp))
	}

	var body struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Fatalf("Failed to parse response: %v", err)
	}

	printed, err := json.Marshal(body.Value)
	if err != nil {
		log.Fatalf("Failed to render value: %v", err)
	}
	fmt.Println(string(printed))
}

func handleSet(c *client, key, rawValue string) {
	// Treat the argument as JSON where possible; fall back to a plain string.
	var value any
	if err := json.Unmarshal([]byte(rawValue), &value); err != nil {
		value = rawValue
	}

	resp, err := c.postJSON("/set", map[string]any{
		"key":   key,
		"value": value,
	})
	if err != nil {
		log.Fatalf("Set failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Set failed: %s", readError(resp))
	}

	fmt.Printf("Set '%s' = '%s'\n", key, rawValue)
}

func handleDelete(c *client, key string) {
	resp, err := c.postJSON("/delete", map[string]any{"key": key})
	if err != nil {
		log.Fatalf("Delete failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Delete failed: %s", readError(resp))
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Fatalf("Failed to parse response: %v", err)
	}

	if body.Message != "" {
		fmt.Println(body.Message)
		return
	}
	fmt.Printf("Deleted '%s'\n", key)
}

func (c *client) postJSON(path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.http.Do(req)
}

// readError extracts the error message from a non-200 response body.
func readError(resp *http.Response) string {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  kv-cli get <key>")
	fmt.Println("  kv-cli set <key> <value>")
	fmt.Println("  kv-cli delete <key>")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  KV_SERVER_ADDR - kv-server address (default: http://localhost:4000)")
}
