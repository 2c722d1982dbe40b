package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zaplanje/coin/business/web/errs"
)

// ErrNoSession is returned when a command needs a member session and none
// has been stored yet.
var ErrNoSession = errors.New("no session, run the signin command first")

var client = http.Client{Timeout: 15 * time.Second}

// call performs the request against the service and decodes the JSON
// response into resp when it is not nil.
func call(method string, path string, token string, req any, resp any) error {
	var body io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	r, err := http.NewRequest(method, strings.TrimSuffix(url, "/")+path, body)
	if err != nil {
		return err
	}

	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := client.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var er errs.Response
		if err := json.NewDecoder(res.Body).Decode(&er); err != nil || er.Error == "" {
			return fmt.Errorf("%s %s: %s", method, path, res.Status)
		}
		return fmt.Errorf("%s (%d)", er.Error, res.StatusCode)
	}

	if resp == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// raw performs an authenticated GET and returns the body as is.
func raw(path string, token string) ([]byte, error) {
	r, err := http.NewRequest(http.MethodGet, strings.TrimSuffix(url, "/")+path, nil)
	if err != nil {
		return nil, err
	}
	r.Header.Set("Authorization", "Bearer "+token)

	res, err := client.Do(r)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", path, res.Status)
	}

	return io.ReadAll(res.Body)
}

func loadToken() (string, error) {
	data, err := os.ReadFile(sessionPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoSession
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(sessionPath), 0700); err != nil {
		return err
	}
	return os.WriteFile(sessionPath, []byte(token), 0600)
}

func removeToken() error {
	if err := os.Remove(sessionPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
