package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyrosle/xdiff/packages/errdef"
	"github.com/kyrosle/xdiff/packages/output"
)

func usersServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Api", "demo")
		switch r.URL.Path {
		case "/users":
			_, _ = w.Write([]byte(`{"id":1,"name":"a"}`))
		case "/v2/users":
			_, _ = w.Write([]byte(`{"id":1,"name":"b"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execRoot(t *testing.T, m mode, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(m)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func diffConfigFor(server *httptest.Server) string {
	return fmt.Sprintf(`users:
  req1:
    url: %[1]s/users
  req2:
    url: %[1]s/v2/users
  res:
    skip_headers:
      - date
`, server.URL)
}

func TestRun_Diff(t *testing.T) {
	server := usersServer(t)
	path := writeConfig(t, "xdiff.yml", diffConfigFor(server))

	out, err := execRoot(t, diffMode, "run", "-p", "users", "-c", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, `-  "name": "a"`)
	assert.Contains(t, out, `+  "name": "b"`)
	assert.NotContains(t, out, `-  "id": 1`)
	assert.NotContains(t, out, "x-api")
}

func TestRun_Diff_JSONOutput(t *testing.T) {
	server := usersServer(t)
	path := writeConfig(t, "xdiff.yml", diffConfigFor(server))

	out, err := execRoot(t, diffMode, "run", "-p", "users", "-c", path, "-o", "json")
	require.NoError(t, err)

	var got output.JSONDiff
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "users", got.Profile)
	assert.False(t, got.Identical)
	assert.Equal(t, 1, got.Added)
	assert.Equal(t, 1, got.Removed)
}

func TestRun_Request(t *testing.T) {
	server := usersServer(t)
	path := writeConfig(t, "xreq.yml", fmt.Sprintf("users:\n  url: %s/users\n", server.URL))

	out, err := execRoot(t, requestMode, "run", "-p", "users", "-c", path, "-e", "page=2")
	require.NoError(t, err)

	assert.Contains(t, out, "Url: "+server.URL+"/users?page=2\n\nHTTP/1.1 200 OK\n")
	assert.Contains(t, out, "x-api: demo\n")
	assert.Contains(t, out, "\"name\": \"a\"")
}

func TestRun_Errors(t *testing.T) {
	server := usersServer(t)
	path := writeConfig(t, "xdiff.yml", diffConfigFor(server))

	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{
			name: "profile not found",
			args: []string{"run", "-p", "missing", "-c", path},
			code: ExitConfigError,
			msg:  "profile missing not found in config file " + path,
		},
		{
			name: "bad override token",
			args: []string{"run", "-p", "users", "-c", path, "-e", "1bad=x"},
			code: ExitUsageError,
			msg:  "invalid key value pair: 1bad=x",
		},
		{
			name: "missing file",
			args: []string{"run", "-p", "users", "-c", filepath.Join(t.TempDir(), "none.yml")},
			code: ExitConfigError,
			msg:  "read config",
		},
		{
			name: "unsupported content type",
			args: []string{"run", "-p", "users", "-c", path, "-e", "%content-type:text/plain"},
			code: ExitFailure,
			msg:  "unsupported content-type: text/plain",
		},
		{
			name: "bad timeout",
			args: []string{"run", "-p", "users", "-c", path, "--timeout", "soon"},
			code: ExitUsageError,
			msg:  "invalid timeout value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execRoot(t, diffMode, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCodeFor(err))
			assert.Contains(t, err.Error(), tt.msg)
			assert.NotContains(t, out, "---")
		})
	}
}

func TestValidateAndList(t *testing.T) {
	server := usersServer(t)
	path := writeConfig(t, "xdiff.yml", diffConfigFor(server))

	out, err := execRoot(t, diffMode, "validate", "-c", path)
	require.NoError(t, err)
	assert.Equal(t, "Valid: "+path+" (1 profiles)\n", out)

	out, err = execRoot(t, diffMode, "list", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "users:\n  req1: GET "+server.URL+"/users\n  req2: GET "+server.URL+"/v2/users\n")
	assert.Contains(t, out, "skip_headers: [date]")

	bad := writeConfig(t, "xdiff.yml", "broken:\n  req1:\n    url: https://a.com/\n    params: [1]\n  req2:\n    url: https://b.com/\n")
	_, err = execRoot(t, diffMode, "validate", "-c", bad)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCodeFor(err))
	assert.Contains(t, err.Error(), "failed to validate profile: broken")
}

func TestInit(t *testing.T) {
	for _, m := range []mode{diffMode, requestMode} {
		t.Run(m.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), m.name+".yml")

			out, err := execRoot(t, m, "init", "-c", path)
			require.NoError(t, err)
			assert.Contains(t, out, "Created: "+path)

			_, err = execRoot(t, m, "validate", "-c", path)
			require.NoError(t, err)

			_, err = execRoot(t, m, "init", "-c", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "already exists")

			_, err = execRoot(t, m, "init", "-c", path, "--force")
			require.NoError(t, err)
		})
	}
}

func TestBuildDiffConfig(t *testing.T) {
	server := usersServer(t)
	settings, err := loadSettings()
	require.NoError(t, err)

	root := newRootCmd(diffMode)
	var offered []string
	choose := func(names []string) ([]int, error) {
		offered = names
		return []int{0, 2}, nil
	}

	c, err := buildDiffConfig(context.Background(), newRunner(root, settings), "users", server.URL+"/users?a=1", server.URL+"/v2/users", choose)
	require.NoError(t, err)

	assert.Equal(t, []string{"content-length", "content-type", "date", "x-api"}, offered)
	p, ok := c.GetProfile("users")
	require.True(t, ok)
	assert.Equal(t, server.URL+"/users", p.Req1.URL)
	assert.Equal(t, map[string]any{"a": int64(1)}, p.Req1.Params)
	assert.Equal(t, []string{"content-length", "date"}, p.Res.SkipHeaders)
}

func TestBuildDiffConfig_Aborted(t *testing.T) {
	server := usersServer(t)
	settings, err := loadSettings()
	require.NoError(t, err)
	root := newRootCmd(diffMode)

	abort := func([]string) ([]int, error) { return nil, errors.New("prompt aborted") }
	_, err = buildDiffConfig(context.Background(), newRunner(root, settings), "x", server.URL+"/users", server.URL+"/users", abort)
	require.Error(t, err)
}

func TestBuildRequestConfig(t *testing.T) {
	c, err := buildRequestConfig("todo", "https://x.com/a?x=1&y=2")
	require.NoError(t, err)
	p, ok := c.GetProfile("todo")
	require.True(t, ok)
	assert.Equal(t, "https://x.com/a", p.URL)
	assert.Equal(t, "GET", p.Method)

	_, err = buildRequestConfig("todo", "not a url")
	require.Error(t, err)
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errdef.New(errdef.CodeConfig, "x"), ExitConfigError},
		{errdef.New(errdef.CodeValidation, "x"), ExitConfigError},
		{errdef.New(errdef.CodeProfileNotFound, "x"), ExitConfigError},
		{errdef.New(errdef.CodeResponseParse, "x"), ExitParseError},
		{fmt.Errorf("req2: %w", errdef.New(errdef.CodeNetwork, "x")), ExitNetworkError},
		{errdef.New(errdef.CodeUsage, "x"), ExitUsageError},
		{errdef.New(errdef.CodeRequestBuild, "x"), ExitFailure},
		{errors.New("plain"), ExitFailure},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCodeFor(tt.err))
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := parseTimeout("1500")
	require.NoError(t, err)
	assert.Equal(t, "1.5s", d.String())

	d, err = parseTimeout("2s")
	require.NoError(t, err)
	assert.Equal(t, "2s", d.String())

	_, err = parseTimeout("-1s")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execRoot(t, requestMode, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "xreq version dev\n"))
}

func TestSerialRunner(t *testing.T) {
	var buf bytes.Buffer
	f, err := output.NewFormatter(output.FormatJSON, &buf, false)
	require.NoError(t, err)

	var running, overlaps, calls atomic.Int32
	rerun := serialRunner(f, func(context.Context) error {
		if running.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(10 * time.Millisecond)
		running.Add(-1)
		if calls.Add(1) == 1 {
			return errors.New("boom")
		}
		return nil
	})

	var wg sync.WaitGroup
	var before atomic.Int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rerun(context.Background(), func() { before.Add(1) })
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), calls.Load())
	assert.Equal(t, int32(5), before.Load())
	assert.Zero(t, overlaps.Load())
	assert.Equal(t, 1, strings.Count(buf.String(), `"error": "boom"`))
}
