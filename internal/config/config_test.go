package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/testutil"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	t.Setenv("HOME", dir)
	for _, key := range []string{"STUDYMIND_BACKEND_URL", "STUDYMIND_USER_ID", "STUDYMIND_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, cfg.BackendURL)
	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.True(t, cfg.Markdown)
	assert.Equal(t, api.DefaultMaxResponseBytes, cfg.MaxResponseBytes)
	assert.Equal(t, "", cfg.File)
	assert.Len(t, cfg.ClientOptions(), 2)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	dir := testutil.CreateTempDir(t)
	path := testutil.WriteFile(t, dir, "custom.yaml", []byte(`
backend_url: http://studymind.internal:8080
user_id: instructor-42
timeout: 45s
markdown: false
`))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "http://studymind.internal:8080", cfg.BackendURL)
	assert.Equal(t, "instructor-42", cfg.UserID)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.False(t, cfg.Markdown)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_SearchPath(t *testing.T) {
	isolate(t)
	testutil.WriteFile(t, ".", "studymind.yaml", []byte("user_id: from-cwd\n"))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-cwd", cfg.UserID)
	assert.Equal(t, "studymind.yaml", filepath.Base(cfg.File))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := testutil.WriteFile(t, testutil.CreateTempDir(t), "c.yaml", []byte("user_id: from-file\n"))
	t.Setenv("STUDYMIND_USER_ID", "from-env")
	t.Setenv("STUDYMIND_BACKEND_URL", "https://study.example.com")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.UserID)
	assert.Equal(t, "https://study.example.com", cfg.BackendURL)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)
	dir := testutil.CreateTempDir(t)

	_, err := Load(New(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := testutil.WriteFile(t, dir, "bad.yaml", []byte("backend_url: [unterminated\n"))
	_, err = Load(New(), bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{BackendURL: "http://127.0.0.1:5000", UserID: "u"}},
		{name: "no scheme", cfg: Config{BackendURL: "127.0.0.1:5000", UserID: "u"}, wantErr: true},
		{name: "ftp", cfg: Config{BackendURL: "ftp://host", UserID: "u"}, wantErr: true},
		{name: "empty user", cfg: Config{BackendURL: "http://h", UserID: " "}, wantErr: true},
		{name: "negative timeout", cfg: Config{BackendURL: "http://h", UserID: "u", Timeout: -time.Second}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
