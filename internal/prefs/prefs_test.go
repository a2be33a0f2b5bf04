package prefs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/testutil"
)

type memKV struct {
	values map[string]string
	writes []string
	getErr error
}

func newMemKV(kv map[string]string) *memKV {
	if kv == nil {
		kv = map[string]string{}
	}
	return &memKV{values: kv}
}

func (m *memKV) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.values[key] = value
	m.writes = append(m.writes, key+"="+value)
	return nil
}

func TestLoad_Defaults(t *testing.T) {
	p, err := Load(newMemKV(nil))
	require.NoError(t, err)
	assert.False(t, p.Dark(), "missing theme is light")
	assert.True(t, p.SidebarOpen(), "missing sidebar flag is open")
	assert.Equal(t, "", p.ContextText())
	assert.Equal(t, "light", p.ThemeName())
}

func TestLoad_StoredValues(t *testing.T) {
	tests := []struct {
		theme, sidebar     string
		wantDark, wantOpen bool
	}{
		{theme: "dark", sidebar: "false", wantDark: true, wantOpen: false},
		{theme: "light", sidebar: "true", wantDark: false, wantOpen: true},
		{theme: "Dark", sidebar: "False", wantDark: false, wantOpen: true},
		{theme: "", sidebar: "", wantDark: false, wantOpen: true},
		{theme: "garbage", sidebar: "0", wantDark: false, wantOpen: true},
	}
	for _, tt := range tests {
		t.Run(tt.theme+"/"+tt.sidebar, func(t *testing.T) {
			p, err := Load(newMemKV(map[string]string{KeyTheme: tt.theme, KeySidebarOpen: tt.sidebar}))
			require.NoError(t, err)
			assert.Equal(t, tt.wantDark, p.Dark())
			assert.Equal(t, tt.wantOpen, p.SidebarOpen())
		})
	}
}

func TestLoad_Error(t *testing.T) {
	kv := newMemKV(nil)
	kv.getErr = errors.New("disk gone")
	_, err := Load(kv)
	assert.Error(t, err)
}

func TestToggle_WritesOpposite(t *testing.T) {
	kv := newMemKV(map[string]string{KeyTheme: "dark"})
	p, err := Load(kv)
	require.NoError(t, err)

	dark, err := p.ToggleDark()
	require.NoError(t, err)
	assert.False(t, dark)
	assert.Equal(t, "light", kv.values[KeyTheme])

	open, err := p.ToggleSidebar()
	require.NoError(t, err)
	assert.False(t, open)
	assert.Equal(t, "false", kv.values[KeySidebarOpen])

	reloaded, err := Load(kv)
	require.NoError(t, err)
	assert.False(t, reloaded.Dark())
	assert.False(t, reloaded.SidebarOpen())

	assert.Equal(t, []string{"theme=light", "sidebarOpen=false"}, kv.writes)
}

func TestContextText(t *testing.T) {
	kv := newMemKV(nil)
	p, err := Load(kv)
	require.NoError(t, err)

	require.NoError(t, p.SetContextText("Chapter 3 notes"))
	assert.Equal(t, "Chapter 3 notes", p.ContextText())
	assert.Equal(t, "Chapter 3 notes", kv.values[KeyContextText])

	require.NoError(t, p.ClearContextText())
	assert.Equal(t, "", p.ContextText())
}

func TestWithStorage(t *testing.T) {
	path := filepath.Join(testutil.CreateTempDir(t), "state.db")
	db, err := internal.OpenDatabase(path)
	require.NoError(t, err)
	store := internal.NewStorage(db, path)
	defer func() { _ = store.Close() }()

	p, err := Load(store)
	require.NoError(t, err)
	_, err = p.ToggleDark()
	require.NoError(t, err)

	reloaded, err := Load(store)
	require.NoError(t, err)
	assert.True(t, reloaded.Dark())
}
