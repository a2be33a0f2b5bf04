// Package prefs persists the display preferences and the shared context text.
// Values are read once by Load and written only by the explicit setters.
package prefs

import (
	"fmt"
	"sync"
)

const (
	KeyTheme       = "theme"
	KeySidebarOpen = "sidebarOpen"
	KeyContextText = "contextText"
)

// KV is string key/value storage
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Prefs is the loaded preference state
type Prefs struct {
	kv KV

	mu          sync.Mutex
	dark        bool
	sidebarOpen bool
	contextText string
}

// Load reads the stored preferences. A missing theme is light and a missing
// sidebar flag is open.
func Load(kv KV) (*Prefs, error) {
	p := &Prefs{kv: kv}

	theme, _, err := kv.Get(KeyTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeyTheme, err)
	}
	p.dark = theme == "dark"

	sidebar, _, err := kv.Get(KeySidebarOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeySidebarOpen, err)
	}
	p.sidebarOpen = sidebar != "false"

	p.contextText, _, err = kv.Get(KeyContextText)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeyContextText, err)
	}
	return p, nil
}

// Dark reports whether the dark theme is active
func (p *Prefs) Dark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// SidebarOpen reports whether the sidebar is shown
func (p *Prefs) SidebarOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sidebarOpen
}

// ThemeName returns "dark" or "light"
func (p *Prefs) ThemeName() string {
	if p.Dark() {
		return "dark"
	}
	return "light"
}

// SetDark stores the theme
func (p *Prefs) SetDark(dark bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	value := "light"
	if dark {
		value = "dark"
	}
	if err := p.kv.Set(KeyTheme, value); err != nil {
		return err
	}
	p.dark = dark
	return nil
}

// ToggleDark stores the opposite theme and returns the new value
func (p *Prefs) ToggleDark() (bool, error) {
	next := !p.Dark()
	return next, p.SetDark(next)
}

// SetSidebarOpen stores the sidebar flag
func (p *Prefs) SetSidebarOpen(open bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	value := "false"
	if open {
		value = "true"
	}
	if err := p.kv.Set(KeySidebarOpen, value); err != nil {
		return err
	}
	p.sidebarOpen = open
	return nil
}

// ToggleSidebar stores the opposite sidebar flag and returns the new value
func (p *Prefs) ToggleSidebar() (bool, error) {
	next := !p.SidebarOpen()
	return next, p.SetSidebarOpen(next)
}

// ContextText returns the text captured from an upload for reuse by other panels
func (p *Prefs) ContextText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contextText
}

// SetContextText stores the context text
func (p *Prefs) SetContextText(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.kv.Set(KeyContextText, text); err != nil {
		return err
	}
	p.contextText = text
	return nil
}

// ClearContextText removes the context text
func (p *Prefs) ClearContextText() error {
	return p.SetContextText("")
}
