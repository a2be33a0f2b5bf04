package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/panel"
)

// CommandKind identifies a slash command
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdOperation
	CmdTone
	CmdTheme
	CmdSidebar
	CmdNew
	CmdOpen
	CmdFile
	CmdHelp
)

// Command is a parsed slash command
type Command struct {
	Kind CommandKind
	Task internal.Task // CmdOperation
	Arg  string        // tone name, file path
	Rest string        // question after the file path
	N    int           // CmdOpen, 1-based
}

// ParseCommand parses input starting with "/". ok is false for ordinary chat text.
func ParseCommand(input string) (cmd Command, ok bool, err error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return Command{}, false, nil
	}

	fields := strings.Fields(input[1:])
	if len(fields) == 0 {
		return Command{}, true, fmt.Errorf("empty command, try /help")
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	if task, err := internal.ParseTask(name); err == nil {
		return Command{Kind: CmdOperation, Task: task}, true, nil
	}

	switch name {
	case "tone":
		if len(args) > 1 {
			return Command{}, true, fmt.Errorf("usage: /tone [name]")
		}
		c := Command{Kind: CmdTone}
		if len(args) == 1 {
			c.Arg = args[0]
		}
		return c, true, nil
	case "theme":
		return Command{Kind: CmdTheme}, true, nil
	case "sidebar":
		return Command{Kind: CmdSidebar}, true, nil
	case "new":
		return Command{Kind: CmdNew}, true, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, true, nil
	case "open":
		if len(args) != 1 {
			return Command{}, true, fmt.Errorf("usage: /open <number>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return Command{}, true, fmt.Errorf("invalid conversation number %q", args[0])
		}
		return Command{Kind: CmdOpen, N: n}, true, nil
	case "file", "upload":
		if len(args) == 0 {
			return Command{}, true, fmt.Errorf("usage: /file <path> [question]")
		}
		return Command{Kind: CmdFile, Arg: args[0], Rest: strings.Join(args[1:], " ")}, true, nil
	}
	return Command{}, true, fmt.Errorf("unknown command /%s, try /help", name)
}

// HelpText lists the shell commands and the other study tools
func HelpText() string {
	var b strings.Builder
	b.WriteString("Commands\n")
	for _, t := range internal.Tasks {
		fmt.Fprintf(&b, "  /%-12s %s\n", t, t.Description())
	}
	b.WriteString("  /tone [name]  show or change the response tone\n")
	b.WriteString("  /file <path>  upload a PDF or text file, optionally followed by a question\n")
	b.WriteString("  /open <n>     reopen conversation n from the sidebar\n")
	b.WriteString("  /new          start a new conversation (ctrl+n)\n")
	b.WriteString("  /theme        toggle dark mode (ctrl+t)\n")
	b.WriteString("  /sidebar      toggle the sidebar (ctrl+b)\n")
	b.WriteString("\nOther tools (run from the command line)\n")
	for _, e := range panel.Registry {
		if _, err := internal.ParseTask(string(e.Kind)); err == nil || e.Kind == panel.KindChat {
			continue
		}
		fmt.Fprintf(&b, "  %-15s %s\n", e.Kind, e.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
