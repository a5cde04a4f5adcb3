package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultPager runs when $PAGER is unset
const DefaultPager = "less -R"

// Paging selects when output goes through a pager
type Paging string

const (
	PagingAuto   Paging = "auto"
	PagingNever  Paging = "never"
	PagingAlways Paging = "always"
)

// ParsePaging validates a paging mode name
func ParsePaging(s string) (Paging, error) {
	switch p := Paging(strings.ToLower(s)); p {
	case PagingAuto, PagingNever, PagingAlways:
		return p, nil
	default:
		return "", fmt.Errorf("invalid paging mode: %s (must be auto, never or always)", s)
	}
}

// ShouldPage decides whether rows of output need a pager. In auto mode that
// is when stdout is a terminal and the rows do not fit its height.
func ShouldPage(mode Paging, terminal bool, rows, height int) bool {
	switch mode {
	case PagingAlways:
		return true
	case PagingAuto:
		return terminal && height > 0 && rows > height
	default:
		return false
	}
}

// PagerCommand returns the pager argv from $PAGER or DefaultPager
func PagerCommand() []string {
	if fields := strings.Fields(os.Getenv("PAGER")); len(fields) > 0 {
		return fields
	}
	return strings.Fields(DefaultPager)
}

// Page pipes content through the pager, which writes to out
func Page(ctx context.Context, content string, out io.Writer) error {
	argv := PagerCommand()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run pager %s: %w", argv[0], err)
	}
	return nil
}
