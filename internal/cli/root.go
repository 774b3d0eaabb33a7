// Package cli holds the state shared by habitual's kong commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Service
	Config  config.Config
	// ConfigFile is where `init` writes a default config when none exists
	ConfigFile string
	// Out receives command output; nil means stdout
	Out io.Writer
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// Today is the current calendar date in the configured timezone
func (c *Context) Today() (time.Time, error) {
	return utils.TodayInTimezone(c.Config.Timezone)
}

// Day parses a YYYY-MM-DD flag value, defaulting to today
func (c *Context) Day(s string) (time.Time, error) {
	return utils.ResolveDate(strings.TrimSpace(s), c.Config.Timezone)
}

// IsSQLite reports whether the store is a local SQLite file
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup snapshots a SQLite database and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// HabitState renders a habit's lifecycle flag for listings
func HabitState(h models.Habit) string {
	switch {
	case h.DeletedAt != nil:
		return "deleted"
	case h.ArchivedAt != nil:
		return "archived"
	default:
		return "active"
	}
}

// Truncate pads or cuts s to exactly width runes
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width >= 5 {
			return string(r[:width-3]) + "..."
		}
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
