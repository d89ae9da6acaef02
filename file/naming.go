package file

import (
	"time"

	"github.com/abyssdigger/plog"
)

const (
	DEFAULT_FILE_NAME   = "log"
	DEFAULT_DATE_LAYOUT = "2006-01-02"
)

// FileNameGenerator decides which file an entry goes to. Generate is only
// consulted for every entry when IsChangeable reports true; otherwise the
// first generated name is kept for the printer's lifetime. Generate must
// not return an empty name.
type FileNameGenerator interface {
	IsChangeable() bool
	Generate(level plog.Level, t time.Time) string
}

// ChangelessFileNameGenerator always uses the same file.
type ChangelessFileNameGenerator struct {
	Name string
}

func (g ChangelessFileNameGenerator) IsChangeable() bool { return false }

func (g ChangelessFileNameGenerator) Generate(plog.Level, time.Time) string { return g.Name }

// LevelFileNameGenerator writes one file per level, named after the level
// ("INFO", "ERROR", "VERBOSE-1").
type LevelFileNameGenerator struct{}

func (LevelFileNameGenerator) IsChangeable() bool { return true }

func (LevelFileNameGenerator) Generate(level plog.Level, _ time.Time) string {
	return plog.LevelName(level)
}

// DateFileNameGenerator writes one file per period, the name being the
// entry time formatted with Layout (DEFAULT_DATE_LAYOUT when empty, i.e. one
// file per day) in the time's own location.
type DateFileNameGenerator struct {
	Layout string
	Prefix string
	Suffix string
}

func (g DateFileNameGenerator) IsChangeable() bool { return true }

func (g DateFileNameGenerator) Generate(_ plog.Level, t time.Time) string {
	layout := g.Layout
	if layout == "" {
		layout = DEFAULT_DATE_LAYOUT
	}
	return g.Prefix + t.Format(layout) + g.Suffix
}
