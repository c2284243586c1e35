// Package migration imports state left behind by earlier installations.
//
// Before the quote counter moved to the versioned quotes.json store, the last
// issued number lived in a cotizacion.json file in the working directory.
// Importing it keeps quote numbers from restarting at 1.
package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LegacyCounterFile is the file name of the old counter.
const LegacyCounterFile = "cotizacion.json"

// ErrInvalidLegacy indicates the legacy counter file cannot be read as a counter.
var ErrInvalidLegacy = errors.New("invalid legacy counter")

// Seeder is the part of the quote store a migration needs.
type Seeder interface {
	Current() (int, error)
	Seed(ctx context.Context, n int) (int, error)
}

type legacyCounter struct {
	Number *int `json:"cotizacion"`
}

// DetectLegacy returns the legacy counter path inside dir and whether it exists.
func DetectLegacy(dir string) (string, bool) {
	path := filepath.Join(dir, LegacyCounterFile)
	info, err := os.Stat(path)
	if err != nil {
		return path, false
	}
	return path, !info.IsDir()
}

// ReadLegacyCounter returns the last quote number recorded in a legacy file.
func ReadLegacyCounter(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading legacy counter: %w", err)
	}

	var c legacyCounter
	if err = json.Unmarshal(raw, &c); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidLegacy, err)
	}
	if c.Number == nil {
		return 0, fmt.Errorf("%w: %s has no \"cotizacion\" key", ErrInvalidLegacy, path)
	}
	if *c.Number < 0 {
		return 0, fmt.Errorf("%w: negative quote number %d", ErrInvalidLegacy, *c.Number)
	}
	return *c.Number, nil
}

// Options controls RunMigration.
type Options struct {
	// AssumeYes skips the confirmation prompt.
	AssumeYes bool
}

// RunMigration imports the legacy counter at legacyPath into store after
// asking for confirmation on out/in. The legacy file is never modified.
func RunMigration(ctx context.Context, out io.Writer, in io.Reader, legacyPath string, store Seeder, opts Options) error {
	legacy, err := ReadLegacyCounter(legacyPath)
	if err != nil {
		return err
	}

	current, err := store.Current()
	if err != nil {
		return err
	}
	if current >= legacy {
		fmt.Fprintf(out, "Quote counter is already at %d; nothing to import from %s.\n", current, legacyPath)
		return nil
	}

	fmt.Fprintf(out, "Detected legacy quote counter at %s (last quote #%d).\n", legacyPath, legacy)
	if !opts.AssumeYes {
		fmt.Fprintf(out, "Continue numbering from #%d? [y/N] ", legacy+1)

		var response string
		if _, scanErr := fmt.Fscanln(in, &response); scanErr != nil {
			// If we can't read input, treat as "no"
			response = ""
		}
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Migration skipped. Quote numbers continue from the current counter.")
			return nil
		}
	}

	seeded, err := store.Seed(ctx, legacy)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintf(out, "Migration complete. The next quote will be #%d; %s has been preserved.\n", seeded+1, legacyPath)
	return nil
}
