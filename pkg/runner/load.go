package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdfence/pkg/fsutil"
	"github.com/yaklabco/mdfence/pkg/langid"
	"github.com/yaklabco/mdfence/pkg/rules"
)

// SkippedFile is a source that contributed nothing to the merge.
type SkippedFile struct {
	Path     string
	Language string
	Reason   error
}

// Load reads each path, derives its canonical language from the file name
// and extracts its rules section. Files without a section, or that cannot be
// read, are returned as skipped; only cancellation aborts the load.
func Load(ctx context.Context, paths []string, aliases []langid.Alias) ([]rules.Section, []SkippedFile, error) {
	sections := make([]rules.Section, 0, len(paths))
	var skipped []SkippedFile

	for _, path := range paths {
		language := langid.Canonicalize(langid.FromFilename(path), aliases)

		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, nil, fmt.Errorf("load cancelled: %w", ctxErr)
			}
			skipped = append(skipped, SkippedFile{Path: path, Language: language, Reason: err})
			continue
		}

		section, err := rules.ExtractSection(language, path, string(content))
		if err != nil {
			skipped = append(skipped, SkippedFile{Path: path, Language: language, Reason: err})
			continue
		}

		sections = append(sections, section)
	}

	return sections, skipped, nil
}

// IsMissingSection reports whether a skip was caused by a file without a
// rules section rather than an I/O failure.
func (s SkippedFile) IsMissingSection() bool {
	return errors.Is(s.Reason, rules.ErrSectionNotFound)
}
