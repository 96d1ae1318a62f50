package runner

import (
	"github.com/yaklabco/mdfence/pkg/config"
	"github.com/yaklabco/mdfence/pkg/rules"
)

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of syntax files found.
	FilesDiscovered int

	// FilesSkipped is the number of files without a usable rules section.
	FilesSkipped int

	// LanguagesMerged is the number of languages present in the output.
	LanguagesMerged int

	// LanguagesFailed is the number of languages excluded after a failure.
	LanguagesFailed int

	// BlocksParsed is the number of rule blocks that parsed.
	BlocksParsed int

	// BlocksQuarantined is the number of rule blocks commented out.
	BlocksQuarantined int
}

// Result is the outcome of a run.
type Result struct {
	// Strategy is the assembly strategy that produced Content.
	Strategy config.Strategy

	// Content is the encoded syntax file.
	Content []byte

	// Document is the merged tree. Nil for the text strategy.
	Document *rules.MergedDocument

	// Files lists the discovered source files in merge order.
	Files []string

	// Outcomes holds one entry per loaded language, in merge order.
	Outcomes []rules.Outcome

	// Skipped lists files that contributed nothing.
	Skipped []SkippedFile

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any language was excluded.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.LanguagesFailed > 0
}

// HasQuarantined reports whether any block was commented out.
func (r *Result) HasQuarantined() bool {
	if r == nil {
		return false
	}
	return r.Stats.BlocksQuarantined > 0
}

// Failures returns the outcomes of excluded languages.
func (r *Result) Failures() []rules.Outcome {
	var out []rules.Outcome
	for _, o := range r.Outcomes {
		if !o.Merged() {
			out = append(out, o)
		}
	}
	return out
}

// accumulate recomputes Stats from the other fields.
func (r *Result) accumulate() {
	r.Stats = Stats{
		FilesDiscovered: len(r.Files),
		FilesSkipped:    len(r.Skipped),
	}

	for _, outcome := range r.Outcomes {
		if outcome.Merged() {
			r.Stats.LanguagesMerged++
		} else {
			r.Stats.LanguagesFailed++
		}

		if outcome.Validation != nil {
			r.Stats.BlocksParsed += len(outcome.Validation.Parsed())
			r.Stats.BlocksQuarantined += len(outcome.Validation.Quarantined())
		}
	}
}
