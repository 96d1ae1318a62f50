package rules

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdfence/pkg/langid"
)

// Input is one language's rules section as supplied by the caller.
type Input struct {
	// Language is the canonical language identifier.
	Language string

	// Source is the file the section was read from (informational).
	Source string

	// Text is the raw text following the "rules:" line.
	Text string
}

// InputFromSection converts an extracted Section into an Input.
func InputFromSection(s Section) Input {
	return Input{Language: s.Language, Source: s.Source, Text: s.Text}
}

// MergeOptions configures Merge.
type MergeOptions struct {
	// Parser parses individual blocks. Defaults to StrictParser.
	Parser Parser

	// Sink receives quarantined blocks. May be nil.
	Sink Sink

	// Jobs bounds the number of languages processed concurrently.
	// 0 or negative means runtime.NumCPU().
	Jobs int
}

// Outcome describes what happened to one input.
type Outcome struct {
	Language string
	Source   string

	// Validation holds the per-block results. Nil if the language failed
	// before validation.
	Validation *Validation

	// Err is a *LanguageError when the language was excluded.
	Err error
}

// Merged reports whether the language made it into the document.
func (o Outcome) Merged() bool {
	return o.Err == nil
}

// Merge runs the structural pipeline for every input and returns the merged
// document together with one Outcome per input, in input order. A language
// that fails is excluded and described by its Outcome; it never aborts the
// others. The only error returned is context cancellation.
func Merge(ctx context.Context, inputs []Input, opts MergeOptions) (*MergedDocument, []Outcome, error) {
	outcomes := make([]Outcome, len(inputs))
	sets := make([]*LanguageRuleSet, len(inputs))

	err := forEach(ctx, len(inputs), opts.Jobs, func(i int) {
		set, validation, err := processLanguage(inputs[i], opts)
		outcomes[i] = Outcome{
			Language:   inputs[i].Language,
			Source:     inputs[i].Source,
			Validation: validation,
			Err:        err,
		}
		if err == nil {
			sets[i] = set
		}
	})
	if err != nil {
		return nil, outcomes, err
	}

	builder := NewBuilder()
	for _, set := range sets {
		if set != nil {
			builder.Add(*set)
		}
	}

	return builder.Document(), outcomes, nil
}

// processLanguage validates, assembles and normalizes one language.
func processLanguage(input Input, opts MergeOptions) (set *LanguageRuleSet, validation *Validation, err error) {
	defer func() {
		if r := recover(); r != nil {
			set = nil
			err = &LanguageError{Language: input.Language, Source: input.Source, Err: panicError(r)}
		}
	}()

	validation = Validate(input.Language, Segment(input.Text), opts.Parser, opts.Sink)

	tree := validation.Tree()
	Normalize(tree)

	checked := tree
	if input.Language != langid.Markdown {
		checked = Wrap(input.Language, tree)
		Normalize(checked)
	}
	if violations := Check(checked); len(violations) > 0 {
		return nil, validation, &LanguageError{
			Language: input.Language,
			Source:   input.Source,
			Err:      fmt.Errorf("%w: %s", ErrInvariant, violations[0]),
		}
	}

	return &LanguageRuleSet{
		Language: input.Language,
		Source:   input.Source,
		Rules:    tree,
	}, validation, nil
}

// forEach calls fn for 0..n-1 with at most jobs calls in flight.
func forEach(ctx context.Context, n, jobs int, fn func(i int)) error {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > n {
		jobs = n
	}

	if jobs <= 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("merge cancelled: %w", err)
			}
			fn(i)
		}
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i := range n {
		if err := groupCtx.Err(); err != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("merge cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("merge cancelled: %w", err)
	}
	return nil
}

// panicError converts a recovered value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("unexpected rule shape: %w", err)
	}
	return errors.New("unexpected rule shape: " + fmt.Sprint(r))
}
