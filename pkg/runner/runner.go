package runner

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdfence/pkg/config"
	"github.com/yaklabco/mdfence/pkg/document"
	"github.com/yaklabco/mdfence/pkg/repair"
	"github.com/yaklabco/mdfence/pkg/rules"
)

// Runner orchestrates discovery, loading, merging and encoding.
type Runner struct {
	// Parser parses rule blocks. Nil means rules.StrictParser.
	Parser rules.Parser

	// Sink is told about every quarantined block. May be nil.
	Sink rules.Sink

	// Repairer fixes indentation on the text strategy. Nil means repair.Heuristic.
	Repairer repair.Repairer
}

// New creates a Runner reporting quarantined blocks to sink.
func New(sink rules.Sink) *Runner {
	return &Runner{Sink: sink}
}

// Run discovers syntax files under opts.Paths, loads their rules sections
// and merges them with the configured strategy. Per-file and per-language
// problems are recorded in the Result; errors are returned only for failed
// discovery, cancellation or encoding.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	sections, skipped, err := Load(ctx, files, opts.effectiveAliases())
	if err != nil {
		return nil, err
	}

	inputs := make([]rules.Input, 0, len(sections))
	for _, section := range sections {
		inputs = append(inputs, rules.InputFromSection(section))
	}

	result, err := r.Merge(ctx, inputs, opts)
	if err != nil {
		return result, err
	}

	result.Files = files
	result.Skipped = skipped
	result.accumulate()

	return result, nil
}

// Merge assembles already loaded inputs with the configured strategy and
// encodes the result.
func (r *Runner) Merge(ctx context.Context, inputs []rules.Input, opts Options) (*Result, error) {
	parser := r.Parser
	if parser == nil {
		parser = rules.StrictParser{}
	}

	result := &Result{Strategy: opts.Strategy}
	if result.Strategy == "" {
		result.Strategy = config.StrategyStructural
	}

	switch result.Strategy {
	case config.StrategyStructural:
		doc, outcomes, err := rules.Merge(ctx, inputs, rules.MergeOptions{
			Parser: parser,
			Sink:   r.Sink,
			Jobs:   opts.Jobs,
		})
		result.Outcomes = outcomes
		if err != nil {
			return result, err
		}

		content, err := document.Encode(doc, opts.Header)
		if err != nil {
			return result, fmt.Errorf("encode document: %w", err)
		}
		result.Document = doc
		result.Content = content

	case config.StrategyText:
		body, outcomes, err := rules.MergeText(ctx, inputs, rules.MergeTextOptions{
			Parser:   parser,
			Sink:     r.Sink,
			Repairer: r.Repairer,
		})
		result.Outcomes = outcomes
		if err != nil {
			return result, err
		}
		result.Content = document.EncodeText(opts.Header, body)

	default:
		return nil, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}

	result.accumulate()
	return result, nil
}
