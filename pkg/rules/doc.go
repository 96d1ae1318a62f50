// Package rules turns the "rules:" sections of per-language micro syntax
// files into one merged rule tree for the Markdown filetype.
//
// The pipeline for one language is:
//
//	ExtractSection -> Segment -> Validate -> Normalize -> Builder.Add
//
// Segment splits a section into top-level list-item blocks. Validate parses
// every block on its own with a strict Parser; blocks that fail are
// quarantined as comment text and reported to a Sink instead of failing the
// file. Normalize enforces that every nested mapping carries a "rules" list,
// which micro requires for region rules. Builder wraps each language in a
// "comment" region keyed by its fence markers and splices the markdown
// rules into the top level.
//
// Merge runs the pipeline for many languages, in parallel if asked to, and
// appends the results in input order.
package rules
