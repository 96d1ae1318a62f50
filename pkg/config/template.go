package config

import (
	"bytes"
	"fmt"
	"strconv"
)

// TemplateHeader is written at the top of generated configuration files.
const TemplateHeader = `# mdfence configuration
# See: https://github.com/yaklabco/mdfence
`

// Template returns a commented project configuration populated with cfg's
// values (defaults when cfg is nil).
func Template(cfg *Config) []byte {
	if cfg == nil {
		cfg = NewConfig()
	}

	var buf bytes.Buffer
	buf.WriteString(TemplateHeader)
	buf.WriteByte('\n')

	section(&buf, "Files or directories holding per-language micro syntax files.")
	buf.WriteString("sources:\n")
	for _, src := range cfg.Sources {
		fmt.Fprintf(&buf, "  - %s\n", strconv.Quote(src))
	}

	section(&buf, "Generated syntax file.")
	fmt.Fprintf(&buf, "output: %s\n", strconv.Quote(cfg.Output))

	section(&buf, `Assembly strategy: "structural" (parse and normalize) or "text" (splice repaired text).`)
	fmt.Fprintf(&buf, "strategy: %s\n", cfg.Strategy)

	section(&buf, "Header of the generated file.")
	fmt.Fprintf(&buf, "filetype: %s\n", cfg.Filetype)
	fmt.Fprintf(&buf, "detect_filename: '%s'\n", cfg.DetectFilename)

	section(&buf, "Identifier rewrites. An identifier containing match becomes language; first match wins.")
	buf.WriteString("aliases:\n")
	for _, a := range cfg.Aliases {
		fmt.Fprintf(&buf, "  - match: %s\n    language: %s\n", strconv.Quote(a.Match), strconv.Quote(a.Language))
	}

	section(&buf, "Glob patterns of source files to skip.")
	buf.WriteString("exclude: []\n")

	section(&buf, `Backups of the previous output file ("sidecar" or "none").`)
	fmt.Fprintf(&buf, "backups:\n  enabled: %t\n  mode: %s\n", cfg.Backups.IsEnabled(), cfg.Backups.Mode)

	section(&buf, "Log level: debug, info, warn or error.")
	fmt.Fprintf(&buf, "log_level: %s\n", cfg.LogLevel)

	return buf.Bytes()
}

func section(buf *bytes.Buffer, comment string) {
	buf.WriteString("\n# ")
	buf.WriteString(comment)
	buf.WriteByte('\n')
}
