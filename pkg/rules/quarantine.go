package rules

import "strings"

// Quarantine markers. The header line is followed by the error message.
const (
	QuarantineHeader = "# REMOVED BLOCK (formatting error): "
	QuarantineFooter = "# END REMOVED BLOCK"
)

// Quarantine turns block text into inert comment lines framed by a header
// naming the cause and a footer. Every original line is prefixed with "# "
// (empty lines with "#") so Restore can recover it exactly.
func Quarantine(text string, cause error) string {
	body, trailing := strings.CutSuffix(text, "\n")

	var sb strings.Builder
	sb.WriteString(QuarantineHeader)
	sb.WriteString(oneLine(cause))
	sb.WriteByte('\n')

	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			sb.WriteString("#\n")
			continue
		}
		sb.WriteString("# ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(QuarantineFooter)
	if trailing {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Restore returns the original text of a quarantined block. Text that does
// not start with the quarantine header is returned unchanged.
func Restore(quarantined string) string {
	if !strings.HasPrefix(quarantined, QuarantineHeader) {
		return quarantined
	}

	body, trailing := strings.CutSuffix(quarantined, "\n")
	lines := strings.Split(body, "\n")
	if len(lines) < 2 || lines[len(lines)-1] != QuarantineFooter {
		return quarantined
	}

	restored := make([]string, 0, len(lines)-2)
	for _, line := range lines[1 : len(lines)-1] {
		if line == "#" {
			restored = append(restored, "")
			continue
		}
		restored = append(restored, strings.TrimPrefix(line, "# "))
	}

	out := strings.Join(restored, "\n")
	if trailing {
		out += "\n"
	}
	return out
}

// oneLine collapses an error message onto a single line.
func oneLine(err error) string {
	if err == nil {
		return "unknown error"
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
