package parser

import (
	"fmt"
	"regexp"
	"strings"

	"carscope-api/internal/model"
)

// Placeholders used when every fallback comes up empty.
const (
	DescriptionUnavailable   = "A detailed description is not available for this vehicle at the moment."
	DescriptionUnavailableVI = "Mô tả chưa khả dụng bằng tiếng Việt."
	engineUnavailable        = "No engine details available."
	interiorUnavailable      = "No interior details available."
)

// minDescriptionChars is the floor for a textual description candidate when
// assembling the final record.
const minDescriptionChars = 100

// Block capture for a named Overview section up to the next known header or
// end of text.
var overviewBlockRegex = regexp.MustCompile(
	`(?is)(?:overview|tổng quan):\s*(.+?)\s*(?:\n\s*(?:engine details|chi tiết động cơ|interior & features|nội thất & tính năng|performance|hiệu năng)\s*:|$)`,
)

// longestPlainLine returns the longest line of at least minDescriptionChars
// characters that contains no colon, or "".
func longestPlainLine(raw string) string {
	var best string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= minDescriptionChars && !strings.Contains(line, ":") && len(line) > len(best) {
			best = line
		}
	}
	return best
}

func overviewBlock(raw string) string {
	if m := overviewBlockRegex.FindStringSubmatch(raw); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// generatedDescription synthesizes an overview sentence when the identifying
// figures are all present.
func generatedDescription(f model.ParsedFields) string {
	if f.CarName == "" || f.Year == "" || f.Power == "" || f.TopSpeed == "" {
		return ""
	}
	return fmt.Sprintf(
		"The %s (%s) is a remarkable vehicle known for its performance and features. "+
			"With %s of power and a top speed of %s, it offers an impressive driving experience. "+
			"This model combines advanced technology with sophisticated design, making it a standout in its class.",
		f.CarName, f.Year, f.Power, f.TopSpeed,
	)
}

// fallbackDescription recovers a description when no overview paragraph was
// captured: longest plain line, then a named Overview block, then a
// generated sentence, then the placeholder.
func fallbackDescription(f model.ParsedFields) string {
	if line := longestPlainLine(f.RawText); line != "" {
		return line
	}
	if block := overviewBlock(f.RawText); block != "" {
		return block
	}
	if generated := generatedDescription(f); generated != "" {
		return generated
	}
	return DescriptionUnavailable
}

func fallbackEngineDetail(f model.ParsedFields) string {
	if line := longestPlainLine(f.RawText); line != "" {
		return line
	}
	if f.CarName != "" && f.Power != "" {
		return fmt.Sprintf("The %s is powered by an engine producing %s.", f.CarName, f.Power)
	}
	return engineUnavailable
}

func fallbackInterior(f model.ParsedFields) string {
	if line := longestPlainLine(f.RawText); line != "" {
		return line
	}
	if f.CarName != "" {
		return fmt.Sprintf("The %s offers a well-appointed interior with modern comfort and technology features.", f.CarName)
	}
	return interiorUnavailable
}

// SelectDescription picks the final record description: an explicitly
// supplied candidate wins over the parsed one, both subject to the character
// floor, before falling through the same raw-text/overview/generated/
// placeholder chain used at parse time.
func SelectDescription(explicit string, f model.ParsedFields) string {
	if len(strings.TrimSpace(explicit)) >= minDescriptionChars {
		return strings.TrimSpace(explicit)
	}
	if len(strings.TrimSpace(f.Description)) >= minDescriptionChars {
		return strings.TrimSpace(f.Description)
	}
	return fallbackDescription(f)
}
