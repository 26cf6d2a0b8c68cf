package summary

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	disallowedRe   = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]+`)
	domainPrefixes = map[Domain]string{
		DomainAcademic:  "This academic analysis reveals that ",
		DomainLegal:     "From a legal perspective, ",
		DomainMedical:   "The medical findings indicate that ",
		DomainResearch:  "The research demonstrates that ",
		DomainCorporate: "The business implications suggest that ",
	}
)

// CleanText collapses whitespace and strips characters other than word
// characters, whitespace and basic punctuation.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = disallowedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func adaptToDomain(text string, domain Domain) string {
	return domainPrefixes[domain] + text
}

func formatSummary(text string, format Format) string {
	switch format {
	case FormatBullet:
		return bulletize(text)
	case FormatDetailed:
		return detailed(text)
	default:
		return text
	}
}

func bulletize(text string) string {
	var lines []string
	for _, sentence := range sentenceEndRe.Split(text, -1) {
		if s := strings.TrimSpace(sentence); s != "" {
			lines = append(lines, "• "+s)
		}
	}
	return strings.Join(lines, "\n")
}

func detailed(text string) string {
	parts := strings.Split(text, ".")
	first := strings.TrimSpace(parts[0])
	second := ""
	if len(parts) > 1 {
		second = strings.TrimSpace(parts[1])
	}

	return strings.TrimSpace(fmt.Sprintf(`Key Points:
%s

Analysis:
The text provides comprehensive information about the topic, highlighting several important aspects.

Main Themes:
• %s
• %s`, text, first, second))
}
