package sheet

import "strings"

// ParseFreeText converts a delimited-text grade description from an
// alternate OCR provider into the same ProcessedGrade list shape the vision
// path produces, bypassing clustering and column inference entirely.
//
// The expected response is a comma-delimited table of row index, score, and
// status, optionally preceded by a header line and markdown code fences.
// Leading lines before a recognizable header are skipped. Data lines pair
// positionally with the roster, capped at roster length. A malformed line
// with fewer than 2 fields contributes nothing to its positional student,
// who still appears in the output with empty fields. A response with fewer
// lines than the roster behaves the same as a sheet with fewer rows than
// students.
func ParseFreeText(response string, roster []RosterEntry) []ProcessedGrade {
	lines := splitDataLines(response)

	grades := make([]ProcessedGrade, 0, len(roster))
	for i := 0; i < len(lines) && i < len(roster); i++ {
		grade := ProcessedGrade{Status: []string{}}

		fields := strings.Split(lines[i], ",")
		if len(fields) >= 2 {
			// Field 0 is the row label; unused.
			grade.Score = strings.TrimSpace(fields[1])
			if len(fields) >= 3 {
				grade.Status = ParseStatusText(fields[2])
			}
		}

		grades = append(grades, grade)
	}

	return CompleteFromRoster(grades, roster)
}

// splitDataLines strips code fences, drops blank lines, and skips everything
// up to and including the header line. A header is any line that mentions
// "row" case-insensitively and carries the delimiter. Without a header the
// whole response is treated as data.
func splitDataLines(response string) []string {
	response = strings.ReplaceAll(response, "```csv", "")
	response = strings.ReplaceAll(response, "```", "")

	var lines []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "row") && strings.Contains(line, ",") {
			return lines[i+1:]
		}
	}

	return lines
}

// ParseStatusText matches free-form status text against the known status
// options. Full keywords match as case-insensitive substrings; the
// single-letter abbreviations M/A/E only match as standalone tokens, so
// "Absent" does not also read as Exempt. Multiple matches are all kept.
func ParseStatusText(text string) []string {
	upper := strings.ToUpper(strings.TrimSpace(text))
	if upper == "" {
		return []string{}
	}

	tokens := strings.FieldsFunc(upper, func(r rune) bool {
		return r == ' ' || r == ';' || r == '/' || r == '+' || r == '&'
	})
	hasToken := func(letter string) bool {
		for _, tok := range tokens {
			if tok == letter {
				return true
			}
		}
		return false
	}

	status := []string{}
	for _, option := range DefaultStatusOptions {
		keyword := strings.ToUpper(option)
		if strings.Contains(upper, keyword) || hasToken(keyword[:1]) {
			status = append(status, option)
		}
	}

	return status
}
