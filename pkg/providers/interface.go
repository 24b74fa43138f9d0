package providers

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/classtrack/gradescan/pkg/sheet"
)

// Config represents the configuration for a provider call.
type Config struct {
	Provider    string
	Model       string
	Prompt      string
	Temperature float64
	Timeout     time.Duration
}

// Provider is the surface every OCR provider shares. A provider additionally
// implements VisionProvider or TextProvider (or both) depending on the data
// shape it can return.
type Provider interface {
	// Name returns the provider's name.
	Name() string
	// ValidateConfig validates the provider-specific configuration.
	ValidateConfig(config Config) error
}

// VisionProvider returns structured text fragments with bounding geometry,
// the input of the row-clustering path.
type VisionProvider interface {
	Provider
	// DetectText runs OCR on an image and returns one TextObject per
	// recognized fragment.
	DetectText(ctx context.Context, config Config, imagePath, imageBase64 string) ([]sheet.TextObject, error)
}

// TextProvider returns one free-text description of the sheet, the input of
// the delimited-text parsing path.
type TextProvider interface {
	Provider
	// DescribeSheet asks a multimodal model to read the sheet and return
	// the delimited row/score/status table.
	DescribeSheet(ctx context.Context, config Config, imagePath, imageBase64 string) (string, error)
}

// DefaultSheetPrompt builds the instruction sent to text providers. The
// shape of the requested table is what the free-text parser expects.
func DefaultSheetPrompt(scale []string) string {
	return `I have a grade sheet image. For each student row in order from top to bottom:
1. Identify which score (` + strings.Join(scale, ", ") + `) is marked/filled/blacked out
2. Check if M (Missing), A (Absent), or E (Exempt) cells are marked/filled/blacked out

Return a CSV with these columns:
Row,Score,Status

Return ONLY the CSV data. No explanations, no markdown, no code blocks.`
}

// CleanResponseProvider is an optional interface that providers can
// implement to provide custom response cleaning logic.
type CleanResponseProvider interface {
	CleanResponse(response string) string
}

// CleanResponse provides general response cleaning that works for most AI
// providers. Models tend to wrap the table in prose or code fences despite
// the prompt.
func CleanResponse(response string) string {
	response = strings.TrimSpace(response)

	prefixPatterns := []string{
		`(?i)^(certainly!?\s*)?here'?s?\s+(is\s+)?(the\s+)?(csv|table|data)( you requested)?:?\s*`,
		`(?i)^(the\s+)?grade\s+sheet\s+(shows|contains):?\s*`,
		`(?i)^(the\s+)?(csv|table)\s+(data\s+)?(is|follows):?\s*`,
	}

	for _, pattern := range prefixPatterns {
		re := regexp.MustCompile(pattern)
		response = re.ReplaceAllString(response, "")
		response = strings.TrimSpace(response)
	}

	response = strings.Trim(response, `"'`)

	if strings.HasPrefix(response, "```") && strings.HasSuffix(response, "```") {
		response = strings.TrimPrefix(response, "```csv")
		response = strings.TrimPrefix(response, "```")
		response = strings.TrimSuffix(response, "```")
		response = strings.TrimSpace(response)
	}

	return response
}

// ProcessResponse cleans a response using the provider's custom cleaner if
// available, otherwise uses the general CleanResponse function.
func ProcessResponse(provider Provider, response string) string {
	if cleaner, ok := provider.(CleanResponseProvider); ok {
		return cleaner.CleanResponse(response)
	}
	return CleanResponse(response)
}

// TruncateBody truncates a response body to a maximum length for error
// messages. This helps keep error logs readable while still providing
// context. Default maxLen is 500 if not specified.
func TruncateBody(body []byte, maxLen ...int) string {
	limit := 500
	if len(maxLen) > 0 && maxLen[0] > 0 {
		limit = maxLen[0]
	}
	s := string(body)
	if len(s) > limit {
		return s[:limit] + "... (truncated)"
	}
	return s
}
