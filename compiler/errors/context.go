package errors

import (
	"os"
	"strings"
)

// EnrichError adds source context and an auto-fix suggestion (when one
// applies) to an error.
func EnrichError(err WFLError, sourceContent string) WFLError {
	err = err.WithContext(extractSourceContext(err.Location, sourceContent))
	if suggestion := suggestFix(err); suggestion != nil {
		err = err.WithSuggestion(*suggestion)
	}
	return err
}

// extractSourceContext extracts 3 lines before, the error line, and 3 lines after.
func extractSourceContext(location SourceLocation, sourceContent string) ErrorContext {
	lines := strings.Split(sourceContent, "\n")

	if location.Line < 1 || location.Line > len(lines) {
		return ErrorContext{}
	}

	errorLineIndex := location.Line - 1
	startLine := max(0, errorLineIndex-3)
	endLine := min(len(lines), errorLineIndex+4)

	contextLines := make([]string, 0, endLine-startLine)
	for i := startLine; i < endLine; i++ {
		contextLines = append(contextLines, lines[i])
	}

	errorLineInContext := errorLineIndex - startLine

	start := location.Column - 1
	end := start + location.Length
	if location.Length == 0 {
		end = start + 1
	}

	return ErrorContext{
		SourceLines: contextLines,
		Highlight: Highlight{
			Line:  errorLineInContext,
			Start: start,
			End:   end,
		},
	}
}

// ReadSourceFile reads a source file and returns its contents.
func ReadSourceFile(filepath string) (string, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// EnrichErrorFromFile reads the source file named in err.Location and enriches the error.
func EnrichErrorFromFile(err WFLError) WFLError {
	content, readErr := ReadSourceFile(err.Location.File)
	if readErr != nil {
		return err
	}
	return EnrichError(err, content)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
