package errors

import "strings"

// suggestFix generates an auto-fix suggestion based on the error's condition.
func suggestFix(err WFLError) *FixSuggestion {
	switch err.Condition {
	case CondDivisionByZero:
		return suggestGuardDivision(err)
	case CondIndexOutOfBounds:
		return suggestBoundsCheck(err)
	case CondPopFromEmpty:
		return suggestEmptinessCheck(err)
	case CondKeyNotFound:
		return suggestContainsCheck(err)
	case CondTypeMismatch:
		return suggestConversion(err)
	case CondFileNotFound:
		return suggestCheckPath(err)
	case CondInvalidRange:
		return suggestRangeOrder(err)
	}

	if err.Kind == Syntax {
		return suggestSyntaxFix(err)
	}
	return nil
}

func suggestGuardDivision(err WFLError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Guard the division with a check that the divisor isn't 0",
		OldCode:     "divide a by b",
		NewCode:     "if b is not 0:\n    divide a by b\nend if",
		Confidence:  0.6,
	}
}

func suggestBoundsCheck(err WFLError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Check the list's length before indexing it",
		NewCode:     "if index is less than length of the_list:\n    ...\nend if",
		Confidence:  0.6,
	}
}

func suggestEmptinessCheck(err WFLError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Check the list isn't empty before popping from it",
		NewCode:     "if length of the_list is greater than 0:\n    pop from the_list\nend if",
		Confidence:  0.6,
	}
}

func suggestContainsCheck(err WFLError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Check the map contains the key before reading it",
		NewCode:     "if the_map contains \"key\":\n    ...\nend if",
		Confidence:  0.55,
	}
}

func suggestConversion(err WFLError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Convert the value to the expected type before using it",
		NewCode:     "convert value to number",
		Confidence:  0.5,
	}
}

func suggestCheckPath(err WFLError) *FixSuggestion {
	return &FixSuggestion{
		Description: "Confirm the path is correct and the file exists, or handle the error",
		NewCode:     "try:\n    open file at \"path\" for reading as f\nwhen file not found:\n    ...\nend try",
		Confidence:  0.65,
	}
}

func suggestRangeOrder(err WFLError) *FixSuggestion {
	return &FixSuggestion{
		Description: "A count loop's end value must not be before its start when counting up",
		Confidence:  0.5,
	}
}

// suggestSyntaxFix handles the small set of syntax mistakes common
// enough to warrant a canned suggestion; anything else is left
// unannotated rather than guessed at.
func suggestSyntaxFix(err WFLError) *FixSuggestion {
	msg := strings.ToLower(err.Message)
	switch {
	case strings.Contains(msg, "unterminated string"):
		return &FixSuggestion{
			Description: "Close the string literal with a matching quote",
			Confidence:  0.7,
		}
	case strings.Contains(msg, "expected end") || strings.Contains(msg, "missing end"):
		return &FixSuggestion{
			Description: "Every block (if/loop/action/try) needs a matching end",
			Confidence:  0.6,
		}
	default:
		return nil
	}
}
