package errors

import "encoding/json"

// JSONOutput represents the JSON structure for error output.
type JSONOutput struct {
	Status   string     `json:"status"`
	Errors   []WFLError `json:"errors"`
	Warnings []WFLError `json:"warnings"`
	Summary  Summary    `json:"summary"`
}

// Summary contains error and warning counts.
type Summary struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	TotalCount   int `json:"total_count"`
}

// FormatAsJSON formats a single WFLError as indented JSON.
func (e WFLError) FormatAsJSON() (string, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitBySeverity(errs []WFLError) (errorList, warningList []WFLError) {
	for _, err := range errs {
		if err.IsError() {
			errorList = append(errorList, err)
		} else if err.IsWarning() {
			warningList = append(warningList, err)
		}
	}
	return
}

func buildJSONOutput(errs []WFLError) JSONOutput {
	errorList, warningList := splitBySeverity(errs)

	status := "success"
	if len(errorList) > 0 {
		status = "error"
	} else if len(warningList) > 0 {
		status = "warning"
	}

	return JSONOutput{
		Status:   status,
		Errors:   errorList,
		Warnings: warningList,
		Summary: Summary{
			ErrorCount:   len(errorList),
			WarningCount: len(warningList),
			TotalCount:   len(errs),
		},
	}
}

// FormatErrorsAsJSON formats multiple errors as indented JSON.
func FormatErrorsAsJSON(errs []WFLError) (string, error) {
	data, err := json.MarshalIndent(buildJSONOutput(errs), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatAsJSONCompact formats a single WFLError as compact JSON.
func (e WFLError) FormatAsJSONCompact() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatErrorsAsJSONCompact formats multiple errors as compact JSON.
func FormatErrorsAsJSONCompact(errs []WFLError) (string, error) {
	data, err := json.Marshal(buildJSONOutput(errs))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
