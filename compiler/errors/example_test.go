package errors_test

import (
	"fmt"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
)

// ExampleNewCondition shows raising a runtime resource error and
// rendering it for terminal output without color, as a CLI running
// with --no-color would.
func ExampleNewCondition() {
	err := werrors.NewCondition(
		werrors.CondFileNotFound,
		`no such file: "report.txt"`,
		werrors.SourceLocation{File: "main.wfl", Line: 4, Column: 10},
	)
	fmt.Print(err.FormatForTerminal(true))
	// Output:
	// ERROR: resource error
	//   no such file: "report.txt"
	//   --> main.wfl:4:10
}
