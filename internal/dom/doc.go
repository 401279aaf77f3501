// Package dom binds a collector.Collector to the Letter Boxed page in a
// browser when built for js/wasm.
package dom

// Element ids and classes the page must provide.
const (
	SolveButtonID   = "solveBtn"
	ClearButtonID   = "clearBtn"
	ResultsID       = "results"
	SolutionsListID = "solutionsList"
	LetterClass     = "letter-input"

	// HiddenClass hides the results container.
	HiddenClass = "d-none"
)

// SpinnerHTML is placed before the busy label on the submit button.
const SpinnerHTML = `<span class="spinner-border spinner-border-sm" role="status" aria-hidden="true"></span> `
