package text

import (
	"context"
	"io"
	"strings"
)

// Defaults reproduce the confirm button the storefront templates expect.
const (
	DefaultTriggerAction = "updateQty"
	DefaultTriggerLabel  = "+"
	DefaultConfirmAction = "confirmSingleItem"
	DefaultConfirmLabel  = "确认"
	DefaultConfirmClass  = "ml-1 px-2 py-1 bg-green-50 text-green-600 text-[10px] font-bold rounded border border-green-100 hover:bg-green-100 transition-colors"

	// DefaultIndentWidth is the number of spaces placed before each confirm button
	DefaultIndentWidth = 36
)

// Rule describes which increment buttons are matched and how the confirm
// button appended after each of them is rendered
type Rule struct {
	// TriggerAction is the onclick function of the increment button
	TriggerAction string

	// TriggerLabel is the visible text of the increment button
	TriggerLabel string

	// ConfirmAction is the onclick function of the generated button, called as ACTION(this, 'ID')
	ConfirmAction string

	// ConfirmLabel is the visible text of the generated button
	ConfirmLabel string

	// ConfirmClass is the class attribute of the generated button
	ConfirmClass string

	// Indent is written between the newline and the generated button
	Indent string
}

// DefaultRule returns the rule used when no config file is given
func DefaultRule() Rule {
	return Rule{
		TriggerAction: DefaultTriggerAction,
		TriggerLabel:  DefaultTriggerLabel,
		ConfirmAction: DefaultConfirmAction,
		ConfirmLabel:  DefaultConfirmLabel,
		ConfirmClass:  DefaultConfirmClass,
		Indent:        strings.Repeat(" ", DefaultIndentWidth),
	}
}

// Match is one increment button found in the input
type Match struct {
	// Start and End are the byte offsets of the button markup in the input
	Start int
	End   int

	// Text is the full button markup
	Text string

	// ID is the item identifier captured from the onclick attribute
	ID string
}

// ReplacementResult contains the results of a confirm button injection
type ReplacementResult struct {
	// WasModified indicates if any confirm buttons were added
	WasModified bool

	// ReplacementCount is the number of confirm buttons added
	ReplacementCount int

	// Matches are the increment buttons found, in input order
	Matches []Match

	// OriginalContent is the content before injection
	OriginalContent []byte

	// ModifiedContent is the content after injection
	ModifiedContent []byte
}

// TextReplacer defines the interface for confirm button injection
type TextReplacer interface {
	// ReplaceText reads all of content and injects a confirm button after every match
	ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error)

	// Transform injects confirm buttons into input and returns the new text
	Transform(input string) string
}
