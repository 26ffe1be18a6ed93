package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/qtyconfirm/pkg/text"
)

func ExampleInjector_ReplaceText() {
	// Build an injector with a compact confirm button
	rule := text.DefaultRule()
	rule.ConfirmClass = "confirm"
	rule.Indent = "  "

	injector, err := text.NewInjector(rule)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	content := strings.NewReader(`<button onclick="updateQty('sku-42', 1)">+</button>`)

	result, err := injector.ReplaceText(context.Background(), content)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("First ID: %s\n", result.Matches[0].ID)

	// Output:
	// <button onclick="updateQty('sku-42', 1)">+</button>
	//   <button class="confirm" onclick="confirmSingleItem(this, 'sku-42')">确认</button>
	// Changes: 1
	// First ID: sku-42
}

func ExampleValidateRule() {
	rule := text.DefaultRule()
	rule.ConfirmAction = ""

	err := text.ValidateRule(rule)
	fmt.Printf("Validation error: %v\n", err)

	// Output:
	// Validation error: confirm action is required
}
