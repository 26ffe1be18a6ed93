package text

import (
	"context"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidUTF8 is returned when the content is not valid UTF-8
var ErrInvalidUTF8 = errors.Base("content is not valid UTF-8")

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var defaultInjector = func() *Injector {
	inj, err := NewInjector(DefaultRule())
	if err != nil {
		panic(err)
	}
	return inj
}()

// Transform injects confirm buttons using DefaultRule
func Transform(input string) string {
	return defaultInjector.Transform(input)
}

// Injector implements TextReplacer for a single Rule. It holds no mutable
// state and is safe for concurrent use.
type Injector struct {
	rule    Rule
	pattern *regexp.Regexp
}

// NewInjector validates rule and compiles its button pattern
func NewInjector(rule Rule) (*Injector, error) {
	if err := ValidateRule(rule); err != nil {
		return nil, errors.Errorf("validating rule: %w", err)
	}
	return &Injector{
		rule:    rule,
		pattern: compilePattern(rule),
	}, nil
}

// Rule returns the rule the injector was built with
func (i *Injector) Rule() Rule {
	return i.rule
}

// compilePattern builds the increment button pattern. The opening tag may
// carry any other attributes, but must close before the label.
func compilePattern(rule Rule) *regexp.Regexp {
	return regexp.MustCompile(`<button[^>]*onclick="` +
		regexp.QuoteMeta(rule.TriggerAction) +
		`\('([^']+)', 1\)"[^>]*>` +
		regexp.QuoteMeta(rule.TriggerLabel) +
		`</button>`)
}

// FindMatches returns every increment button in input, left to right
func (i *Injector) FindMatches(input string) []Match {
	locs := i.pattern.FindAllStringSubmatchIndex(input, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{
			Start: loc[0],
			End:   loc[1],
			Text:  input[loc[0]:loc[1]],
			ID:    input[loc[2]:loc[3]],
		})
	}
	return matches
}

// Fragment renders the confirm button appended after the increment button for id
func (i *Injector) Fragment(id string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(i.rule.Indent)
	b.WriteString(`<button class="`)
	b.WriteString(i.rule.ConfirmClass)
	b.WriteString(`" onclick="`)
	b.WriteString(i.rule.ConfirmAction)
	b.WriteString(`(this, '`)
	b.WriteString(id)
	b.WriteString(`')">`)
	b.WriteString(i.rule.ConfirmLabel)
	b.WriteString(`</button>`)
	return b.String()
}

// Transform implements TextReplacer.Transform
func (i *Injector) Transform(input string) string {
	return i.inject(input, i.FindMatches(input))
}

func (i *Injector) inject(input string, matches []Match) string {
	if len(matches) == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input) + len(matches)*len(i.Fragment("")))

	last := 0
	for _, m := range matches {
		b.WriteString(input[last:m.End])
		b.WriteString(i.Fragment(m.ID))
		last = m.End
	}
	b.WriteString(input[last:])

	return b.String()
}

// StripFragments removes the confirm button that directly follows each
// increment button. For any input x, StripFragments(Transform(x)) == x.
func (i *Injector) StripFragments(output string) string {
	matches := i.FindMatches(output)
	if len(matches) == 0 {
		return output
	}

	var b strings.Builder
	b.Grow(len(output))

	last := 0
	for _, m := range matches {
		if m.Start < last {
			// the previous fragment swallowed this match
			continue
		}
		b.WriteString(output[last:m.End])
		last = m.End
		if frag := i.Fragment(m.ID); strings.HasPrefix(output[m.End:], frag) {
			last += len(frag)
		}
	}
	b.WriteString(output[last:])

	return b.String()
}

// ReplaceText implements TextReplacer.ReplaceText
func (i *Injector) ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if !utf8.Valid(originalContent) {
		return nil, errors.WithStack(ErrInvalidUTF8)
	}

	input := string(originalContent)
	matches := i.FindMatches(input)

	result := &ReplacementResult{
		WasModified:      len(matches) > 0,
		ReplacementCount: len(matches),
		Matches:          matches,
		OriginalContent:  originalContent,
		ModifiedContent:  originalContent,
	}
	if result.WasModified {
		result.ModifiedContent = []byte(i.inject(input, matches))
	}

	zerolog.Ctx(ctx).Debug().
		Int("matches", len(matches)).
		Int("bytes_in", len(result.OriginalContent)).
		Int("bytes_out", len(result.ModifiedContent)).
		Msg("injected confirm buttons")

	return result, nil
}

// ValidateRule checks that rule can produce a well-formed pattern and fragment
func ValidateRule(rule Rule) error {
	if rule.TriggerAction == "" {
		return errors.New("trigger action is required")
	}
	if rule.TriggerLabel == "" {
		return errors.New("trigger label is required")
	}
	if rule.ConfirmAction == "" {
		return errors.New("confirm action is required")
	}
	if !jsIdentifier.MatchString(rule.ConfirmAction) {
		return errors.Errorf("confirm action %q is not a valid identifier", rule.ConfirmAction)
	}
	if rule.ConfirmLabel == "" {
		return errors.New("confirm label is required")
	}
	if strings.ContainsAny(rule.ConfirmLabel, `"<>`) {
		return errors.Errorf("confirm label %q must not contain quotes or markup", rule.ConfirmLabel)
	}
	if rule.ConfirmClass == "" {
		return errors.New("confirm class is required")
	}
	if strings.ContainsAny(rule.ConfirmClass, `"<>`) {
		return errors.Errorf("confirm class %q must not contain quotes or markup", rule.ConfirmClass)
	}
	if strings.TrimSpace(rule.Indent) != "" {
		return errors.New("indent must only contain whitespace")
	}
	return nil
}
