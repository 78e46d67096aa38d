package plugins

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const mathPluginName = "math"

const mathHelp = `I can help with calculations! Try asking something like "calculate 15 * 3" or "what is 100 - 25?"`

var (
	ErrInvalidCharacters = errors.New("invalid characters in expression")
	ErrInvalidFormat     = errors.New("invalid expression format")
)

var (
	// An explicit arithmetic chain wins over phrase-guarded captures so the
	// whole expression is picked up, not just its first pair.
	exprChainRe = regexp.MustCompile(`\d+(?:\.\d+)?(?:\s*[+\-*/]\s*\d+(?:\.\d+)?)+`)

	exprPhraseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)calculate\s+([^?]+)`),
		regexp.MustCompile(`(?i)what.*?is\s+([^?]+)`),
		regexp.MustCompile(`(?i)solve\s+([^?]+)`),
	}

	validExprRe   = regexp.MustCompile(`^[0-9+\-*/.]+$`)
	mathDigitRe   = regexp.MustCompile(`\d`)
	mathOpRe      = regexp.MustCompile(`[+\-*/=]`)
	mathPhraseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)calculate\s+[\d\s+\-*/().]+`),
		regexp.MustCompile(`(?i)what.*?is\s+[\d\s+\-*/().]+`),
		regexp.MustCompile(`(?i)solve\s+[\d\s+\-*/().]+`),
		regexp.MustCompile(`\d+\s*[+\-*/]\s*\d+`),
	}
)

var mathKeywords = []string{"calculate", "compute", "solve", "math", "evaluate"}

func mathIntent(message string) bool {
	for _, re := range mathPhraseRes {
		if re.MatchString(message) {
			return true
		}
	}
	if containsAny(message, mathKeywords) {
		return true
	}
	return mathDigitRe.MatchString(message) && mathOpRe.MatchString(message)
}

// Math evaluates arithmetic found in natural language. Evaluation is strictly
// left to right with no operator precedence: "2 + 3 * 4" is (2+3)*4 = 20.
type Math struct{}

func NewMath() *Math {
	return &Math{}
}

func (m *Math) Name() string { return mathPluginName }

func (m *Math) Description() string {
	return "Evaluate mathematical expressions and solve calculations"
}

func (m *Math) Execute(ctx context.Context, input string) (string, error) {
	expr := findExpression(input)
	if expr == "" {
		// Not an error, just a conversational nudge.
		return mathHelp, nil
	}

	result, err := evaluate(expr)
	if err != nil {
		return fmt.Sprintf(`I had trouble with that calculation (%v). Could you try rephrasing it? For example: "calculate 5 + 3" or "what is 12 * 4?"`, err), nil
	}

	formatted := strconv.FormatFloat(result, 'f', -1, 64)
	if strings.ContainsAny(expr, "+-*/") {
		return fmt.Sprintf("%s equals %s", expr, formatted), nil
	}
	return fmt.Sprintf("The answer is %s", formatted), nil
}

// findExpression extracts the first arithmetic expression, preferring an
// explicit operator chain over loose phrase captures.
func findExpression(input string) string {
	if match := exprChainRe.FindString(input); match != "" {
		return strings.TrimSpace(match)
	}
	for _, re := range exprPhraseRes {
		if groups := re.FindStringSubmatch(input); groups != nil {
			return strings.TrimSpace(groups[1])
		}
	}
	return ""
}

// evaluate computes a whitespace-tolerant arithmetic chain left to right.
// Division by zero follows IEEE semantics and yields Inf or NaN.
func evaluate(expr string) (float64, error) {
	clean := strings.Join(strings.Fields(expr), "")
	if !validExprRe.MatchString(clean) {
		return 0, ErrInvalidCharacters
	}

	tokens := tokenize(clean)
	if len(tokens) < 3 || len(tokens)%2 == 0 {
		return 0, ErrInvalidFormat
	}

	result, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidFormat, tokens[0])
	}

	for i := 1; i < len(tokens); i += 2 {
		operand, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidFormat, tokens[i+1])
		}

		switch tokens[i] {
		case "+":
			result += operand
		case "-":
			result -= operand
		case "*":
			result *= operand
		case "/":
			result /= operand
		}
	}
	return result, nil
}

// tokenize splits on operator characters while retaining them, dropping empty
// segments.
func tokenize(expr string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range expr {
		switch r {
		case '+', '-', '*', '/':
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
