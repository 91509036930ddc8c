package text

import "strings"

// Rule is one literal substitution
type Rule struct {
	From string
	To   string
}

// Result holds the rewritten text and how many occurrences were replaced
type Result struct {
	Text  string
	Count int
}

// Modified reports whether any rule matched
func (r Result) Modified() bool {
	return r.Count > 0
}

// 🔄 Replace applies rules in order, each one to the output of the previous.
// Matches are literal and non-overlapping, scanned left to right. Rules with
// an empty From are skipped.
func Replace(s string, rules ...Rule) Result {
	res := Result{Text: s}
	for _, rule := range rules {
		if rule.From == "" {
			continue
		}
		n := strings.Count(res.Text, rule.From)
		if n == 0 {
			continue
		}
		res.Count += n
		res.Text = strings.ReplaceAll(res.Text, rule.From, rule.To)
	}
	return res
}
