package intercept

import "strings"

// Rule routes one module-name prefix to a setup, or marks it ignored.
type Rule struct {
	// Prefix is a dot-delimited module name or name prefix
	Prefix string
	// Setup names the target setup; unused when Ignore is set
	Setup string
	// Ignore drops records from matching modules
	Ignore bool
}

// Rules is an immutable rule set. Build a new one to reconfigure.
type Rules struct {
	rules []Rule
}

// NewRules creates a rule set from a copy of the given rules.
func NewRules(rules []Rule) *Rules {
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Rules{rules: cp}
}

// Match resolves a logger name against the rules. It returns the target
// setup of the longest matching allow prefix; denied is set when the
// winning match is an ignore rule. At equal prefix length, deny takes
// precedence over allow.
func (r *Rules) Match(name string) (setup string, matched, denied bool) {
	bestLen := -1
	var best Rule
	for _, rule := range r.rules {
		if !prefixMatch(name, rule.Prefix) {
			continue
		}
		n := len(rule.Prefix)
		if n > bestLen || (n == bestLen && rule.Ignore && !best.Ignore) {
			bestLen = n
			best = rule
		}
	}
	if bestLen < 0 {
		return "", false, false
	}
	if best.Ignore {
		return "", true, true
	}
	return best.Setup, true, false
}

// prefixMatch reports whether prefix matches name on whole dot segments.
func prefixMatch(name, prefix string) bool {
	if prefix == "" {
		return false
	}
	if name == prefix {
		return true
	}
	return len(name) > len(prefix) &&
		strings.HasPrefix(name, prefix) &&
		name[len(prefix)] == '.'
}
