package models

// BindingSet groups validation bindings by rule name, keeping rule order stable
type BindingSet struct {
	order  []string
	byRule map[string][]ValidationBinding
}

// NewBindingSet creates an empty binding set
func NewBindingSet() *BindingSet {
	return &BindingSet{
		byRule: make(map[string][]ValidationBinding),
	}
}

// Add records a binding, registering the rule on first use
func (s *BindingSet) Add(binding ValidationBinding) {
	if _, exists := s.byRule[binding.Rule]; !exists {
		s.order = append(s.order, binding.Rule)
	}
	s.byRule[binding.Rule] = append(s.byRule[binding.Rule], binding)
}

// Rules returns rule names that have at least one binding, in insertion order
func (s *BindingSet) Rules() []string {
	rules := make([]string, len(s.order))
	copy(rules, s.order)
	return rules
}

// All returns every binding grouped by rule order
func (s *BindingSet) All() []ValidationBinding {
	var all []ValidationBinding
	for _, rule := range s.order {
		all = append(all, s.byRule[rule]...)
	}
	return all
}

// RulesFor returns the rules bound to the named field, in rule order
func (s *BindingSet) RulesFor(fieldName string) []string {
	var rules []string
	for _, rule := range s.order {
		for _, b := range s.byRule[rule] {
			if b.Field.Name == fieldName {
				rules = append(rules, rule)
				break
			}
		}
	}
	return rules
}

// Len returns the total number of bindings
func (s *BindingSet) Len() int {
	total := 0
	for _, bindings := range s.byRule {
		total += len(bindings)
	}
	return total
}
