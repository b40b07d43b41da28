package dao

// Parameter narrows List results.
type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// Matches reports whether actual equals the parameter value, or is one of its values.
func (p *Parameter) Matches(actual string) bool {
	switch expected := p.Value.(type) {
	case string:
		return expected == actual
	case []string:
		for _, candidate := range expected {
			if candidate == actual {
				return true
			}
		}
		return false
	}
	return false
}
