package prefs

import (
	"strconv"
	"strings"
)

// Choice is one selectable value of an enum item.
type Choice struct {
	Name      string
	Label     string
	ToolTip   string
	WhatsThis string
}

// ItemEnum holds an index into a fixed list of choices. The persisted form
// is the choice name, so stored files stay readable; a raw value that names
// no choice resolves to the default rather than failing the read.
type ItemEnum struct {
	GenericItem[int32]

	choices []Choice
	aux     map[string]string
}

// NewEnum creates an enum item bound to ref, an index into choices.
func NewEnum(group, key string, ref *int32, def int32, choices []Choice) *ItemEnum {
	it := &ItemEnum{choices: choices, aux: make(map[string]string)}
	c := codec[int32]{
		encode: func(v int32) string {
			if v >= 0 && int(v) < len(it.choices) {
				return it.choices[v].Name
			}
			return strconv.FormatInt(int64(v), 10)
		},
		decode: func(raw string) (int32, error) {
			for i, ch := range it.choices {
				if strings.EqualFold(ch.Name, raw) {
					return int32(i), nil
				}
			}
			v, err := strconv.ParseInt(raw, 10, 32)
			return int32(v), err
		},
	}
	it.GenericItem = *newGenericItem(group, key, key, ref, def,
		c, func(a, b int32) bool { return a == b }, convInt32)
	return it
}

// Choices returns the choice list.
func (it *ItemEnum) Choices() []Choice { return it.choices }

// ValueForChoice returns the auxiliary value attached to the named choice,
// or the choice name itself when none was set.
func (it *ItemEnum) ValueForChoice(name string) string {
	if v, ok := it.aux[strings.ToLower(name)]; ok {
		return v
	}
	return name
}

// SetValueForChoice attaches an auxiliary value to the named choice.
func (it *ItemEnum) SetValueForChoice(name, value string) {
	it.aux[strings.ToLower(name)] = value
}
