package messagetemplate

import "regexp"

// TemplateType is the category tag a template is looked up by.
type TemplateType string

const (
	TypeWelcome        TemplateType = "welcome"
	TypeLocationResult TemplateType = "location_result"
)

var templateTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,49}$`)

func (t TemplateType) String() string {
	return string(t)
}

// IsValid reports whether t is a lowercase slug. Types are open-ended so any
// well-formed slug is accepted, not only the built-in ones.
func (t TemplateType) IsValid() bool {
	return templateTypePattern.MatchString(string(t))
}
