package prompt

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style is the visual style of a portrait.
type Style string

const (
	StyleRealistic    Style = "realistic"
	StyleArtistic     Style = "artistic"
	StyleProfessional Style = "professional"
	StyleCasual       Style = "casual"
)

// Styles lists the accepted styles.
var Styles = []Style{StyleRealistic, StyleArtistic, StyleProfessional, StyleCasual}

// ParseStyle accepts exactly one of the four known styles. There is no
// fallback; callers reject anything else as a validation error.
func ParseStyle(s string) (Style, bool) {
	switch Style(s) {
	case StyleRealistic, StyleArtistic, StyleProfessional, StyleCasual:
		return Style(s), true
	default:
		return "", false
	}
}

// Lighting returns the lighting phrase for the style, or "" for a style
// outside Styles.
func (s Style) Lighting() string {
	switch s {
	case StyleRealistic:
		return "soft natural lighting, window light, gentle shadows, warm color temperature"
	case StyleArtistic:
		return "dramatic lighting, rim light, creative shadows, artistic mood"
	case StyleProfessional:
		return "studio lighting, key light with fill, corporate headshot lighting, clean and bright"
	case StyleCasual:
		return "natural daylight, outdoor lighting, relaxed atmosphere, golden hour warmth"
	default:
		return ""
	}
}

// Background returns the background phrase for the style, or "" for a
// style outside Styles.
func (s Style) Background() string {
	switch s {
	case StyleRealistic:
		return "neutral blurred background, clean and simple"
	case StyleArtistic:
		return "creative blurred background, artistic bokeh"
	case StyleProfessional:
		return "office environment background blur, professional setting"
	case StyleCasual:
		return "natural outdoor background blur, relaxed setting"
	default:
		return ""
	}
}

// Category is a closed set of profile categories; anything unrecognized
// maps to CategoryDefault.
type Category string

const (
	CategoryBusiness   Category = "business"
	CategoryAcademic   Category = "academic"
	CategoryTechnology Category = "technology"
	CategoryCreative   Category = "creative"
	CategoryHealthcare Category = "healthcare"
	CategoryEducation  Category = "education"
	CategoryFinance    Category = "finance"
	CategoryMarketing  Category = "marketing"
	CategoryConsulting Category = "consulting"
	CategoryTravel     Category = "travel"
	CategoryLife       Category = "life"
	CategoryDefault    Category = "default"
)

// ParseCategory normalizes s (trim, lowercase) and maps it onto a known
// category, falling back to CategoryDefault.
func ParseCategory(s string) Category {
	// Casers are stateful; build one per call.
	c := Category(cases.Lower(language.Und).String(strings.TrimSpace(s)))
	switch c {
	case CategoryBusiness, CategoryAcademic, CategoryTechnology, CategoryCreative,
		CategoryHealthcare, CategoryEducation, CategoryFinance, CategoryMarketing,
		CategoryConsulting, CategoryTravel, CategoryLife:
		return c
	default:
		return CategoryDefault
	}
}

// Attire returns the clothing and context phrase for the category.
func (c Category) Attire() string {
	switch c {
	case CategoryBusiness:
		return "business attire, suit or professional blazer, corporate professional"
	case CategoryAcademic:
		return "smart casual attire, academic professional, scholarly appearance"
	case CategoryTechnology:
		return "modern casual professional, tech industry style, contemporary look"
	case CategoryCreative:
		return "creative professional attire, artistic style, expressive fashion"
	case CategoryHealthcare:
		return "professional medical attire, clean and trustworthy appearance"
	case CategoryEducation:
		return "educator professional attire, approachable and knowledgeable"
	case CategoryFinance:
		return "formal business attire, finance professional, conservative style"
	case CategoryMarketing:
		return "trendy professional attire, modern marketing professional"
	case CategoryConsulting:
		return "high-end professional attire, consultant appearance, polished look"
	case CategoryTravel:
		return "smart casual travel attire, adventure-ready professional, global mindset"
	case CategoryLife:
		return "wellness-focused professional attire, balanced lifestyle appearance, positive energy"
	default:
		return "professional attire, clean and modern appearance"
	}
}
