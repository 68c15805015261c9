package prompt

import "strings"

// ClosingBoilerplate always terminates a composed portrait prompt.
const ClosingBoilerplate = "no text, no watermark, no logo"

const photoQuality = "professional headshot photography, shallow depth of field, bokeh background, " +
	"natural skin texture, detailed facial features, high resolution, 85mm lens, " +
	"perfect focus on eyes, natural eye catchlight, professional retouching quality"

// Options configure Compose.
type Options struct {
	Category string
	Style    Style
	// Description becomes the "personality:" clause when non-empty.
	Description string
	// Characteristics, when set, adds demographic descriptors and the
	// distinct-features clause.
	Characteristics *Characteristics
}

// Compose builds a portrait prompt. The result is a pure function of its
// inputs. Parts are joined with ", " in a fixed order: photographic
// boilerplate, base subject, human descriptors, category attire, style
// lighting and background, personality, quality phrases, closing.
// Length is not bounded here.
//
// Style is used as given: validate it with ParseStyle first. A style outside
// Styles contributes no lighting or background phrase.
func Compose(base string, opts Options) string {
	style := opts.Style
	ch := opts.Characteristics

	parts := []string{photoQuality, strings.TrimSpace(base)}
	if ch != nil {
		parts = append(parts,
			ch.Age+" "+ch.Ethnicity+" person",
			"authentic human face", ch.Expression, "confident posture", "looking at camera",
			"professional appearance", ch.FacialFeatures, ch.EyeColor, ch.HairStyle, ch.HairColor,
		)
	} else {
		parts = append(parts,
			"authentic human face", "genuine expression", "natural smile", "confident posture",
			"looking at camera", "professional appearance",
		)
	}
	parts = append(parts,
		ParseCategory(opts.Category).Attire(),
		style.Lighting(),
		style.Background(),
	)
	if d := strings.TrimSpace(opts.Description); d != "" {
		parts = append(parts, "personality: "+d)
	}
	parts = append(parts,
		"photorealistic, highly detailed, sharp focus",
		"professional photography, portrait photography",
	)
	if ch != nil {
		parts = append(parts, "unique individual, distinct facial features")
	}
	parts = append(parts, ClosingBoilerplate)
	return join(parts)
}

// join concatenates the non-blank parts with ", ".
func join(parts []string) string {
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			clean = append(clean, s)
		}
	}
	return strings.Join(clean, ", ")
}
