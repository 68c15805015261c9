package prompt

import "strings"

// HumanFaceParams describe a realistic face request. Empty fields take the
// defaults applied by Defaults.
type HumanFaceParams struct {
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	Ethnicity  string `json:"ethnicity"`
	Expression string `json:"expression"`
	Profession string `json:"profession"`
	Style      string `json:"style"`    // headshot|portrait|environmental
	Lighting   string `json:"lighting"` // natural|studio|dramatic|golden-hour
}

// Defaults fills unset fields.
func (p HumanFaceParams) Defaults() HumanFaceParams {
	p.Age = defaultString(p.Age, "adult")
	p.Gender = defaultString(p.Gender, "person")
	p.Expression = defaultString(p.Expression, "natural confident smile")
	p.Profession = defaultString(p.Profession, "professional")
	p.Style = defaultString(p.Style, "headshot")
	p.Lighting = defaultString(p.Lighting, "natural")
	return p
}

// HumanFace builds the detailed realistic face prompt.
func HumanFace(p HumanFaceParams) string {
	p = p.Defaults()
	parts := []string{
		"professional headshot photography", "85mm lens", "shallow depth of field", "bokeh background",
		"sharp focus on eyes", "natural skin texture", "detailed facial features", "high resolution portrait",
		p.Age + " " + p.Gender, p.Ethnicity, p.Expression,
		"authentic human face", "genuine expression", "natural realistic skin", "detailed eyes",
		"realistic facial proportions",
		p.Profession + " appearance", "professional attire", "well-groomed", "confident posture",
		"approachable demeanor",
		faceFrame(p.Style),
		faceRigLighting(p.Lighting),
		"photorealistic", "highly detailed", "professional quality", "commercial photography",
		"clean composition", "perfect exposure", "no artifacts", "no text, no watermark",
	}
	return join(parts)
}

const customFaceSuffix = "professional headshot photography, 85mm lens, shallow depth of field, " +
	"bokeh background, sharp focus on eyes, natural skin texture, detailed facial features, " +
	"photorealistic, highly detailed, authentic human face, genuine expression, no text, no watermark"

// CustomFace appends the fixed realism suffix to a caller-written prompt.
func CustomFace(custom string) string {
	return strings.TrimSpace(custom) + ", " + customFaceSuffix
}

// DiversePartner builds a randomized-characteristics partner portrait.
// Gender "any" and "non-binary" render as "person".
func DiversePartner(ch Characteristics, gender, description string) string {
	term := gender
	if term == "" || term == "any" || term == "non-binary" {
		term = "person"
	}
	return join([]string{
		"professional headshot photography, 85mm lens, shallow depth of field",
		ch.Age + " " + ch.Ethnicity + " " + term,
		ch.FacialFeatures, ch.EyeColor, ch.HairStyle, ch.HairColor, ch.Expression,
		"confident and approachable demeanor",
		"professional business attire",
		"looking directly at camera",
		"studio lighting, clean background",
		"photorealistic, highly detailed",
		"unique individual, distinct facial features",
		"authentic human appearance",
		description,
		"no text, no watermark, professional quality",
	})
}

// WithDiversity appends characteristic descriptors to an existing prompt.
func WithDiversity(base string, ch Characteristics) string {
	return join([]string{
		base,
		"diverse " + ch.Ethnicity + " person",
		ch.Age, ch.FacialFeatures, ch.EyeColor, ch.HairStyle, ch.HairColor, ch.Expression,
		"photorealistic, professional photography",
		"unique individual, authentic human appearance",
	})
}

// ShortPortrait is the compact teammate prompt used by providers that do
// their own prompt rewriting.
func ShortPortrait(name, category, description string, style Style) string {
	var suffix string
	switch style {
	case StyleArtistic:
		suffix = "artistic style, creative, unique portrait"
	case StyleProfessional:
		suffix = "professional business portrait, clean background"
	case StyleCasual:
		suffix = "casual friendly portrait, natural setting"
	default:
		suffix = "highly detailed, photorealistic, professional headshot"
	}
	return join([]string{name, category + " professional", description, suffix})
}

func faceFrame(style string) string {
	switch style {
	case "portrait":
		return "portrait framing, chest up, classic portrait composition"
	case "environmental":
		return "environmental portrait, person in professional setting, context visible"
	default:
		return "tight headshot framing, shoulders visible, corporate headshot style"
	}
}

func faceRigLighting(l string) string {
	switch l {
	case "studio":
		return "professional studio lighting, key light with fill light, hair light, clean bright lighting"
	case "dramatic":
		return "dramatic portrait lighting, strong directional light, artistic shadows, moody atmosphere"
	case "golden-hour":
		return "golden hour natural light, warm sunset glow, soft rim lighting, beautiful skin tones"
	default:
		return "soft natural window light, gentle shadows, warm color temperature, flattering illumination"
	}
}
