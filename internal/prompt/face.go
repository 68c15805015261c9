package prompt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FaceOptions tune EnhanceFace.
type FaceOptions struct {
	Style Style
	// Age in years; zero omits the age clause.
	Age int
	// Gender is omitted when empty or "neutral".
	Gender     string
	Ethnicity  string
	Mood       string // neutral|confident|friendly|thoughtful|professional
	Lighting   string // studio|natural|dramatic|soft
	Background string // clean|office|outdoor|gradient
	// SkipCameraSettings and SkipFacialDetails drop those clauses.
	SkipCameraSettings bool
	SkipFacialDetails  bool
}

// Enhanced is the result of EnhanceFace.
type Enhanced struct {
	Prompt       string
	StyleType    string
	Enhancements []string
}

const (
	cameraSettings = "85mm portrait lens, f/2.8 aperture, shallow depth of field, sharp focus on face"
	facialDetails  = "detailed facial features, realistic skin texture, natural pores and fine details, " +
		"high resolution facial anatomy, realistic proportions, anatomically correct features"
	realismTail = "ultra high resolution, photorealistic, detailed, professional portrait photography, " +
		"natural lighting, realistic anatomy, high detail, sharp focus"
)

// EnhanceFace wraps a subject description in face-focused photography terms.
func EnhanceFace(base string, o FaceOptions) Enhanced {
	style := o.Style
	if _, ok := ParseStyle(string(style)); !ok {
		style = StyleRealistic
	}
	mood := defaultString(o.Mood, "professional")
	lighting := defaultString(o.Lighting, "studio")
	background := defaultString(o.Background, "clean")

	var b strings.Builder
	b.WriteString(faceStyleTemplate(style))
	b.WriteString(", ")
	if o.Gender != "" && o.Gender != "neutral" {
		b.WriteString(o.Gender + ", ")
	}
	if o.Ethnicity != "" {
		b.WriteString(o.Ethnicity + " ethnicity, ")
	}
	b.WriteString(base)

	ageClause, ageTag := ageEnhancement(o.Age)
	if ageClause != "" {
		b.WriteString(", " + ageClause)
	}
	fmt.Fprintf(&b, ", %s, %s, %s", moodPhrase(mood), faceLighting(lighting), faceBackground(background))
	if !o.SkipFacialDetails {
		b.WriteString(", " + facialDetails)
	}
	if !o.SkipCameraSettings {
		b.WriteString(", " + cameraSettings)
	}
	b.WriteString(", " + realismTail)

	styleType := "General"
	if style == StyleRealistic {
		styleType = "Realistic"
	}
	enh := []string{string(style), mood, lighting, background}
	if ageTag != "" {
		enh = append(enh, ageClause)
	}
	enh = append(enh, "photorealistic", "high detail")
	return Enhanced{Prompt: b.String(), StyleType: styleType, Enhancements: enh}
}

var yearsOld = regexp.MustCompile(`(?i)(\d+)\s*years?\s*old`)

// AgeFromText extracts "<n> years old" from free text, or 0.
func AgeFromText(s string) int {
	m := yearsOld.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// TeammateFace builds the face-enhanced teammate prompt: mood, lighting and
// background follow from the style, and an age mentioned in the
// description is honoured.
func TeammateFace(name, category, description string, style Style) Enhanced {
	base := fmt.Sprintf("%s, %s professional, %s", name, category, description)
	mood, lighting, background := "professional", "studio", "clean"
	if style == StyleCasual {
		mood = "friendly"
	}
	if style == StyleArtistic {
		lighting = "dramatic"
	}
	if style == StyleProfessional {
		background = "office"
	}
	return EnhanceFace(base, FaceOptions{
		Style:      style,
		Age:        AgeFromText(description),
		Mood:       mood,
		Lighting:   lighting,
		Background: background,
	})
}

func ageEnhancement(age int) (clause, tag string) {
	switch {
	case age <= 0:
		return "", ""
	case age < 25:
		return "young adult, fresh-faced, youthful appearance", "youthful features"
	case age < 35:
		return "young professional, vibrant and energetic", "young professional"
	case age < 50:
		return "experienced professional, mature and confident", "mature professional"
	default:
		return "seasoned expert, distinguished appearance", "experienced veteran"
	}
}

func faceStyleTemplate(s Style) string {
	switch s {
	case StyleArtistic:
		return "artistic portrait, creative lighting, stylized"
	case StyleProfessional:
		return "professional business portrait, corporate headshot"
	case StyleCasual:
		return "casual friendly portrait, approachable"
	default:
		return "photorealistic portrait, professional headshot"
	}
}

func moodPhrase(m string) string {
	switch m {
	case "neutral":
		return "neutral expression, direct eye contact with camera"
	case "confident":
		return "confident expression, slight smile, strong eye contact"
	case "friendly":
		return "warm friendly smile, approachable expression"
	case "thoughtful":
		return "thoughtful expression, intelligent gaze"
	default:
		return "professional demeanor, confident and approachable"
	}
}

func faceLighting(l string) string {
	switch l {
	case "natural":
		return "natural window lighting, soft and even illumination"
	case "dramatic":
		return "dramatic side lighting, professional portrait lighting"
	case "soft":
		return "soft diffused lighting, flattering portrait lighting"
	default:
		return "soft studio lighting, professional photography setup"
	}
}

func faceBackground(b string) string {
	switch b {
	case "office":
		return "modern office environment, professional setting"
	case "outdoor":
		return "outdoor natural setting, blurred background"
	case "gradient":
		return "gradient background, studio portrait setup"
	default:
		return "clean simple background, professional backdrop"
	}
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
