// Package prompt builds the text sent to image providers: randomized
// demographic characteristics, style and category phrase tables, and the
// portrait prompt composers used by each provider adapter.
package prompt

import (
	"math/rand/v2"
	"sync"
	"time"
)

// MaxSeed is the exclusive upper bound of generated seeds.
const MaxSeed = 1_000_000

var (
	ethnicities = []string{
		"Caucasian", "African American", "Hispanic", "Asian", "Middle Eastern",
		"Native American", "Pacific Islander", "Mixed ethnicity", "South Asian",
		"European", "Mediterranean", "Scandinavian", "Latin American",
	}
	ageBrackets = []string{
		"young adult (25-30)", "adult (30-40)", "mature adult (40-50)",
		"middle-aged (35-45)", "experienced professional (45-55)",
	}
	facialFeatures = []string{
		"oval face", "round face", "square face", "heart-shaped face",
		"angular features", "soft features", "defined cheekbones",
		"gentle features", "strong jawline", "delicate features",
	}
	eyeColors = []string{
		"brown eyes", "blue eyes", "green eyes", "hazel eyes",
		"amber eyes", "gray eyes", "dark brown eyes",
	}
	hairStyles = []string{
		"short professional haircut", "medium length hair", "shoulder length hair",
		"neat business cut", "modern styled hair", "classic hairstyle",
		"contemporary cut", "professional styling",
	}
	hairColors = []string{
		"dark brown hair", "black hair", "blonde hair", "light brown hair",
		"auburn hair", "gray hair", "salt and pepper hair", "chestnut hair",
	}
	expressions = []string{
		"warm smile", "confident expression", "friendly demeanor",
		"professional smile", "approachable look", "genuine smile",
		"calm expression", "engaging smile", "trustworthy appearance",
	}
)

// Characteristics is one random draw of visual descriptors plus a seed.
type Characteristics struct {
	Ethnicity      string `json:"ethnicity"`
	Age            string `json:"age"`
	FacialFeatures string `json:"facialFeatures"`
	EyeColor       string `json:"eyeColor"`
	HairStyle      string `json:"hairStyle"`
	HairColor      string `json:"hairColor"`
	Expression     string `json:"expression"`
	Seed           int64  `json:"seed"`
}

// Generator draws Characteristics from an injected random source.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator over src. A nil src uses a time-seeded PCG.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return &Generator{rng: rand.New(src)}
}

// Generate picks one entry uniformly from each list and a seed in [0, MaxSeed).
func (g *Generator) Generate() Characteristics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Characteristics{
		Ethnicity:      g.pick(ethnicities),
		Age:            g.pick(ageBrackets),
		FacialFeatures: g.pick(facialFeatures),
		EyeColor:       g.pick(eyeColors),
		HairStyle:      g.pick(hairStyles),
		HairColor:      g.pick(hairColors),
		Expression:     g.pick(expressions),
		Seed:           g.rng.Int64N(MaxSeed),
	}
}

// Seed returns a fresh seed in [0, MaxSeed).
func (g *Generator) Seed() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Int64N(MaxSeed)
}

// IntN returns a value in [0, n); adapters use it for small seed ranges.
func (g *Generator) IntN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

func (g *Generator) pick(list []string) string {
	return list[g.rng.IntN(len(list))]
}
