package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"codeberg.org/snonux/slangify/internal/dialect"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Capability names a single request/response operation.
type Capability string

const (
	Translate Capability = "translate"
	Analyze   Capability = "analyze"
	Reverse   Capability = "reverse"
	Insights  Capability = "insights"
	Score     Capability = "score"
	Speech    Capability = "speech"
)

// Capabilities lists every capability in a stable order.
func Capabilities() []Capability {
	return []Capability{Translate, Analyze, Reverse, Insights, Score, Speech}
}

// HarmCategory mirrors the content-safety categories of the model providers.
type HarmCategory string

const (
	HarmHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmSexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// BlockMediumAndAbove is the threshold used by the translation capability.
const BlockMediumAndAbove = "BLOCK_MEDIUM_AND_ABOVE"

// SafetySetting is one category/threshold pair.
type SafetySetting struct {
	Category  HarmCategory
	Threshold string
}

// Spec is the complete prompt configuration of one capability.
type Spec struct {
	Capability Capability
	// System is sent as the system instruction; may be empty.
	System string
	// Schema is nil for capabilities that reply with plain text.
	Schema      *Schema
	Safety      []SafetySetting
	Temperature *float32

	tmpl *template.Template
}

// Data holds every placeholder a template may reference.
type Data struct {
	Sentence          string
	Intensity         dialect.Intensity
	SlangSentence     string
	District          dialect.District
	OriginalSentence  string
	ConvertedSentence string
	Text              string
	Districts         []string
}

// Render fills the template with data. The canonical district list is
// always supplied.
func (s *Spec) Render(data Data) (string, error) {
	data.Districts = dialect.DistrictNames()

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", s.Capability, err)
	}
	return buf.String(), nil
}

// Store maps capabilities to their specs.
type Store struct {
	specs map[Capability]*Spec
}

var funcs = template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": strings.Join,
}

// NewStore parses the embedded templates.
func NewStore() (*Store, error) {
	st := &Store{specs: make(map[Capability]*Spec)}

	for _, spec := range builtinSpecs() {
		name := string(spec.Capability) + ".tmpl"
		body, err := templateFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("missing template %s: %w", name, err)
		}
		spec.tmpl, err = template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(body))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		st.specs[spec.Capability] = spec
	}

	return st, nil
}

// MustStore is NewStore for package-level initialisation; it panics on a
// broken embedded template.
func MustStore() *Store {
	st, err := NewStore()
	if err != nil {
		panic(err)
	}
	return st
}

// Spec returns the spec of a capability.
func (st *Store) Spec(c Capability) (*Spec, error) {
	spec, ok := st.specs[c]
	if !ok {
		return nil, fmt.Errorf("unknown capability: %s", c)
	}
	return spec, nil
}

// Render is a shortcut for Spec(c).Render(data).
func (st *Store) Render(c Capability, data Data) (string, error) {
	spec, err := st.Spec(c)
	if err != nil {
		return "", err
	}
	return spec.Render(data)
}

func temperature(t float32) *float32 { return &t }

func builtinSpecs() []*Spec {
	dialectLabels := append(dialect.DistrictNames(), string(dialect.Standard))

	return []*Spec{
		{
			Capability: Translate,
			Schema: ArrayOf("One entry per district in canonical order.",
				ObjectOf("",
					Prop("district", Enum("The district name.", dialect.DistrictNames()...)),
					Prop("slang", String("The sentence in the district's dialect, in Malayalam script.")),
					Prop("meaningMatchScore", Percent("0-100 estimate of how close the slang is to the original meaning.")),
				),
				dialect.DistrictCount, dialect.DistrictCount),
			Safety: []SafetySetting{
				{Category: HarmHarassment, Threshold: BlockMediumAndAbove},
				{Category: HarmHateSpeech, Threshold: BlockMediumAndAbove},
				{Category: HarmSexuallyExplicit, Threshold: BlockMediumAndAbove},
				{Category: HarmDangerousContent, Threshold: BlockMediumAndAbove},
			},
		},
		{
			Capability: Analyze,
			Schema: ObjectOf("",
				Prop("isStandard", Boolean("Whether the sentence is standard Manglish without dialect.")),
				Prop("dialect", Enum(`The detected dialect, "Standard" if none.`, dialectLabels...)),
				Prop("confidence", Percent("0-100 confidence for the detected dialect.")),
			),
			Temperature: temperature(0.1),
		},
		{
			Capability: Reverse,
			Schema: ObjectOf("",
				Prop("standardSentence", String("The sentence in standard, formal Malayalam script.")),
			),
			Temperature: temperature(0.2),
		},
		{
			Capability: Insights,
			Schema: ObjectOf("",
				Prop("insight", String("A brief cultural or linguistic insight about the district's dialect.")),
				Prop("popularPhrases", ArrayOf("3-4 popular phrases in Malayalam script with their standard meaning in parentheses.",
					String(""), 3, 4)),
			),
		},
		{
			Capability:  Score,
			Temperature: temperature(0),
		},
		{
			Capability: Speech,
		},
	}
}
