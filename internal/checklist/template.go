// Package checklist holds the review checklist templates. Which steps exist
// and what each step asks is configuration data: the task store itself is
// step-count agnostic and different deployments run 2, 3 or 5 step variants.
package checklist

import "fmt"

type Item struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Step struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Items  []Item `json:"items"`
}

type Template struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// ValidStep reports whether a step number is declared by this template.
func (t *Template) ValidStep(number int) bool {
	for _, s := range t.Steps {
		if s.Number == number {
			return true
		}
	}
	return false
}

// Step returns the declared step, or nil.
func (t *Template) Step(number int) *Step {
	for i := range t.Steps {
		if t.Steps[i].Number == number {
			return &t.Steps[i]
		}
	}
	return nil
}

// Label resolves a checklist item key within a step to its display label.
// Unknown keys fall back to the key itself so reports never lose data
// submitted against an older template revision.
func (t *Template) Label(stepNumber int, key string) string {
	step := t.Step(stepNumber)
	if step == nil {
		return key
	}
	for _, item := range step.Items {
		if item.Key == key {
			return item.Label
		}
	}
	return key
}

var variants = map[string]Template{
	"standard": {
		Name: "standard",
		Steps: []Step{
			{
				Number: 1,
				Title:  "Audio & visual baseline",
				Items: []Item{
					{Key: "correctTitleCardAccount", Label: "Correct title card account"},
					{Key: "correctBeginningAnimation", Label: "Correct beginning animation"},
					{Key: "correctEndingAnimation", Label: "Correct ending animation"},
					{Key: "correctBackgroundFootage", Label: "Correct background footage"},
					{Key: "audioQuality", Label: "Audio quality is clear"},
					{Key: "videoQuality", Label: "Video quality is acceptable"},
				},
			},
			{
				Number: 2,
				Title:  "Captions & final pass",
				Items: []Item{
					{Key: "correctFont", Label: "Correct Font"},
					{Key: "correctCaptionAnimation", Label: "Correct caption animation"},
					{Key: "correctEndingAnimation2", Label: "Correct ending animation"},
					{Key: "correctBackgroundFootage2", Label: "Correct background footage"},
					{Key: "textReadability", Label: "Text is readable and clear"},
					{Key: "overallQuality", Label: "Overall video meets standards"},
				},
			},
		},
	},
	"extended": {
		Name: "extended",
		Steps: []Step{
			{
				Number: 1,
				Title:  "Audio settings",
				Items: []Item{
					{Key: "audioLevels", Label: "Audio levels are balanced"},
					{Key: "noClipping", Label: "No clipping or distortion"},
					{Key: "voiceClarity", Label: "Voice track is clear"},
				},
			},
			{
				Number: 2,
				Title:  "Captions & title cards",
				Items: []Item{
					{Key: "correctFont", Label: "Correct Font"},
					{Key: "correctCaptionAnimation", Label: "Correct caption animation"},
					{Key: "correctTitleCardAccount", Label: "Correct title card account"},
					{Key: "textReadability", Label: "Text is readable and clear"},
				},
			},
			{
				Number: 3,
				Title:  "Backgrounds & music",
				Items: []Item{
					{Key: "correctBackgroundFootage", Label: "Correct background footage"},
					{Key: "backgroundMusicAdded", Label: "Background music added"},
					{Key: "overallQuality", Label: "Overall video meets standards"},
				},
			},
		},
	},
	"full": {
		Name: "full",
		Steps: []Step{
			{
				Number: 1,
				Title:  "Audio settings",
				Items: []Item{
					{Key: "audioLevels", Label: "Audio levels are balanced"},
					{Key: "noClipping", Label: "No clipping or distortion"},
					{Key: "voiceClarity", Label: "Voice track is clear"},
				},
			},
			{
				Number: 2,
				Title:  "Captions & title cards",
				Items: []Item{
					{Key: "correctFont", Label: "Correct Font"},
					{Key: "correctCaptionAnimation", Label: "Correct caption animation"},
					{Key: "correctTitleCardAccount", Label: "Correct title card account"},
					{Key: "textReadability", Label: "Text is readable and clear"},
				},
			},
			{
				Number: 3,
				Title:  "Backgrounds & music",
				Items: []Item{
					{Key: "correctBackgroundFootage", Label: "Correct background footage"},
					{Key: "backgroundMusicAdded", Label: "Background music added"},
				},
			},
			{
				Number: 4,
				Title:  "Visual errors",
				Items: []Item{
					{Key: "noVisualArtifacts", Label: "No visual artifacts"},
					{Key: "noMisspelledText", Label: "No misspelled on-screen text"},
				},
			},
			{
				Number: 5,
				Title:  "Glitches & final pass",
				Items: []Item{
					{Key: "noFrameGlitches", Label: "No frame glitches"},
					{Key: "correctEndingAnimation", Label: "Correct ending animation"},
					{Key: "overallQuality", Label: "Overall video meets standards"},
				},
			},
		},
	},
}

// ForVariant returns the named template.
func ForVariant(name string) (*Template, error) {
	t, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown checklist variant %q", name)
	}
	return &t, nil
}
