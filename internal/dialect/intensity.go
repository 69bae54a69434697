package dialect

import (
	"fmt"
	"strings"
)

// Intensity controls how strongly slang is applied to a translation.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// DefaultIntensity is the slider's initial position.
const DefaultIntensity = IntensityMedium

var sliderIntensities = []Intensity{IntensityLow, IntensityMedium, IntensityHigh}

// ParseIntensity accepts low, medium or high in any case.
func ParseIntensity(s string) (Intensity, error) {
	switch Intensity(strings.ToLower(strings.TrimSpace(s))) {
	case IntensityLow:
		return IntensityLow, nil
	case IntensityMedium:
		return IntensityMedium, nil
	case IntensityHigh:
		return IntensityHigh, nil
	}
	return "", fmt.Errorf("invalid slang intensity %q: must be low, medium or high", s)
}

// IntensityFromSlider maps a three-stop slider position (0, 1, 2) to an
// intensity. Positions are rounded and clamped to the slider range.
func IntensityFromSlider(value float64) Intensity {
	i := int(value + 0.5)
	if value < 0 {
		i = 0
	}
	if i >= len(sliderIntensities) {
		i = len(sliderIntensities) - 1
	}
	return sliderIntensities[i]
}

// SliderValue is the inverse of IntensityFromSlider.
func (i Intensity) SliderValue() float64 {
	for pos, v := range sliderIntensities {
		if v == i {
			return float64(pos)
		}
	}
	return 1
}

// Label is the capitalized form shown next to the slider.
func (i Intensity) Label() string {
	switch i {
	case IntensityLow:
		return "Low"
	case IntensityHigh:
		return "High"
	default:
		return "Medium"
	}
}

// Valid reports whether i is one of the three known intensities.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}
