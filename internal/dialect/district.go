package dialect

import (
	"fmt"
	"strings"
)

// District is one of the fourteen Kerala districts whose dialect can be
// rendered or detected.
type District string

// Districts in canonical order. Translation results always follow this order.
const (
	Thiruvananthapuram District = "Thiruvananthapuram"
	Kollam             District = "Kollam"
	Pathanamthitta     District = "Pathanamthitta"
	Alappuzha          District = "Alappuzha"
	Kottayam           District = "Kottayam"
	Idukki             District = "Idukki"
	Ernakulam          District = "Ernakulam"
	Thrissur           District = "Thrissur"
	Palakkad           District = "Palakkad"
	Malappuram         District = "Malappuram"
	Kozhikode          District = "Kozhikode"
	Wayanad            District = "Wayanad"
	Kannur             District = "Kannur"
	Kasaragod          District = "Kasaragod"
)

// Standard is the detection label for sentences without a regional dialect.
const Standard District = "Standard"

// DistrictCount is the number of districts a translation covers.
const DistrictCount = 14

var canonicalDistricts = [DistrictCount]District{
	Thiruvananthapuram,
	Kollam,
	Pathanamthitta,
	Alappuzha,
	Kottayam,
	Idukki,
	Ernakulam,
	Thrissur,
	Palakkad,
	Malappuram,
	Kozhikode,
	Wayanad,
	Kannur,
	Kasaragod,
}

// Districts returns the fourteen districts in canonical order.
func Districts() []District {
	out := make([]District, DistrictCount)
	copy(out, canonicalDistricts[:])
	return out
}

// DistrictNames returns the canonical district names as plain strings.
func DistrictNames() []string {
	out := make([]string, DistrictCount)
	for i, d := range canonicalDistricts {
		out[i] = string(d)
	}
	return out
}

// ParseDistrict resolves a district name case-insensitively, ignoring
// surrounding whitespace. "Standard" is not a district.
func ParseDistrict(name string) (District, error) {
	name = strings.TrimSpace(name)
	for _, d := range canonicalDistricts {
		if strings.EqualFold(name, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown district: %q", name)
}

// ParseDialectLabel resolves a detection label: one of the districts or Standard.
func ParseDialectLabel(label string) (District, error) {
	if strings.EqualFold(strings.TrimSpace(label), string(Standard)) {
		return Standard, nil
	}
	return ParseDistrict(label)
}

// Index returns the canonical position of d, or -1 for Standard and unknown values.
func (d District) Index() int {
	for i, c := range canonicalDistricts {
		if c == d {
			return i
		}
	}
	return -1
}

// IsDistrict reports whether d is one of the fourteen districts.
func (d District) IsDistrict() bool {
	return d.Index() >= 0
}

func (d District) String() string {
	return string(d)
}
