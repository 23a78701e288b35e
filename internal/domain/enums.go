package domain

import "strings"

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

type ChestPainType string

const (
	ChestPainTypical      ChestPainType = "TA"
	ChestPainAtypical     ChestPainType = "ATA"
	ChestPainNonAnginal   ChestPainType = "NAP"
	ChestPainAsymptomatic ChestPainType = "ASY"
)

type RestingECG string

const (
	ECGNormal RestingECG = "Normal"
	ECGST     RestingECG = "ST"
	ECGLVH    RestingECG = "LVH"
)

type STSlope string

const (
	SlopeUp   STSlope = "Up"
	SlopeFlat STSlope = "Flat"
	SlopeDown STSlope = "Down"
)

// Canonical option lists, in the order the form presents them.
var (
	SexOptions       = []string{string(SexMale), string(SexFemale)}
	ChestPainOptions = []string{string(ChestPainTypical), string(ChestPainAtypical), string(ChestPainNonAnginal), string(ChestPainAsymptomatic)}
	ECGOptions       = []string{string(ECGNormal), string(ECGST), string(ECGLVH)}
	SlopeOptions     = []string{string(SlopeUp), string(SlopeFlat), string(SlopeDown)}
	YesNoOptions     = []string{"No", "Yes"}
)

func (s Sex) Valid() bool           { return containsOption(SexOptions, string(s)) }
func (c ChestPainType) Valid() bool { return containsOption(ChestPainOptions, string(c)) }
func (e RestingECG) Valid() bool    { return containsOption(ECGOptions, string(e)) }
func (s STSlope) Valid() bool       { return containsOption(SlopeOptions, string(s)) }

// YesNo renders a boolean the way the prediction service expects it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// canonicalOption returns the option matching v case-insensitively.
func canonicalOption(options []string, v string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, true
		}
	}
	return "", false
}
