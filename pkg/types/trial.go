// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the diligence-engine
// pipeline: raw feed records, canonical phase and therapeutic-area keys,
// score sets, market projections, molecule profiles and configuration.
package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Phase is a canonical clinical development phase.
type Phase string

const (
	PhaseI        Phase = "Phase I"
	PhaseIToII    Phase = "Phase I/II"
	PhaseII       Phase = "Phase II"
	PhaseIIToIII  Phase = "Phase II/III"
	PhaseIII      Phase = "Phase III"
	PhaseNDABLA   Phase = "NDA/BLA"
	PhaseApproved Phase = "Approved"
)

// DefaultPhase is used for empty and unrecognized phase strings.
const DefaultPhase = PhaseII

// Phases lists every canonical phase in development order.
var Phases = []Phase{PhaseI, PhaseIToII, PhaseII, PhaseIIToIII, PhaseIII, PhaseNDABLA, PhaseApproved}

// Valid reports whether p is one of the canonical phases.
func (p Phase) Valid() bool {
	for _, c := range Phases {
		if p == c {
			return true
		}
	}
	return false
}

// TherapeuticArea is a normalized key into the reference tables.
type TherapeuticArea string

const (
	TAOncology          TherapeuticArea = "ONCOLOGY"
	TAHematology        TherapeuticArea = "HEMATOLOGY"
	TACardiovascular    TherapeuticArea = "CARDIOVASCULAR"
	TAMetabolic         TherapeuticArea = "METABOLIC"
	TANeurology         TherapeuticArea = "NEUROLOGY"
	TAPsychiatry        TherapeuticArea = "PSYCHIATRY"
	TAInfectiousDisease TherapeuticArea = "INFECTIOUS_DISEASE"
	TAImmunology        TherapeuticArea = "IMMUNOLOGY"
	TARespiratory       TherapeuticArea = "RESPIRATORY"
	TARareDisease       TherapeuticArea = "RARE_DISEASE"
	TAOphthalmology     TherapeuticArea = "OPHTHALMOLOGY"
	TADermatology       TherapeuticArea = "DERMATOLOGY"
	TAGastroenterology  TherapeuticArea = "GASTROENTEROLOGY"
	TAGeneral           TherapeuticArea = "GENERAL"
)

// TherapeuticAreas lists every key, GENERAL last.
var TherapeuticAreas = []TherapeuticArea{
	TAOncology, TAHematology, TACardiovascular, TAMetabolic, TANeurology,
	TAPsychiatry, TAInfectiousDisease, TAImmunology, TARespiratory,
	TARareDisease, TAOphthalmology, TADermatology, TAGastroenterology,
	TAGeneral,
}

// TrackRecord classifies a sponsor's commercialization history.
type TrackRecord string

const (
	TrackTopTier     TrackRecord = "Top-tier"
	TrackEstablished TrackRecord = "Established"
	TrackEmerging    TrackRecord = "Emerging"
)

// Trial statuses that mark a program as failed.
const (
	StatusTerminated = "TERMINATED"
	StatusWithdrawn  = "WITHDRAWN"
)

// RawTrialRecord is one molecule/trial entry as delivered by the remote feed.
// Only the fields the pipeline reads are typed; the rest pass through to
// the profile for display.
type RawTrialRecord struct {
	NCTID           string     `json:"nct_id" yaml:"nct_id"`
	Phase           string     `json:"phase" yaml:"phase"`
	TherapeuticArea string     `json:"therapeutic_area" yaml:"therapeutic_area"`
	Sponsor         string     `json:"sponsor" yaml:"sponsor"`
	Conditions      StringList `json:"conditions" yaml:"conditions"`
	PrimaryDrug     string     `json:"primary_drug" yaml:"primary_drug"`
	Status          string     `json:"status" yaml:"status"`
	StartDate       string     `json:"start_date" yaml:"start_date"`

	StudyTitle     string     `json:"study_title,omitempty" yaml:"study_title,omitempty"`
	Interventions  StringList `json:"interventions,omitempty" yaml:"interventions,omitempty"`
	PrimaryOutcome string     `json:"primary_outcome,omitempty" yaml:"primary_outcome,omitempty"`
}

// IsFailed reports whether the trial status marks the program as failed.
func (r RawTrialRecord) IsFailed() bool {
	s := strings.ToUpper(strings.TrimSpace(r.Status))
	return s == StatusTerminated || s == StatusWithdrawn
}

// Indication returns the primary condition, or "" when none is listed.
func (r RawTrialRecord) Indication() string {
	for _, c := range r.Conditions {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

var startDateLayouts = []string{"2006-01-02", "2006-01", time.RFC3339, "January 2, 2006", "January 2006"}

// Started parses StartDate. Unknown or unparseable dates return the zero time.
func (r RawTrialRecord) Started() time.Time {
	s := strings.TrimSpace(r.StartDate)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// UnmarshalJSON decodes a record leniently. String fields also accept
// numbers (a numeric nct_id) and arrays (["PHASE2", "PHASE3"] becomes
// "PHASE2/PHASE3"); other shapes decode as "" instead of dropping the
// record.
func (r *RawTrialRecord) UnmarshalJSON(data []byte) error {
	type Record RawTrialRecord
	aux := struct {
		*Record
		NCTID           flexString `json:"nct_id"`
		Phase           flexString `json:"phase"`
		TherapeuticArea flexString `json:"therapeutic_area"`
		Sponsor         flexString `json:"sponsor"`
		PrimaryDrug     flexString `json:"primary_drug"`
		Status          flexString `json:"status"`
		StartDate       flexString `json:"start_date"`
		StudyTitle      flexString `json:"study_title"`
		PrimaryOutcome  flexString `json:"primary_outcome"`
	}{Record: (*Record)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.NCTID = string(aux.NCTID)
	r.Phase = string(aux.Phase)
	r.TherapeuticArea = string(aux.TherapeuticArea)
	r.Sponsor = string(aux.Sponsor)
	r.PrimaryDrug = string(aux.PrimaryDrug)
	r.Status = string(aux.Status)
	r.StartDate = string(aux.StartDate)
	r.StudyTitle = string(aux.StudyTitle)
	r.PrimaryOutcome = string(aux.PrimaryOutcome)
	return nil
}

// flexString is a scalar text field that tolerates numbers and lists.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = ""
	if len(data) == 0 {
		return nil
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case c == '-' || (c >= '0' && c <= '9'):
		*f = flexString(data)
	case c == '[':
		var parts []flexString
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		var out []string
		for _, p := range parts {
			if p := strings.TrimSpace(string(p)); p != "" {
				out = append(out, p)
			}
		}
		*f = flexString(strings.Join(out, "/"))
	}
	return nil
}

// StringList decodes from either a JSON string or an array of strings.
// Feeds are inconsistent about which one they send for conditions.
type StringList []string

// UnmarshalJSON accepts "a, b", ["a", "b"] and null. Non-string array
// elements are kept as their text.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []flexString
	if err := json.Unmarshal(data, &items); err == nil {
		var list []string
		for _, it := range items {
			if it != "" {
				list = append(list, string(it))
			}
		}
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Numbers, objects and other shapes are dropped rather than
		// failing the whole record.
		*l = nil
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*l = out
	return nil
}
