// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

// Package predictor serves cause predictions from a multinomial logistic
// regression artifact exported to JSON at training time. The model is
// loaded once at startup and never mutated, so prediction needs no
// locking. A missing or unreadable artifact degrades to a clearly-flagged
// placeholder response instead of failing requests.
package predictor

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/ashgrid/ashgrid/internal/logging"
	"github.com/ashgrid/ashgrid/internal/models"
)

// causeLabels enumerates the classes in the order the model emits them.
var causeLabels = []string{
	"Lightning", "Equipment Use", "Smoking", "Campfire", "Debris Burning",
	"Railroad", "Arson", "Children", "Miscellaneous", "Fireworks", "Powerline",
}

// featureNames is the training column order. Feature vectors are assembled
// in exactly this order.
var featureNames = []string{
	"FIRE_YEAR", "FIRE_SIZE", "LATITUDE", "LONGITUDE", "OWNER_CODE", "STATE",
	"NWCG_REPORTING_AGENCY", "doy_sin", "doy_cos", "lat_lon_interaction",
}

// stateOrdinals maps state abbreviations to the ordinal encoding used at
// training time: the 50 states sorted alphabetically, indexed from 0.
var stateOrdinals = buildStateOrdinals()

func buildStateOrdinals() map[string]float64 {
	states := []string{
		"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
		"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
		"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
		"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
		"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
	}
	sort.Strings(states)
	m := make(map[string]float64, len(states))
	for i, s := range states {
		m[s] = float64(i)
	}
	return m
}

// Encoding defaults for absent or unrecognized inputs, fixed by the
// training pipeline.
const (
	defaultStateOrdinal = 4.0 // CA
	defaultOwnerCode    = 1.0
	defaultAgencyCode   = 7.0
	defaultDayOfYear    = 180
)

// placeholderCause flags a response produced without a loaded model.
const placeholderCause = "Model Not Loaded"

// model is the JSON artifact: per-class coefficient rows plus intercepts
// for a softmax over the fixed label set.
type model struct {
	FeatureNames []string    `json:"feature_names"`
	CauseLabels  []string    `json:"cause_labels"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

// validate checks the artifact's shape against the compiled-in label and
// feature sets so a stale export fails at startup, not per request.
func (m *model) validate() error {
	if len(m.CauseLabels) != len(causeLabels) {
		return fmt.Errorf("expected %d cause labels, got %d", len(causeLabels), len(m.CauseLabels))
	}
	for i, label := range m.CauseLabels {
		if label != causeLabels[i] {
			return fmt.Errorf("cause label %d mismatch: artifact has %q, expected %q", i, label, causeLabels[i])
		}
	}
	if len(m.FeatureNames) != len(featureNames) {
		return fmt.Errorf("expected %d features, got %d", len(featureNames), len(m.FeatureNames))
	}
	for i, name := range m.FeatureNames {
		if name != featureNames[i] {
			return fmt.Errorf("feature %d mismatch: artifact has %q, expected %q", i, name, featureNames[i])
		}
	}
	if len(m.Coefficients) != len(causeLabels) {
		return fmt.Errorf("expected %d coefficient rows, got %d", len(causeLabels), len(m.Coefficients))
	}
	for i, row := range m.Coefficients {
		if len(row) != len(featureNames) {
			return fmt.Errorf("coefficient row %d: expected %d values, got %d", i, len(featureNames), len(row))
		}
	}
	if len(m.Intercepts) != len(causeLabels) {
		return fmt.Errorf("expected %d intercepts, got %d", len(m.Intercepts), len(causeLabels))
	}
	return nil
}

// Predictor holds the loaded model, or nil when running in placeholder
// mode. Immutable after New.
type Predictor struct {
	model *model
	now   func() time.Time
}

// New loads the model artifact from path. Load failure is not fatal: the
// predictor comes up in placeholder mode and every prediction is flagged
// accordingly.
func New(path string) *Predictor {
	p := &Predictor{now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).
			Msg("Cause model artifact not loaded, predictions will return a placeholder")
		return p
	}

	var m model
	if err := json.Unmarshal(data, &m); err != nil {
		logging.Warn().Err(err).Str("path", path).
			Msg("Cause model artifact is not valid JSON, predictions will return a placeholder")
		return p
	}

	if err := m.validate(); err != nil {
		logging.Warn().Err(err).Str("path", path).
			Msg("Cause model artifact failed validation, predictions will return a placeholder")
		return p
	}

	p.model = &m
	logging.Info().Str("path", path).
		Int("causes", len(m.CauseLabels)).
		Int("features", len(m.FeatureNames)).
		Msg("Cause model loaded")
	return p
}

// Loaded reports whether a real model backs predictions.
func (p *Predictor) Loaded() bool {
	return p.model != nil
}

// Input is one feature record for prediction. OwnerCode and AgencyCode
// are optional; nil falls back to the training-time defaults.
type Input struct {
	Latitude   float64
	Longitude  float64
	FireSize   float64
	State      string
	Date       string // YYYY-MM-DD
	OwnerCode  *int
	AgencyCode *int
}

// Predict returns every cause with its probability, sorted descending and
// rounded to 4 decimals. Without a loaded model it returns the single
// placeholder entry with probability 1.
func (p *Predictor) Predict(in Input) []models.PredictionResult {
	if p.model == nil {
		return []models.PredictionResult{{Cause: placeholderCause, Probability: 1.0}}
	}

	features := p.buildFeatures(in)
	probs := p.model.softmax(features)

	results := make([]models.PredictionResult, len(causeLabels))
	for i, label := range causeLabels {
		results[i] = models.PredictionResult{
			Cause:       label,
			Probability: math.Round(probs[i]*10000) / 10000,
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Probability > results[j].Probability
	})
	return results
}

// buildFeatures assembles the feature vector in training column order,
// deriving the cyclical day-of-year encoding and the lat/lon interaction
// term. A malformed date falls back to mid-year of the current year.
func (p *Predictor) buildFeatures(in Input) []float64 {
	doy := defaultDayOfYear
	year := p.now().Year()
	if t, err := time.Parse("2006-01-02", in.Date); err == nil {
		doy = t.YearDay()
		year = t.Year()
	}

	stateOrdinal := defaultStateOrdinal
	if ord, ok := stateOrdinals[strings.ToUpper(strings.TrimSpace(in.State))]; ok {
		stateOrdinal = ord
	}

	ownerCode := defaultOwnerCode
	if in.OwnerCode != nil {
		ownerCode = float64(*in.OwnerCode)
	}
	agencyCode := defaultAgencyCode
	if in.AgencyCode != nil {
		agencyCode = float64(*in.AgencyCode)
	}

	angle := 2 * math.Pi * float64(doy) / 365.0

	return []float64{
		float64(year),
		in.FireSize,
		in.Latitude,
		in.Longitude,
		ownerCode,
		stateOrdinal,
		agencyCode,
		math.Sin(angle),
		math.Cos(angle),
		in.Latitude * in.Longitude,
	}
}

// softmax computes class probabilities from the linear logits, shifted by
// the max logit for numerical stability.
func (m *model) softmax(features []float64) []float64 {
	logits := make([]float64, len(m.Coefficients))
	maxLogit := math.Inf(-1)
	for i, row := range m.Coefficients {
		z := m.Intercepts[i]
		for j, w := range row {
			z += w * features[j]
		}
		logits[i] = z
		if z > maxLogit {
			maxLogit = z
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, z := range logits {
		probs[i] = math.Exp(z - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
