package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MotorConfig describes one actuated motor: its id, display label and the
// two named target states with their position tolerance bands.
type MotorConfig struct {
	MotorID            int     `json:"motor_id" yaml:"motor_id"`
	Label              string  `json:"label" yaml:"label"`
	RelaxedTarget      float64 `json:"relaxed_target" yaml:"relaxed_target"`
	RelaxedTolerance   float64 `json:"relaxed_tolerance" yaml:"relaxed_tolerance"`
	StretchedTarget    float64 `json:"stretched_target" yaml:"stretched_target"`
	StretchedTolerance float64 `json:"stretched_tolerance" yaml:"stretched_tolerance"`
}

// AnalysisConfig is the full declarative input of an analysis run.
// Immutable once loaded.
type AnalysisConfig struct {
	HomePosition             float64
	HomeTolerance            float64
	HomeMotorIDs             []int
	RequireHomePositionMatch bool
	ReportMotorIDs           []int
	MinSegmentSamples        int
	ActuatedMotors           []MotorConfig
}

// ValidationError reports a malformed or incomplete configuration. It is
// always produced before any dataset is touched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// raw mirrors the on-disk document. Pointer fields distinguish "absent"
// from zero values so required fields can be enforced.
type rawConfig struct {
	HomePosition             *float64   `json:"home_position" yaml:"home_position"`
	HomeTolerance            *float64   `json:"home_tolerance" yaml:"home_tolerance"`
	HomeMotorIDs             []int      `json:"home_motor_ids" yaml:"home_motor_ids"`
	RequireHomePositionMatch bool       `json:"require_home_position_match" yaml:"require_home_position_match"`
	ReportMotorIDs           []int      `json:"report_motor_ids" yaml:"report_motor_ids"`
	MinSegmentSamples        *int       `json:"min_segment_samples" yaml:"min_segment_samples"`
	ActuatedMotors           []rawMotor `json:"actuated_motors" yaml:"actuated_motors"`
}

type rawMotor struct {
	MotorID            *int     `json:"motor_id" yaml:"motor_id"`
	Label              string   `json:"label" yaml:"label"`
	RelaxedTarget      *float64 `json:"relaxed_target" yaml:"relaxed_target"`
	RelaxedTolerance   *float64 `json:"relaxed_tolerance" yaml:"relaxed_tolerance"`
	StretchedTarget    *float64 `json:"stretched_target" yaml:"stretched_target"`
	StretchedTolerance *float64 `json:"stretched_tolerance" yaml:"stretched_tolerance"`
}

// Load reads an analysis configuration from a JSON or YAML file, keyed by
// extension (.yaml/.yml use YAML, anything else JSON), and validates it.
func Load(path string) (*AnalysisConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, invalidf("config file not found: %s", path)
	}
	if info.IsDir() {
		return nil, invalidf("config path is not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	var raw rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, invalidf("invalid YAML: %v", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, invalidf("invalid JSON: %v", err)
		}
	}

	return raw.build()
}

func (r *rawConfig) build() (*AnalysisConfig, error) {
	if r.HomePosition == nil {
		return nil, invalidf("config is missing 'home_position'")
	}

	homeIDs, err := motorIDList(r.HomeMotorIDs, "home_motor_ids")
	if err != nil {
		return nil, err
	}

	homeTol := 0.0
	if r.HomeTolerance != nil {
		homeTol = *r.HomeTolerance
	}

	var reportIDs []int
	if len(r.ReportMotorIDs) > 0 {
		reportIDs, err = motorIDList(r.ReportMotorIDs, "report_motor_ids")
		if err != nil {
			return nil, err
		}
	} else {
		reportIDs = append(reportIDs, homeIDs...)
	}

	minSamples := 1
	if r.MinSegmentSamples != nil {
		minSamples = *r.MinSegmentSamples
	}
	if minSamples <= 0 {
		return nil, invalidf("'min_segment_samples' must be a positive integer")
	}

	if len(r.ActuatedMotors) == 0 {
		return nil, invalidf("config must include at least one entry in 'actuated_motors'")
	}
	motors := make([]MotorConfig, 0, len(r.ActuatedMotors))
	for i, m := range r.ActuatedMotors {
		motor, err := m.build(i)
		if err != nil {
			return nil, err
		}
		motors = append(motors, motor)
	}

	cfg := &AnalysisConfig{
		HomePosition:             *r.HomePosition,
		HomeTolerance:            homeTol,
		HomeMotorIDs:             homeIDs,
		RequireHomePositionMatch: r.RequireHomePositionMatch,
		ReportMotorIDs:           reportIDs,
		MinSegmentSamples:        minSamples,
		ActuatedMotors:           motors,
	}
	return cfg, cfg.Validate()
}

func (m *rawMotor) build(idx int) (MotorConfig, error) {
	missing := func(field string) (MotorConfig, error) {
		return MotorConfig{}, invalidf("actuated motor entry %d missing field: %s", idx+1, field)
	}
	switch {
	case m.MotorID == nil:
		return missing("motor_id")
	case m.RelaxedTarget == nil:
		return missing("relaxed_target")
	case m.RelaxedTolerance == nil:
		return missing("relaxed_tolerance")
	case m.StretchedTarget == nil:
		return missing("stretched_target")
	case m.StretchedTolerance == nil:
		return missing("stretched_tolerance")
	}

	label := m.Label
	if label == "" {
		label = fmt.Sprintf("M%d", *m.MotorID)
	}
	return MotorConfig{
		MotorID:            *m.MotorID,
		Label:              label,
		RelaxedTarget:      *m.RelaxedTarget,
		RelaxedTolerance:   *m.RelaxedTolerance,
		StretchedTarget:    *m.StretchedTarget,
		StretchedTolerance: *m.StretchedTolerance,
	}, nil
}

// motorIDList de-duplicates a motor id list preserving first occurrence.
func motorIDList(ids []int, field string) ([]int, error) {
	if len(ids) == 0 {
		return nil, invalidf("config field '%s' must be a non-empty list", field)
	}
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

// Validate enforces the structural invariants on a configuration built
// programmatically (loaded configs are validated on the way in).
func (c *AnalysisConfig) Validate() error {
	if len(c.HomeMotorIDs) == 0 {
		return invalidf("config field 'home_motor_ids' must be a non-empty list")
	}
	if len(c.ReportMotorIDs) == 0 {
		return invalidf("config must define at least one report motor id")
	}
	if c.MinSegmentSamples <= 0 {
		return invalidf("'min_segment_samples' must be a positive integer")
	}
	if len(c.ActuatedMotors) == 0 {
		return invalidf("config must include at least one entry in 'actuated_motors'")
	}
	return nil
}

// MotorByLabel returns the actuated motor with the given label, if any.
func (c *AnalysisConfig) MotorByLabel(label string) (MotorConfig, bool) {
	for _, m := range c.ActuatedMotors {
		if m.Label == label {
			return m, true
		}
	}
	return MotorConfig{}, false
}
