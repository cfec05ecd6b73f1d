package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itohio/pmactab/pkg/errs"
)

// Config represents the application configuration.
type Config struct {
	Motor     MotorConfig     `yaml:"motor"`
	Table     TableConfig     `yaml:"table"`
	Data      DataConfig      `yaml:"data"`
	Output    OutputConfig    `yaml:"output"`
	Synthetic SyntheticConfig `yaml:"synthetic"`
}

// MotorConfig contains the motor parameters used by the derivation.
type MotorConfig struct {
	PolePairs        int     `yaml:"pole_pairs"`
	StatorResistance float64 `yaml:"stator_resistance"` // Ohm, zero is allowed
	Ke               float64 `yaml:"ke"`                // Back-EMF constant, V_rms,LL/krpm (0 = unknown)
	PsiPM            float64 `yaml:"psi_pm"`            // Magnet flux linkage, Wb (0 = derive from Ke)
}

// TableConfig contains lookup table generation parameters.
type TableConfig struct {
	Size       int      `yaml:"size"`
	MaxCurrent float64  `yaml:"max_current"` // A peak
	Quantities []string `yaml:"quantities"`  // psi_d, psi_q, ld, lq, torque
	Workers    int      `yaml:"workers"`     // 0 or 1 = serial
	UseIndex   bool     `yaml:"use_index"`   // k-d tree radius queries
}

// DataConfig describes where measurements come from and how CSV headers map
// onto sample fields.
type DataConfig struct {
	Path           string        `yaml:"path"`
	Columns        ColumnsConfig `yaml:"columns"`
	AverageSamples int           `yaml:"average_samples"` // Trailing moving average window (0 = disabled)
}

// ColumnsConfig maps CSV header names to sample fields.
type ColumnsConfig struct {
	Time     string `yaml:"time"`
	Speed    string `yaml:"speed"`
	Torque   string `yaml:"torque"`
	VoltageD string `yaml:"voltage_d"`
	VoltageQ string `yaml:"voltage_q"`
	CurrentD string `yaml:"current_d"`
	CurrentQ string `yaml:"current_q"`
}

// OutputConfig controls what the generator writes.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Plots      bool   `yaml:"plots"`
	PlotFormat string `yaml:"plot_format"` // png, svg or pdf
}

// SyntheticConfig describes the motor model used to fabricate a test log.
type SyntheticConfig struct {
	Ld         float64 `yaml:"ld"`          // H
	Lq         float64 `yaml:"lq"`          // H
	PsiPM      float64 `yaml:"psi_pm"`      // Wb
	SpeedRPM   float64 `yaml:"speed_rpm"`   // Mechanical speed
	MaxCurrent float64 `yaml:"max_current"` // A peak
	Steps      int     `yaml:"steps"`       // Operating points per current axis
	Noise      float64 `yaml:"noise"`       // Voltage noise, V peak (standard deviation)
	Seed       uint64  `yaml:"seed"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Motor: MotorConfig{
			PolePairs:        4,
			StatorResistance: 0.1,
		},
		Table: TableConfig{
			Size:       20,
			MaxCurrent: 100,
			Quantities: []string{"psi_d", "psi_q"},
			Workers:    1,
		},
		Data: DataConfig{
			Path: "sample_data/sample.csv",
			Columns: ColumnsConfig{
				Time:     "time_s",
				Speed:    "speed_rpm",
				Torque:   "torque_nm",
				VoltageD: "ud_vpk",
				VoltageQ: "uq_vpk",
				CurrentD: "id_apk",
				CurrentQ: "iq_apk",
			},
		},
		Output: OutputConfig{
			Dir:        "out",
			Plots:      true,
			PlotFormat: "png",
		},
		Synthetic: SyntheticConfig{
			Ld:         0.0004,
			Lq:         0.0009,
			PsiPM:      0.05,
			SpeedRPM:   1500,
			MaxCurrent: 120,
			Steps:      13,
			Noise:      0.05,
			Seed:       1,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errs.Wrap(err, errs.KindConfig, "config.Load", "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errs.Wrap(err, errs.KindConfig, "config.Load", "failed to parse config file")
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the values that would otherwise fail deep inside the
// pipeline. Motor and table parameters are validated again by the packages
// that consume them.
func (c *Config) Validate() error {
	const op = "config.Validate"

	if c.Motor.PolePairs <= 0 {
		return errs.New(errs.KindConfig, op, "motor.pole_pairs must be positive, got %d", c.Motor.PolePairs)
	}
	if c.Motor.StatorResistance < 0 {
		return errs.New(errs.KindConfig, op, "motor.stator_resistance must not be negative, got %g", c.Motor.StatorResistance)
	}
	if c.Table.Size <= 0 {
		return errs.New(errs.KindConfig, op, "table.size must be positive, got %d", c.Table.Size)
	}
	if c.Table.MaxCurrent <= 0 {
		return errs.New(errs.KindConfig, op, "table.max_current must be positive, got %g", c.Table.MaxCurrent)
	}
	if c.Table.Workers < 0 {
		return errs.New(errs.KindConfig, op, "table.workers must not be negative, got %d", c.Table.Workers)
	}
	if c.Data.AverageSamples < 0 {
		return errs.New(errs.KindConfig, op, "data.average_samples must not be negative, got %d", c.Data.AverageSamples)
	}
	switch c.Output.PlotFormat {
	case "png", "svg", "pdf":
	default:
		return errs.New(errs.KindConfig, op, "output.plot_format %q is not one of png, svg, pdf", c.Output.PlotFormat)
	}

	return nil
}

// ensureDefaults fills names and lists left empty in the file. Load decodes
// over Default(), so numeric keys that are absent already hold defaults and
// an explicit zero is kept for Validate to judge.
func (c *Config) ensureDefaults() {
	def := Default()

	if len(c.Table.Quantities) == 0 {
		c.Table.Quantities = def.Table.Quantities
	}

	cols := &c.Data.Columns
	if cols.Time == "" {
		cols.Time = def.Data.Columns.Time
	}
	if cols.Speed == "" {
		cols.Speed = def.Data.Columns.Speed
	}
	if cols.Torque == "" {
		cols.Torque = def.Data.Columns.Torque
	}
	if cols.VoltageD == "" {
		cols.VoltageD = def.Data.Columns.VoltageD
	}
	if cols.VoltageQ == "" {
		cols.VoltageQ = def.Data.Columns.VoltageQ
	}
	if cols.CurrentD == "" {
		cols.CurrentD = def.Data.Columns.CurrentD
	}
	if cols.CurrentQ == "" {
		cols.CurrentQ = def.Data.Columns.CurrentQ
	}

	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
	if c.Output.PlotFormat == "" {
		c.Output.PlotFormat = def.Output.PlotFormat
	}
}
