package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// LimitsConfig is the single source of truth for every overflow
	// threshold. History of the project shows thresholds being re-tuned
	// many times - keeping them in one versioned object makes every tuning
	// pass auditable and reversible.
	LimitsConfig struct {
		HeightCeiling          int `yaml:"height_ceiling" validate:"min=1"`
		HeightBuffer           int `yaml:"height_buffer" validate:"gte=0"`
		SoftCountCeiling       int `yaml:"soft_count_ceiling" validate:"min=2"`
		HardCountCeiling       int `yaml:"hard_count_ceiling" validate:"min=2,gtefield=SoftCountCeiling"`
		ExtremeItemCharCeiling int `yaml:"extreme_item_char_ceiling" validate:"min=1"`
		TableRowLimit          int `yaml:"table_row_limit" validate:"min=1"`
		BoxCharBudget          int `yaml:"box_char_budget" validate:"min=8"`
	}

	// EstimatorConfig drives the character-count height heuristic. All
	// values are in canonical layout units, not pixels.
	EstimatorConfig struct {
		MainCharsPerLine    int `yaml:"main_chars_per_line" validate:"min=1"`
		MainLineHeight      int `yaml:"main_line_height" validate:"min=1"`
		SubCharsPerLine     int `yaml:"sub_chars_per_line" validate:"min=1"`
		SubLineHeight       int `yaml:"sub_line_height" validate:"min=1"`
		ItemSpacing         int `yaml:"item_spacing" validate:"gte=0"`
		ItemSpacingWithSubs int `yaml:"item_spacing_with_subs" validate:"gte=0"`
	}

	ParagraphConfig struct {
		CharThreshold     int `yaml:"char_threshold" validate:"min=1"`
		SentenceThreshold int `yaml:"sentence_threshold" validate:"min=1"`
		BulletCharBudget  int `yaml:"bullet_char_budget" validate:"min=8"`
		MaxBullets        int `yaml:"max_bullets" validate:"min=2"`
	}

	PaginationConfig struct {
		Limits    LimitsConfig    `yaml:"limits"`
		Estimator EstimatorConfig `yaml:"estimator"`
		Paragraph ParagraphConfig `yaml:"paragraph"`
	}

	DocumentConfig struct {
		// Language of deck content, used to pick sentence tokenizer model.
		Language              string `yaml:"language" validate:"required,bcp47_language_tag"`
		FileNameTransliterate bool   `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Document   DocumentConfig   `yaml:"document"`
		Pagination PaginationConfig `yaml:"pagination"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
