package support

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/weegigs/link-rest-go/lr"
)

type NullsConfig struct {
	Policy    string            `yaml:"policy"`
	Overrides map[string]string `yaml:"overrides"`
}

type RelationshipsConfig struct {
	Default   string            `yaml:"default"`
	Overrides map[string]string `yaml:"overrides"`
}

type RedactConfig struct {
	Mask       string   `yaml:"mask"`
	Properties []string `yaml:"properties"`
}

type TelemetryConfig struct {
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
	Team     string `yaml:"team"`
	Dataset  string `yaml:"dataset"`
}

// Config is the YAML form of an encoder service configuration.
type Config struct {
	Location       string              `yaml:"location"`
	FlushThreshold *int                `yaml:"flushThreshold"`
	Categories     map[string]string   `yaml:"categories"`
	Nulls          NullsConfig         `yaml:"nulls"`
	Relationships  RelationshipsConfig `yaml:"relationships"`
	Exclude        []string            `yaml:"exclude"`
	Redact         RedactConfig        `yaml:"redact"`
	Metadata       map[string]string   `yaml:"metadata"`
	Telemetry      TelemetryConfig     `yaml:"telemetry"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, errors.Wrap(err, "read configuration")
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, errors.Wrap(err, "parse configuration")
	}

	return cfg, nil
}

// LoadConfigurationFile reads path, or returns an empty configuration when path is empty.
func LoadConfigurationFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open configuration")
	}
	defer file.Close()

	return LoadConfiguration(file)
}

// Service builds an encoder service. options are applied after the configured ones.
func (c *Config) Service(options ...lr.ServiceOption) (*lr.EncoderService, error) {
	factoryOptions := []lr.FactoryOption{}
	if c.Location != "" {
		location, err := time.LoadLocation(c.Location)
		if err != nil {
			return nil, lr.InvalidConfiguration(err.Error())
		}
		factoryOptions = append(factoryOptions, lr.Location(location))
	}

	categories, err := c.categories()
	if err != nil {
		return nil, err
	}

	filters, err := c.filters()
	if err != nil {
		return nil, err
	}

	relationships, err := c.relationships()
	if err != nil {
		return nil, err
	}

	metadata, err := c.metadata()
	if err != nil {
		return nil, err
	}

	if c.FlushThreshold != nil {
		options = append([]lr.ServiceOption{lr.WithFlushThreshold(*c.FlushThreshold)}, options...)
	}

	return lr.NewEncoderService(
		filters,
		lr.NewAttributeEncoderFactory(categories, factoryOptions...),
		nil,
		relationships,
		metadata,
		options...,
	), nil
}

func (c *Config) categories() (map[lr.ValueType]lr.Category, error) {
	categories := make(map[lr.ValueType]lr.Category, len(c.Categories))
	for name, category := range c.Categories {
		vt, err := lr.ParseValueType(name)
		if err != nil {
			return nil, err
		}
		parsed, err := lr.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		categories[vt] = parsed
	}

	return categories, nil
}

func (c *Config) filters() ([]lr.EncoderFilter, error) {
	policy, err := lr.ParseNullPolicy(c.Nulls.Policy)
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]lr.NullPolicy, len(c.Nulls.Overrides))
	for name, p := range c.Nulls.Overrides {
		parsed, err := lr.ParseNullPolicy(p)
		if err != nil {
			return nil, err
		}
		overrides[name] = parsed
	}

	// excluded properties never reach the null policy
	var filters []lr.EncoderFilter
	if len(c.Exclude) > 0 {
		filters = append(filters, lr.Exclude(c.Exclude...))
	}
	filters = append(filters, lr.Nulls(policy, overrides))
	if len(c.Redact.Properties) > 0 {
		mask := c.Redact.Mask
		if mask == "" {
			mask = "***"
		}
		filters = append(filters, lr.Redact(mask, c.Redact.Properties...))
	}

	return filters, nil
}

func (c *Config) relationships() (lr.RelationshipMapper, error) {
	fallback := lr.Inline
	if c.Relationships.Default != "" {
		parsed, err := lr.ParseRepresentation(c.Relationships.Default)
		if err != nil {
			return nil, err
		}
		fallback = parsed
	}

	overrides := make(map[string]lr.Representation, len(c.Relationships.Overrides))
	for key, name := range c.Relationships.Overrides {
		parsed, err := lr.ParseRepresentation(name)
		if err != nil {
			return nil, err
		}
		overrides[key] = parsed
	}

	return lr.NewRelationshipMapper(fallback, overrides), nil
}

var metadataEncoders = map[string]lr.PropertyMetadataEncoder{
	"type-hints":        lr.TypeHints,
	"property-metadata": lr.PropertyMetadata,
}

func (c *Config) metadata() (map[string]lr.PropertyMetadataEncoder, error) {
	metadata := make(map[string]lr.PropertyMetadataEncoder, len(c.Metadata))
	for key, name := range c.Metadata {
		encoder, ok := metadataEncoders[name]
		if !ok {
			return nil, lr.InvalidConfiguration("unknown metadata encoder " + name)
		}
		metadata[key] = encoder
	}

	return metadata, nil
}
