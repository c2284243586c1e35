package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/solarsizer/internal/engine"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyCatalog    = "catalog"
	keyLogging    = "logging"
	keyOutput     = "output"
	keyServer     = "server"
	keyQuotes     = "quotes"
	keyExtraction = "extraction"
	keyBrands     = "brands"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyCatalog:    true,
	keyLogging:    true,
	keyOutput:     true,
	keyServer:     true,
	keyQuotes:     true,
	keyExtraction: true,
	keyBrands:     true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes one section into a fresh zero value and replaces
// the target field, so maps and slices are never merged element-wise.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyCatalog:
		var v engine.Catalog
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Catalog = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyServer:
		var v ServerConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Server = v
	case keyQuotes:
		var v QuotesConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Quotes = v
	case keyExtraction:
		var v ExtractionConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Extraction = v
	case keyBrands:
		var v map[string]BrandConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Brands = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
