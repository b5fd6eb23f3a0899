package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"pos/internal/loyalty"
)

const loyaltyEnvPrefix = "LOYALTY_"

var loyaltyEnvKeys = map[string]string{
	"LOYALTY_RATE_UNITS":  "rate.unitsOfCurrency",
	"LOYALTY_RATE_POINTS": "rate.pointsPerUnit",
}

// LoadLoyalty reads the points policy from a yaml file, then applies
// LOYALTY_RATE_UNITS and LOYALTY_RATE_POINTS overrides. A missing file
// keeps the defaults.
func LoadLoyalty(path string) (loyalty.Config, error) {
	return loadLoyalty(path, os.Environ)
}

func loadLoyalty(path string, environ func() []string) (loyalty.Config, error) {
	cfg := loyalty.DefaultConfig()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, errors.Wrapf(err, "read loyalty config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return cfg, errors.Wrapf(err, "stat loyalty config %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:      loyaltyEnvPrefix,
		EnvironFunc: environ,
		TransformFunc: func(key, value string) (string, any) {
			mapped, ok := loyaltyEnvKeys[strings.ToUpper(key)]
			if !ok {
				return "", nil
			}
			return mapped, strings.TrimSpace(value)
		},
	}), nil); err != nil {
		return cfg, errors.Wrap(err, "load loyalty env")
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return cfg, errors.Wrap(err, "unmarshal loyalty config")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, errors.Wrap(err, "invalid loyalty config")
	}
	return cfg, nil
}
