package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"
)

var (
	ErrConfigFailedToSetDefaults = errors.New("error occurred while setting defaults")
	ErrConfigPath                = errors.New("config path error")
	ErrConfigFailedToDump        = errors.New("failed to dump config")
)

const envPrefix = "CHAINSTATE"

// Load builds the configuration from the defaults, an optional config.yaml in one of the given directories and
// CHAINSTATE_ prefixed environment variables, in increasing order of precedence.
func Load(configFileDirs ...string) (*ChainStateConfig, error) {
	viper.Reset()

	chainStateConfig := getDefaultChainStateConfig()

	err := setDefaults(chainStateConfig)
	if err != nil {
		return nil, err
	}

	err = overrideWithFiles(configFileDirs...)
	if err != nil {
		return nil, err
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.Unmarshal(chainStateConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if chainStateConfig.Tracing != nil {
		chainStateConfig.Tracing.KeyValueAttributes = keyValueAttributes(chainStateConfig.Tracing.Attributes)
	}

	return chainStateConfig, nil
}

func setDefaults(defaultConfig *ChainStateConfig) error {
	defaultsMap := make(map[string]interface{})

	if err := mapstructure.Decode(defaultConfig, &defaultsMap); err != nil {
		err = errors.Join(ErrConfigFailedToSetDefaults, err)
		return err
	}

	for key, value := range defaultsMap {
		viper.SetDefault(key, value)
	}

	return nil
}

func overrideWithFiles(configFileDirs ...string) error {
	if len(configFileDirs) == 0 || configFileDirs[0] == "" {
		return nil
	}

	for _, path := range configFileDirs {
		stat, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Join(ErrConfigPath, fmt.Errorf("path: %s does not exist", path))
			}
			return err
		}
		if !stat.IsDir() {
			return errors.Join(ErrConfigPath, fmt.Errorf("path: %s should be a directory", path))
		}

		viper.AddConfigPath(path)
	}

	return viper.ReadInConfig()
}

// DumpConfig writes the effective configuration of the last Load to the given file as YAML.
func DumpConfig(configFile string) error {
	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return errors.Join(ErrConfigFailedToDump, err)
	}

	err = os.WriteFile(configFile, data, 0o600)
	if err != nil {
		return errors.Join(ErrConfigFailedToDump, err)
	}

	return nil
}

func keyValueAttributes(attributes map[string]string) []attribute.KeyValue {
	if len(attributes) == 0 {
		return nil
	}

	kv := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kv = append(kv, attribute.String(key, value))
	}

	return kv
}
