// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rpsplus

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"laptudirm.com/x/rpsplus/pkg/judge"
)

// Environment variables read by LoadConfig.
const (
	EnvAPIKey  = "GOOGLE_API_KEY"
	EnvModel   = "RPSPLUS_MODEL"
	EnvTimeout = "RPSPLUS_TIMEOUT"
	EnvRetries = "RPSPLUS_RETRIES"
	EnvSeed    = "RPSPLUS_SEED"
	EnvOffline = "RPSPLUS_OFFLINE"
)

type Config struct {
	// The Gemini model used as the judge.
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`

	// Oracle call policy.
	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`
	Backoff time.Duration `yaml:"backoff"`

	// Seed of the bot's moves, 0 picks one from the clock.
	Seed int64 `yaml:"seed"`

	// Judge rounds with the built-in referee instead of a model.
	Offline bool `yaml:"offline"`

	// Credential of the Gemini API. Only ever read from the environment.
	APIKey string `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Model:   judge.DefaultModel,
		Timeout: judge.DefaultConfig.Timeout,
		Retries: judge.DefaultConfig.Retries,
		Backoff: judge.DefaultConfig.Backoff,
	}
}

// LoadConfig builds the configuration from its defaults, the given YAML file
// and the environment, later sources overriding earlier ones. An empty path
// looks the file up with FindConfig, and a missing file is not an error.
// The result still needs to be checked with Validate.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = FindConfig()
	}

	if path != "" {
		if err := config.readFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := config.readEnv(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (config *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config %s: %w", path, err)
	}

	return nil
}

func (config *Config) readEnv() error {
	config.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))

	if model := os.Getenv(EnvModel); model != "" {
		config.Model = model
	}

	if timeout := os.Getenv(EnvTimeout); timeout != "" {
		duration, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		config.Timeout = duration
	}

	if retries := os.Getenv(EnvRetries); retries != "" {
		n, err := strconv.Atoi(retries)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetries, err)
		}
		config.Retries = n
	}

	if seed := os.Getenv(EnvSeed); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		config.Seed = n
	}

	if offline := os.Getenv(EnvOffline); offline != "" {
		enabled, err := strconv.ParseBool(offline)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOffline, err)
		}
		config.Offline = enabled
	}

	return nil
}

// Validate reports the first setting which can not be used.
func (config Config) Validate() error {
	switch {
	case config.Timeout <= 0:
		return fmt.Errorf("config: timeout must be positive, got %s", config.Timeout)
	case config.Retries < 0:
		return fmt.Errorf("config: retries can not be negative, got %d", config.Retries)
	case config.Backoff < 0:
		return fmt.Errorf("config: backoff can not be negative, got %s", config.Backoff)
	case !config.Offline && config.Model == "":
		return errors.New("config: no model given")
	}

	return nil
}

// Judge returns the oracle call policy of the configuration.
func (config Config) Judge() judge.Config {
	return judge.Config{
		Timeout: config.Timeout,
		Retries: config.Retries,
		Backoff: config.Backoff,
	}
}
