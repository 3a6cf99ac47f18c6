/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/tonalring/ring/workspace"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

// Config is ringctl's configuration.
//
// Values come from defaults, then the YAML file, then RING_*
// environment variables, then flags.
type Config struct {
	TonalCenter       int   `yaml:"tonalCenter" env:"RING_TONAL_CENTER"`
	LowestNoteOrdinal int   `yaml:"lowestNoteOrdinal" env:"RING_LOWEST_NOTE"`
	AnimationMs       int   `yaml:"animationMs" env:"RING_ANIMATION_MS"`
	Structures        []int `yaml:"structures" env:"RING_STRUCTURES" envSeparator:","`
	Active            int   `yaml:"active" env:"RING_ACTIVE"`
	Debug             bool  `yaml:"debug" env:"RING_DEBUG"`

	// Store is a BoltDB filename for snapshots.
	Store string `yaml:"store" env:"RING_STORE"`
}

// DefaultConfig matches workspace.DefaultConfig.
func DefaultConfig() *Config {
	wc := workspace.DefaultConfig()
	return &Config{
		TonalCenter:       wc.TonalCenter,
		LowestNoteOrdinal: wc.LowestNoteOrdinal,
		AnimationMs:       int(wc.AnimationDuration / time.Millisecond),
		Structures:        wc.Structures,
		Active:            wc.Active,
		Store:             "ring.db",
	}
}

// LoadConfig reads the given YAML file (if filename isn't empty)
// over the defaults and then applies the environment.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if filename != "" {
		bs, err := ioutil.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err = yaml.Unmarshal(bs, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", filename, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// AddFlags declares the flags that can override a Config.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "YAML config file")
	fs.Int("tonal-center", 0, "tonal center note id (0 is C)")
	fs.Int("lowest-note", 0, "lowest note ordinal")
	fs.Int("animation-ms", 0, "rotation animation duration in milliseconds")
	fs.IntSlice("structures", nil, "interval set binaries, bottom first")
	fs.Int("active", 0, "index of the active structure (negative for none)")
	fs.Bool("debug", false, "debug logging")
	fs.String("store", "", "BoltDB file for snapshots")
}

// ApplyFlags copies the flags that were given into cfg.
func (cfg *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, f func() error) {
		if err == nil && fs.Changed(name) {
			err = f()
		}
	}
	set("tonal-center", func() (e error) { cfg.TonalCenter, e = fs.GetInt("tonal-center"); return })
	set("lowest-note", func() (e error) { cfg.LowestNoteOrdinal, e = fs.GetInt("lowest-note"); return })
	set("animation-ms", func() (e error) { cfg.AnimationMs, e = fs.GetInt("animation-ms"); return })
	set("structures", func() (e error) { cfg.Structures, e = fs.GetIntSlice("structures"); return })
	set("active", func() (e error) { cfg.Active, e = fs.GetInt("active"); return })
	set("debug", func() (e error) { cfg.Debug, e = fs.GetBool("debug"); return })
	set("store", func() (e error) { cfg.Store, e = fs.GetString("store"); return })
	return err
}

// Workspace converts a Config into what workspace.New wants.
func (cfg *Config) Workspace() workspace.Config {
	return workspace.Config{
		TonalCenter:       cfg.TonalCenter,
		LowestNoteOrdinal: cfg.LowestNoteOrdinal,
		Structures:        append([]int(nil), cfg.Structures...),
		Active:            cfg.Active,
		AnimationDuration: time.Duration(cfg.AnimationMs) * time.Millisecond,
		Debug:             cfg.Debug,
	}
}
