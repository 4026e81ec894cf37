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

package cmd

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rpsplus/internal/util"
	rpsplus "laptudirm.com/x/rpsplus/pkg/common"
	"laptudirm.com/x/rpsplus/pkg/game"
	"laptudirm.com/x/rpsplus/pkg/judge"
	"laptudirm.com/x/rpsplus/pkg/play"
)

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a session against the bot",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts an interactive session. Type one move per
			line, in any words you like, and the judge decides the round.
			Type quit to end the session and see the final result.

			The judge is a Gemini model, which needs an API key in the
			GOOGLE_API_KEY environment variable or a .env file. With
			--offline, rounds are decided by a built-in referee instead.

			Settings are read from rpsplus/config.yaml in the XDG config
			directories, then from RPSPLUS_* environment variables, and
			finally from the flags.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	playFlags(cmd)
	return cmd
}

func playFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("offline", false, "Judge rounds with the built-in referee")
	flags.String("model", judge.DefaultModel, "Gemini model used as the judge")
	flags.Duration("timeout", judge.DefaultConfig.Timeout, "Time limit of a single judge call")
	flags.Int("retries", judge.DefaultConfig.Retries, "Extra attempts after a failed judge call")
	flags.Int64("seed", 0, "Seed of the bot's moves (0 for a random seed)")
	flags.String("config", "", "Path of the configuration file")
}

func run(cmd *cobra.Command) error {
	config, err := configure(cmd)
	if err != nil {
		return err
	}

	model, err := newModel(cmd, config)
	if err != nil {
		return err
	}

	oracle := judge.New(model, config.Judge())
	session := play.New(oracle, game.NewBot(config.Seed))
	oracle.Logger = session.Logger
	session.Spinner = util.NewSpinner(cmd.ErrOrStderr(), " judging...")

	session.Logger.WithFields(logrus.Fields{
		"offline": config.Offline,
		"model":   config.Model,
	}).Debug("Starting session")

	return session.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

// configure loads the configuration and applies the flags given on the
// command line on top of it.
func configure(cmd *cobra.Command) (rpsplus.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	config, err := rpsplus.LoadConfig(path)
	if err != nil {
		return config, err
	}

	if flags.Changed("offline") {
		config.Offline, _ = flags.GetBool("offline")
	}

	if flags.Changed("model") {
		config.Model, _ = flags.GetString("model")
	}

	if flags.Changed("timeout") {
		config.Timeout, _ = flags.GetDuration("timeout")
	}

	if flags.Changed("retries") {
		config.Retries, _ = flags.GetInt("retries")
	}

	if flags.Changed("seed") {
		config.Seed, _ = flags.GetInt64("seed")
	}

	return config, config.Validate()
}

func newModel(cmd *cobra.Command, config rpsplus.Config) (judge.Model, error) {
	if config.Offline {
		logrus.Info("Playing offline, rounds are judged by the built-in referee")
		return judge.Referee{}, nil
	}

	if config.APIKey == "" {
		return nil, errors.New(heredoc.Docf(`no API key for the judge found
			Set %s or run with --offline.`, rpsplus.EnvAPIKey))
	}

	model, err := judge.NewGemini(cmd.Context(), config.APIKey, config.Model, config.Temperature)
	if err != nil {
		return nil, fmt.Errorf("judge: %w", err)
	}

	return model, nil
}
