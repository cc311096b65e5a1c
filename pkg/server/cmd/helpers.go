/* Copyright 2025 Plume Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/clock"
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/config"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/log"
	"github.com/plumeapp/plume/pkg/server/mailer"
	"github.com/plumeapp/plume/pkg/server/token"
	"gorm.io/gorm"
)

// devAccessSecret and devRefreshSecret sign tokens when no secrets are
// configured outside production. Production refuses to start without
// real secrets.
const (
	devAccessSecret  = "plume-dev-access-secret"
	devRefreshSecret = "plume-dev-refresh-secret"
)

func initDB(cfg config.Config) *gorm.DB {
	db, err := database.Open(database.Config{
		Driver:   cfg.DB.Driver,
		Path:     cfg.DB.Path,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Name:     cfg.DB.Name,
	})
	if err != nil {
		panic(errors.Wrap(err, "opening database"))
	}

	database.InitSchema(db)

	return db
}

func getEmailBackend(cfg config.Config) mailer.Backend {
	defaultBackend, err := mailer.NewDefaultBackend(cfg.SMTP)
	if err != nil {
		log.Debug("SMTP not configured, using StdoutBackend for emails")
		return mailer.NewStdoutBackend()
	}

	log.Debug("Email backend configured")
	return defaultBackend
}

func newTokenSigner(cfg config.Config) *token.Signer {
	accessSecret := cfg.JWT.Secret
	refreshSecret := cfg.JWT.RefreshSecret
	if accessSecret == "" || refreshSecret == "" {
		log.Warn("JWT secrets not configured, using development secrets")
		accessSecret = devAccessSecret
		refreshSecret = devRefreshSecret
	}

	return &token.Signer{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	}
}

func initApp(cfg config.Config) app.App {
	db := initDB(cfg)

	return app.App{
		DB:                  db,
		Clock:               clock.New(),
		EmailBackend:        getEmailBackend(cfg),
		TokenSigner:         newTokenSigner(cfg),
		AppEnv:              cfg.AppEnv,
		Port:                cfg.Port,
		DisableRegistration: cfg.DisableRegistration,
	}
}

// printFlags prints flags with -- prefix for consistency with CLI
func printFlags(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Printf("  --%s", f.Name)

		name, usage := flag.UnquoteUsage(f)
		if name != "" {
			fmt.Printf(" %s", name)
		}
		fmt.Println()

		if usage != "" {
			fmt.Printf("    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Printf(" (default: %s)", f.DefValue)
			}
			fmt.Println()
		}
	})
}

// setupFlagSet creates a FlagSet with standard usage format
func setupFlagSet(name, usageCmd string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf(`Usage:
  %s [flags]

Flags:
`, usageCmd)
		printFlags(fs)
	}
	return fs
}

// requireString validates that a required string flag is not empty
func requireString(fs *flag.FlagSet, value, fieldName string) {
	if value == "" {
		fmt.Printf("Error: %s is required\n", fieldName)
		fs.Usage()
		os.Exit(1)
	}
}

// setupApp creates config, initializes the app, and returns a cleanup function
func setupApp(fs *flag.FlagSet, dbPath string) (*app.App, func()) {
	cfg, err := config.New(config.Params{
		DBPath: dbPath,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	a := initApp(cfg)
	cleanup := func() {
		sqlDB, err := a.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	return &a, cleanup
}

// confirm prompts for user input to confirm a choice
func confirm(r io.Reader, question string) (bool, error) {
	fmt.Printf("%s (y/N): ", question)

	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, "reading stdin")
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}
