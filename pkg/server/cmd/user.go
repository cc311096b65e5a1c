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
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/log"
)

func userCreateCmd(args []string) {
	fs := setupFlagSet("create", "plume-server user create")

	username := fs.String("username", "", "Username (required)")
	email := fs.String("email", "", "User email address (required)")
	password := fs.String("password", "", "User password (required)")
	admin := fs.Bool("admin", false, "Grant the admin role")
	dbPath := fs.String("dbPath", "", "Path to SQLite database file (env: DB_PATH, default: $XDG_DATA_HOME/plume/server.db)")

	fs.Parse(args)

	requireString(fs, *username, "username")
	requireString(fs, *email, "email")
	requireString(fs, *password, "password")

	a, cleanup := setupApp(fs, *dbPath)
	defer cleanup()

	user, err := a.CreateUser(app.CreateUserParams{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		log.ErrorWrap(err, "creating user")
		os.Exit(1)
	}

	if *admin {
		if err := a.SetUserRole(user, database.RoleAdmin); err != nil {
			log.ErrorWrap(err, "granting admin role")
			os.Exit(1)
		}
	}

	fmt.Printf("User created successfully\n")
	fmt.Printf("Email: %s\n", *email)
}

func userRemoveCmd(args []string, stdin io.Reader) {
	fs := setupFlagSet("remove", "plume-server user remove")

	email := fs.String("email", "", "User email address (required)")
	dbPath := fs.String("dbPath", "", "Path to SQLite database file (env: DB_PATH, default: $XDG_DATA_HOME/plume/server.db)")

	fs.Parse(args)

	requireString(fs, *email, "email")

	a, cleanup := setupApp(fs, *dbPath)
	defer cleanup()

	user, err := a.GetUserByEmail(*email)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fmt.Printf("Error: user with email %s not found\n", *email)
		} else {
			log.ErrorWrap(err, "finding user")
		}
		os.Exit(1)
	}

	// Removal cascades to all of the user's novels and their contents.
	ok, err := confirm(stdin, fmt.Sprintf("Remove user %s and all their data?", *email))
	if err != nil {
		log.ErrorWrap(err, "getting confirmation")
		os.Exit(1)
	}
	if !ok {
		fmt.Println("Aborted by user")
		os.Exit(0)
	}

	if err := a.DeleteUser(user); err != nil {
		log.ErrorWrap(err, "removing user")
		os.Exit(1)
	}

	fmt.Printf("User removed successfully\n")
	fmt.Printf("Email: %s\n", *email)
}

func userResetPasswordCmd(args []string) {
	fs := setupFlagSet("reset-password", "plume-server user reset-password")

	email := fs.String("email", "", "User email address (required)")
	password := fs.String("password", "", "New password (required)")
	dbPath := fs.String("dbPath", "", "Path to SQLite database file (env: DB_PATH, default: $XDG_DATA_HOME/plume/server.db)")

	fs.Parse(args)

	requireString(fs, *email, "email")
	requireString(fs, *password, "password")

	a, cleanup := setupApp(fs, *dbPath)
	defer cleanup()

	user, err := a.GetUserByEmail(*email)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fmt.Printf("Error: user with email %s not found\n", *email)
		} else {
			log.ErrorWrap(err, "finding user")
		}
		os.Exit(1)
	}

	if err := a.UpdateUserPassword(user, *password); err != nil {
		log.ErrorWrap(err, "updating password")
		os.Exit(1)
	}

	fmt.Printf("Password reset successfully\n")
	fmt.Printf("Email: %s\n", *email)
}

func userCmd(args []string) {
	usage := `Usage:
  plume-server user [command]

Available commands:
  create: Create a new user
  remove: Remove a user and all their data
  reset-password: Reset a user's password`

	if len(args) < 1 {
		fmt.Println(usage)
		os.Exit(1)
	}

	subcommand := args[0]
	subArgs := []string{}
	if len(args) > 1 {
		subArgs = args[1:]
	}

	switch subcommand {
	case "create":
		userCreateCmd(subArgs)
	case "remove":
		userRemoveCmd(subArgs, os.Stdin)
	case "reset-password":
		userResetPasswordCmd(subArgs)
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", subcommand)
		fmt.Println(usage)
		os.Exit(1)
	}
}
