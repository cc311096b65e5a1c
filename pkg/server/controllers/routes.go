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

package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/app"
	mw "github.com/plumeapp/plume/pkg/server/middleware"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
}

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"POST", "/auth/register", c.Users.Register, true},
		{"POST", "/auth/login", c.Users.Login, true},
		{"POST", "/auth/refresh", c.Users.Refresh, true},
		{"GET", "/auth/profile", mw.Auth(a, c.Users.GetProfile), true},
		{"PUT", "/auth/profile", mw.Auth(a, c.Users.UpdateProfile), true},

		{"GET", "/novels", mw.Auth(a, c.Novels.Index), true},
		{"POST", "/novels", mw.Auth(a, c.Novels.Create), true},
		{"GET", "/novels/{novelUUID}", mw.Auth(a, c.Novels.Show), true},
		{"PUT", "/novels/{novelUUID}", mw.Auth(a, c.Novels.Update), true},
		{"DELETE", "/novels/{novelUUID}", mw.Auth(a, c.Novels.Delete), true},
		{"GET", "/novels/{novelUUID}/stats", mw.Auth(a, c.Novels.Stats), true},

		{"POST", "/characters", mw.Auth(a, c.Characters.Create), true},
		{"GET", "/characters/novel/{novelUUID}", mw.Auth(a, c.Characters.Index), true},
		{"GET", "/characters/{characterUUID}", mw.Auth(a, c.Characters.Show), true},
		{"PUT", "/characters/{characterUUID}", mw.Auth(a, c.Characters.Update), true},
		{"DELETE", "/characters/{characterUUID}", mw.Auth(a, c.Characters.Delete), true},

		{"POST", "/scenes", mw.Auth(a, c.Scenes.Create), true},
		{"GET", "/scenes/novel/{novelUUID}", mw.Auth(a, c.Scenes.Index), true},
		{"PUT", "/scenes/{sceneUUID}", mw.Auth(a, c.Scenes.Update), true},
		{"DELETE", "/scenes/{sceneUUID}", mw.Auth(a, c.Scenes.Delete), true},

		{"POST", "/plots", mw.Auth(a, c.Plots.Upsert), true},
		{"GET", "/plots/novel/{novelUUID}", mw.Auth(a, c.Plots.Show), true},
		{"DELETE", "/plots/{plotUUID}", mw.Auth(a, c.Plots.Delete), true},

		{"POST", "/notes", mw.Auth(a, c.Notes.Create), true},
		{"GET", "/notes/novel/{novelUUID}", mw.Auth(a, c.Notes.Index), true},
		{"PUT", "/notes/{noteUUID}", mw.Auth(a, c.Notes.Update), true},
		{"DELETE", "/notes/{noteUUID}", mw.Auth(a, c.Notes.Delete), true},

		{"POST", "/timelines/tracks", mw.Auth(a, c.Timelines.CreateTrack), true},
		{"GET", "/timelines/tracks/novel/{novelUUID}", mw.Auth(a, c.Timelines.IndexTracks), true},
		{"PUT", "/timelines/tracks/{trackUUID}", mw.Auth(a, c.Timelines.UpdateTrack), true},
		{"DELETE", "/timelines/tracks/{trackUUID}", mw.Auth(a, c.Timelines.DeleteTrack), true},
		{"POST", "/timelines/events", mw.Auth(a, c.Timelines.CreateEvent), true},
		{"GET", "/timelines/events/track/{trackUUID}", mw.Auth(a, c.Timelines.IndexEvents), true},
		{"PUT", "/timelines/events/{eventUUID}", mw.Auth(a, c.Timelines.UpdateEvent), true},
		{"DELETE", "/timelines/events/{eventUUID}", mw.Auth(a, c.Timelines.DeleteEvent), true},

		{"GET", "/admin/users", mw.AdminOnly(a, c.Admin.Index), true},
		{"GET", "/admin/users/stats", mw.AdminOnly(a, c.Admin.Stats), true},
		{"GET", "/admin/users/{userUUID}", mw.AdminOnly(a, c.Admin.Show), true},
		{"PATCH", "/admin/users/{userUUID}/status", mw.AdminOnly(a, c.Admin.SetStatus), true},
		{"DELETE", "/admin/users/{userUUID}", mw.AdminOnly(a, c.Admin.Delete), true},
	}
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	router.Handle("/health", mw.ApplyLimit(rc.Controllers.Health.Index, true)).Methods("GET")

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondErrorMessage(w, http.StatusNotFound, "not found")
	})

	return mw.Global(router), nil
}
