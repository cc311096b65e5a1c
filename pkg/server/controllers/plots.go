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
	"github.com/plumeapp/plume/pkg/server/app"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/permissions"
	"github.com/plumeapp/plume/pkg/server/presenters"
)

// NewPlots creates a new Plots controller
func NewPlots(app *app.App) *Plots {
	return &Plots{
		app: app,
	}
}

// Plots is a plots controller
type Plots struct {
	app *app.App
}

type plotPayload struct {
	NovelUUID     string            `json:"novel_id"`
	StructureType string            `json:"structure_type"`
	PlotPoints    database.Document `json:"plot_points"`
}

// Upsert handles POST /api/plots. A novel holds at most one plot, so a
// second post updates the existing row in place.
func (p *Plots) Upsert(w http.ResponseWriter, r *http.Request) {
	var payload plotPayload
	if err := parseRequestData(r, &payload); err != nil {
		handleError(w, "parsing payload", err)
		return
	}

	novel, ok := requireNovelAccess(p.app, w, r, payload.NovelUUID)
	if !ok {
		return
	}

	plot, created, err := p.app.UpsertPlot(novel, app.UpsertPlotParams{
		StructureType: payload.StructureType,
		PlotPoints:    payload.PlotPoints,
	})
	if err != nil {
		handleError(w, "upserting plot", err)
		return
	}

	if created {
		respondData(w, http.StatusCreated, "Plot created successfully", presenters.PresentPlot(plot, novel))
		return
	}

	respondData(w, http.StatusOK, "Plot updated successfully", presenters.PresentPlot(plot, novel))
}

// Show handles GET /api/plots/novel/{novelUUID}
func (p *Plots) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	novel, ok := requireNovelAccess(p.app, w, r, vars["novelUUID"])
	if !ok {
		return
	}

	plot, err := p.app.GetPlotByNovel(novel.ID)
	if err != nil {
		handleError(w, "finding plot", err)
		return
	}

	respondData(w, http.StatusOK, "", presenters.PresentPlot(plot, novel))
}

// Delete handles DELETE /api/plots/{plotUUID}
func (p *Plots) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	plot, err := p.app.GetPlotByUUID(vars["plotUUID"])
	if err != nil {
		handleError(w, "finding plot", err)
		return
	}

	if !requireChainAccess(p.app, w, r, permissions.NovelOwner, plot.NovelID) {
		return
	}

	if err := p.app.DeletePlot(plot); err != nil {
		handleError(w, "deleting plot", err)
		return
	}

	respondData(w, http.StatusOK, "Plot deleted successfully", nil)
}
