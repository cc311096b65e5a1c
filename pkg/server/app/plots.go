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

package app

import (
	"errors"
	"slices"

	pkgErrors "github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/server/database"
	"github.com/plumeapp/plume/pkg/server/helpers"
	"gorm.io/gorm"
)

// UpsertPlotParams is the parameters for creating or replacing a plot
type UpsertPlotParams struct {
	StructureType string
	PlotPoints    database.Document
}

func validateUpsertPlotParams(p UpsertPlotParams) error {
	v := &ValidationError{}

	if !slices.Contains(database.PlotStructureTypes, p.StructureType) {
		v.Add("structure_type", "invalid structure_type")
	}
	if p.PlotPoints == nil {
		v.Add("plot_points", "plot_points is required")
	}

	if v.HasErrors() {
		return v
	}

	return nil
}

// UpsertPlot creates the plot of a novel, or replaces it if one already
// exists. A novel has at most one plot. The returned flag reports whether
// a new row was created.
func (a *App) UpsertPlot(novel database.Novel, p UpsertPlotParams) (database.Plot, bool, error) {
	if err := validateUpsertPlotParams(p); err != nil {
		return database.Plot{}, false, err
	}

	var plot database.Plot
	err := a.DB.Where("novel_id = ?", novel.ID).First(&plot).Error
	if err == nil {
		plot.StructureType = p.StructureType
		plot.PlotPoints = p.PlotPoints
		if err := a.DB.Save(&plot).Error; err != nil {
			return plot, false, pkgErrors.Wrap(err, "saving plot")
		}

		return plot, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Plot{}, false, pkgErrors.Wrap(err, "finding plot")
	}

	uuid, err := helpers.GenUUID()
	if err != nil {
		return database.Plot{}, false, err
	}

	plot = database.Plot{
		UUID:          uuid,
		NovelID:       novel.ID,
		StructureType: p.StructureType,
		PlotPoints:    p.PlotPoints,
	}
	if err := a.DB.Create(&plot).Error; err != nil {
		return plot, false, pkgErrors.Wrap(err, "inserting plot")
	}

	return plot, true, nil
}

// GetPlotByNovel returns the plot of the given novel
func (a *App) GetPlotByNovel(novelID int) (database.Plot, error) {
	var plot database.Plot
	err := a.DB.Where("novel_id = ?", novelID).First(&plot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Plot{}, ErrNotFound
	} else if err != nil {
		return database.Plot{}, pkgErrors.Wrap(err, "finding plot")
	}

	return plot, nil
}

// GetPlotByUUID returns the plot with the given uuid
func (a *App) GetPlotByUUID(uuid string) (database.Plot, error) {
	var plot database.Plot
	err := a.DB.Where("uuid = ?", uuid).First(&plot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Plot{}, ErrNotFound
	} else if err != nil {
		return database.Plot{}, pkgErrors.Wrap(err, "finding plot")
	}

	return plot, nil
}

// DeletePlot deletes a plot
func (a *App) DeletePlot(plot database.Plot) error {
	if err := a.DB.Delete(&plot).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting plot")
	}

	return nil
}
