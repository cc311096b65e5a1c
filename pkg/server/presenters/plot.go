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

package presenters

import (
	"time"

	"github.com/plumeapp/plume/pkg/server/database"
)

// Plot is a result of PresentPlot
type Plot struct {
	ID            string            `json:"id"`
	NovelID       string            `json:"novel_id"`
	StructureType string            `json:"structure_type"`
	PlotPoints    database.Document `json:"plot_points"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// PresentPlot presents a plot under its novel
func PresentPlot(plot database.Plot, novel database.Novel) Plot {
	return Plot{
		ID:            plot.UUID,
		NovelID:       novel.UUID,
		StructureType: plot.StructureType,
		PlotPoints:    plot.PlotPoints,
		CreatedAt:     FormatTS(plot.CreatedAt),
		UpdatedAt:     FormatTS(plot.UpdatedAt),
	}
}
