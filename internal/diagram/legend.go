package diagram

import "github.com/Conceptual-Machines/progression-wheel/internal/theory"

// LegendRow describes one chord of the progression for the legend
type LegendRow struct {
	Label       string         `json:"label"`
	Ordinal     int            `json:"ordinal"`
	Quality     theory.Quality `json:"quality"`
	QualityName string         `json:"quality_name"`
}

// BuildLegend returns one row per point, in progression order
func BuildLegend(points []LayoutPoint) []LegendRow {
	if len(points) == 0 {
		return nil
	}

	rows := make([]LegendRow, len(points))
	for i, p := range points {
		rows[i] = LegendRow{
			Label:       p.Label,
			Ordinal:     p.Ordinal,
			Quality:     p.Quality,
			QualityName: p.Quality.DisplayName(),
		}
	}
	return rows
}
