package source

import (
	"errors"
	"fmt"

	"github.com/calebmrice/regulatory-mirror/internal/layers"
	"github.com/calebmrice/regulatory-mirror/internal/scoring"
)

// #region errors

var (
	// ErrUnknownEntity means the data source has no measurements for
	// the requested entity.
	ErrUnknownEntity = errors.New("source: unknown entity")

	// ErrUnknownMetric means the entity exists but carries no value for
	// the requested metric.
	ErrUnknownMetric = errors.New("source: unknown metric")

	// ErrUnknownLayer means the entity/metric pair carries no value for
	// the requested layer.
	ErrUnknownLayer = errors.New("source: unknown layer")
)

// #endregion errors

// #region interfaces

// Source is the single capability the engine requires of a measurement
// collaborator: one float in [0,1] per entity/metric pair. The engine
// never generates measurement values itself.
type Source interface {
	Measure(entity, metric string) (float64, error)
}

// LayerSource additionally resolves measurements within a named
// organizational layer, for layered drift analysis.
type LayerSource interface {
	Source
	MeasureLayer(entity, metric, layer string) (float64, error)
}

// #endregion interfaces

// #region collect

// Collect snapshots a source into an immutable measurement table for
// the given entities and metrics. Lookup misses abort the snapshot.
func Collect(src Source, entities, metrics []string) (scoring.MeasurementTable, error) {
	table := make(scoring.MeasurementTable, len(entities))
	for _, entity := range entities {
		row := make(map[string]float64, len(metrics))
		for _, metric := range metrics {
			v, err := src.Measure(entity, metric)
			if err != nil {
				return nil, fmt.Errorf("collect %s/%s: %w", entity, metric, err)
			}
			row[metric] = v
		}
		table[entity] = row
	}
	return table, nil
}

// CollectSeries snapshots a layered source into an ordered layer series
// for the given principles, reading the named metric across every layer.
func CollectSeries(src LayerSource, principles []string, metric string, layerNames []string) (layers.Series, error) {
	scores := make(map[string][]float64, len(principles))
	for _, p := range principles {
		row := make([]float64, 0, len(layerNames))
		for _, layer := range layerNames {
			v, err := src.MeasureLayer(p, metric, layer)
			if err != nil {
				return layers.Series{}, fmt.Errorf("collect %s/%s@%s: %w", p, metric, layer, err)
			}
			row = append(row, v)
		}
		scores[p] = row
	}
	return layers.Series{
		Layers:     append([]string{}, layerNames...),
		Principles: append([]string{}, principles...),
		Scores:     scores,
	}, nil
}

// #endregion collect
