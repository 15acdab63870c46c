package source

import "fmt"

// #region table

// Table is an in-memory Source and LayerSource. Value generation is a
// fixture concern: tests and seed tooling populate tables, the engine
// only reads them.
type Table struct {
	flat    map[string]map[string]float64
	layered map[string]map[string]map[string]float64
}

// NewTable returns an empty in-memory measurement table.
func NewTable() *Table {
	return &Table{
		flat:    make(map[string]map[string]float64),
		layered: make(map[string]map[string]map[string]float64),
	}
}

// Set records a flat entity/metric measurement.
func (t *Table) Set(entity, metric string, value float64) {
	row, ok := t.flat[entity]
	if !ok {
		row = make(map[string]float64)
		t.flat[entity] = row
	}
	row[metric] = value
}

// SetLayer records a layered entity/metric measurement.
func (t *Table) SetLayer(entity, metric, layer string, value float64) {
	byMetric, ok := t.layered[entity]
	if !ok {
		byMetric = make(map[string]map[string]float64)
		t.layered[entity] = byMetric
	}
	byLayer, ok := byMetric[metric]
	if !ok {
		byLayer = make(map[string]float64)
		byMetric[metric] = byLayer
	}
	byLayer[layer] = value
}

// #endregion table

// #region measure

// Measure implements Source.
func (t *Table) Measure(entity, metric string) (float64, error) {
	row, ok := t.flat[entity]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	v, ok := row[metric]
	if !ok {
		return 0, fmt.Errorf("%w: %q for entity %q", ErrUnknownMetric, metric, entity)
	}
	return v, nil
}

// MeasureLayer implements LayerSource.
func (t *Table) MeasureLayer(entity, metric, layer string) (float64, error) {
	byMetric, ok := t.layered[entity]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	byLayer, ok := byMetric[metric]
	if !ok {
		return 0, fmt.Errorf("%w: %q for entity %q", ErrUnknownMetric, metric, entity)
	}
	v, ok := byLayer[layer]
	if !ok {
		return 0, fmt.Errorf("%w: %q for %s/%s", ErrUnknownLayer, layer, entity, metric)
	}
	return v, nil
}

// #endregion measure
