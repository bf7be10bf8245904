package manager

import (
	"context"
	"fmt"

	"penguind/internal/pipeline"
	"penguind/pkg/types"
)

// Predict runs the active pipeline on one feature record and returns the
// label together with the name of the model that produced it. The active
// model can change between requests; the returned pair is taken from a
// single snapshot so the two always correspond.
func (m *Manager) Predict(ctx context.Context, rec types.FeatureRecord) (types.PredictResponse, error) {
	m.mu.RLock()
	active := m.active
	m.mu.RUnlock()
	if active == nil {
		return types.PredictResponse{}, notReadyError{}
	}
	if err := ctx.Err(); err != nil {
		return types.PredictResponse{}, err
	}
	label, err := active.pipe.Predict(featureRow(rec))
	if err != nil {
		return types.PredictResponse{}, fmt.Errorf("predict with model %s: %w", active.name, err)
	}
	return types.PredictResponse{Prediction: label, ModelUsed: active.name}, nil
}

// featureRow converts a feature record into the single tabular row shape
// pipelines expect, preserving field names exactly as declared. Omitted
// optional fields become nil; imputation and encoding belong to the
// pipeline, never to this facade.
func featureRow(rec types.FeatureRecord) pipeline.Row {
	row := pipeline.Row{
		"island":            rec.Island,
		"bill_length_mm":    nil,
		"bill_depth_mm":     nil,
		"flipper_length_mm": nil,
		"body_mass_g":       nil,
		"sex":               nil,
		"year":              rec.Year,
	}
	if rec.BillLengthMM != nil {
		row["bill_length_mm"] = *rec.BillLengthMM
	}
	if rec.BillDepthMM != nil {
		row["bill_depth_mm"] = *rec.BillDepthMM
	}
	if rec.FlipperLengthMM != nil {
		row["flipper_length_mm"] = *rec.FlipperLengthMM
	}
	if rec.BodyMassG != nil {
		row["body_mass_g"] = *rec.BodyMassG
	}
	if rec.Sex != nil {
		row["sex"] = *rec.Sex
	}
	return row
}
