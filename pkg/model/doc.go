// Package model defines the typed data exchanged between the triage form, the
// remote prediction service and the two result views. The field catalog fixes
// which controls are read and how each one is coerced; PredictionRequest is
// the immutable payload built from a single snapshot; PredictionResponse
// mirrors the service wire contract (`{ok, top3, error}`) and Entry carries
// one ranked `(label, probability)` pair in the order the service returned it.
package model
