// Package valuation computes per-entity fair values from the models
// declared in the registry. Inputs are other entities' live values; a
// model never substitutes a default for a missing input.
package valuation

import (
	"context"
	"fmt"
	"math"

	"github.com/macrowatch/macrowatch/internal/registry"
)

// InputResolver supplies the live numeric value of an entity. The
// second return is false when the entity cannot currently be resolved
// to a number.
type InputResolver interface {
	NumericValue(ctx context.Context, key string) (float64, bool)
}

// Result is the outcome of one fair-value computation. Either the
// numeric fields or the error fields are set, never both.
type Result struct {
	Model     string   `json:"model"`
	FairValue *float64 `json:"fair_value,omitempty"`
	Gap       *float64 `json:"gap,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Signal    string   `json:"signal,omitempty"`
	Message   string   `json:"message,omitempty"`
	Err       string   `json:"error,omitempty"`
	Missing   []string `json:"missing,omitempty"`
}

// The fixed foreign-inflation proxy for the relative PPP model (US CPI
// running assumption).
const foreignInflationProxy = 2.5

// Engine dispatches fair-value models over registry specs.
type Engine struct {
	reg    *registry.Registry
	inputs InputResolver
}

// New builds the valuation engine.
func New(reg *registry.Registry, inputs InputResolver) *Engine {
	return &Engine{reg: reg, inputs: inputs}
}

// FairValue computes the fair value of key given its current reading.
// Entities without a valuation spec return nil. Missing inputs yield
// an error payload naming exactly the inputs that could not be
// resolved.
func (e *Engine) FairValue(ctx context.Context, key string, current float64) *Result {
	ent, err := e.reg.Resolve(key)
	if err != nil || ent.Valuation == nil {
		return nil
	}
	spec := ent.Valuation

	vals := make(map[string]float64, len(spec.Inputs))
	var missing []string
	for _, in := range spec.Inputs {
		v, ok := e.inputs.NumericValue(ctx, in)
		if !ok {
			missing = append(missing, in)
			continue
		}
		vals[in] = v
	}

	switch spec.Model {
	case registry.ModelPPP:
		return e.ppp(vals, missing)
	case registry.ModelSovereignSpread:
		return e.sovereignSpread(current, vals, missing)
	case registry.ModelERPYield:
		return e.erpYield(vals, missing)
	default:
		return nil
	}
}

func (e *Engine) ppp(vals map[string]float64, missing []string) *Result {
	model := registry.ModelPPP.String()
	if len(missing) > 0 {
		return &Result{Model: model, Err: "waiting for inputs", Missing: missing}
	}

	diff := vals["cpi_yoy"] - foreignInflationProxy
	signal := "Overvalued"
	if diff > 0 {
		signal = "Undervalued"
	}
	return &Result{
		Model:   model,
		Signal:  signal,
		Message: fmt.Sprintf("Inflation Gap (%+.1f%%)", diff),
	}
}

func (e *Engine) sovereignSpread(current float64, vals map[string]float64, missing []string) *Result {
	model := registry.ModelSovereignSpread.String()
	if len(missing) > 0 {
		return &Result{Model: model, Err: "waiting for inputs", Missing: missing}
	}

	fairYield := round2(vals["us_10y"] + vals["cds"]/100.0)
	gap := round2(current - fairYield)
	return &Result{
		Model:     model,
		FairValue: &fairYield,
		Gap:       &gap,
		Message:   fmt.Sprintf("Fair Yield: %.2f%%", fairYield),
	}
}

func (e *Engine) erpYield(vals map[string]float64, missing []string) *Result {
	model := registry.ModelERPYield.String()
	if pe, ok := vals["pe"]; ok && pe <= 0 {
		missing = append(missing, "pe")
		delete(vals, "pe")
	}
	if len(missing) > 0 {
		return &Result{Model: model, Err: "waiting for inputs", Missing: missing}
	}

	earningsYield := 100.0 / vals["pe"]
	erp := round2(earningsYield - vals["tr_10y"])
	return &Result{
		Model:   model,
		Value:   &erp,
		Message: fmt.Sprintf("ERP: %+.1f%%", erp),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
