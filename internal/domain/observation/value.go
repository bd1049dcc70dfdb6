package observation

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog"

	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
	"github.com/ayusovnc/fhir-demo/pkg/fhirmodels"
)

// CoerceValue turns the raw quantity text of a result into a Quantity when
// it is a finite decimal and into a String value otherwise. The text is
// parsed as is, so blank input and surrounding whitespace fall back to a
// String value too. A failed parse is a data-quality event: it is logged and
// mapping continues.
func CoerceValue(recordID int, quantity, unit string, logger zerolog.Logger) Value {
	d, _, err := apd.NewFromString(quantity)
	if err != nil || d.Form != apd.Finite {
		logger.Warn().
			Int("record_id", recordID).
			Str("quantity", quantity).
			Str("unit", unit).
			Msg("lab result quantity is not numeric, using text value")
		return StringValue(quantity)
	}

	return QuantityValue(unitQuantity(d, unit))
}

func unitQuantity(d *apd.Decimal, unit string) fhir.Quantity {
	q := fhir.Quantity{Value: d, Unit: unit, Code: unit}
	if unit != "" {
		q.System = fhirmodels.SystemUCUM
	}
	return q
}

// boundQuantity converts a stored range bound. ok is false when the float
// is not representable as a decimal (NaN, Inf).
func boundQuantity(f float64, unit string) (*fhir.Quantity, bool) {
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil || d.Form != apd.Finite {
		return nil, false
	}
	q := unitQuantity(d, unit)
	return &q, true
}
