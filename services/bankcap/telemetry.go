package bankcap

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("largestbanks/services/bankcap")
var meter = otel.Meter("largestbanks/services/bankcap")

var recordsExtracted, _ = meter.Int64Counter(
	"bankcap.records_extracted",
	metric.WithDescription("rows read from the source table"),
)
var amountsMissing, _ = meter.Int64Counter(
	"bankcap.amounts_missing",
	metric.WithDescription("market caps that could not be read as a number"),
)
var rowsLoaded, _ = meter.Int64Counter(
	"bankcap.rows_loaded",
	metric.WithDescription("rows written to a sink"),
)
