package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

var actionKey = attribute.Key("action")

// NewPrometheus installs a prometheus-backed global meter provider. The
// returned exporter serves /metrics.
func NewPrometheus() (*prometheus.Exporter, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, err
	}
	global.SetMeterProvider(exporter.MeterProvider())

	return exporter, nil
}

// Recorder counts domain events. A nil Recorder records nothing.
type Recorder struct {
	reactions metric.Int64Counter
	created   metric.Int64Counter
	deleted   metric.Int64Counter
}

func NewRecorder(meter metric.Meter) *Recorder {
	m := metric.Must(meter)

	return &Recorder{
		reactions: m.NewInt64Counter(
			"articles/reactions",
			metric.WithDescription("Count of applied reactions, by action"),
		),
		created: m.NewInt64Counter(
			"articles/created",
			metric.WithDescription("Count of created articles"),
		),
		deleted: m.NewInt64Counter(
			"articles/deleted",
			metric.WithDescription("Count of deleted articles"),
		),
	}
}

func (r *Recorder) Reaction(ctx context.Context, action string) {
	if r == nil {
		return
	}
	r.reactions.Add(ctx, 1, actionKey.String(action))
}

func (r *Recorder) ArticleCreated(ctx context.Context) {
	if r == nil {
		return
	}
	r.created.Add(ctx, 1)
}

func (r *Recorder) ArticleDeleted(ctx context.Context) {
	if r == nil {
		return
	}
	r.deleted.Add(ctx, 1)
}
