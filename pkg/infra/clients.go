package infra

import (
	"github.com/secmon-lab/vulntrend/pkg/domain/interfaces"
)

type Clients struct {
	store    interfaces.ArtifactStore
	charts   interfaces.ChartRenderer
	reporter interfaces.ReportRenderer
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) ArtifactStore() interfaces.ArtifactStore {
	return x.store
}

func (x *Clients) ChartRenderer() interfaces.ChartRenderer {
	return x.charts
}

func (x *Clients) ReportRenderer() interfaces.ReportRenderer {
	return x.reporter
}

func WithArtifactStore(store interfaces.ArtifactStore) Option {
	return func(x *Clients) {
		x.store = store
	}
}

func WithChartRenderer(charts interfaces.ChartRenderer) Option {
	return func(x *Clients) {
		x.charts = charts
	}
}

func WithReportRenderer(reporter interfaces.ReportRenderer) Option {
	return func(x *Clients) {
		x.reporter = reporter
	}
}
