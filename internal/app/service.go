package app

import (
	"time"

	"reqtxt/internal/adapters"
	"reqtxt/internal/policies"
	"reqtxt/internal/ports"
)

// Service bundles the ports and policy a parse run needs. Fields are
// exported so tests and embedders can swap individual collaborators.
type Service struct {
	Content  ports.ContentProvider
	Grammar  ports.SpecifierGrammar
	Names    ports.NameNormalizer
	Warnings ports.WarningsSink
	Merge    ports.OptionMergePort
	Report   ports.ReportPort
	Clock    func() time.Time
}

// Config selects the adapter wiring for NewService. Zero values mean
// accumulate merge semantics, remote fetch enabled and adapter defaults
// for the HTTP tuning knobs.
type Config struct {
	MergeStrategy    string
	DisableRemote    bool
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
	HTTPCacheSize    int
}

func NewService(cfg Config) (Service, error) {
	policy, err := policies.NewOptionMergePolicy(cfg.MergeStrategy)
	if err != nil {
		return Service{}, err
	}
	var remote ports.ContentProvider
	if !cfg.DisableRemote {
		httpContent, err := adapters.NewHTTPContentAdapter(cfg.HTTPTimeoutSec, cfg.HTTPRetries, cfg.HTTPRetryDelayMs, cfg.HTTPCacheSize)
		if err != nil {
			return Service{}, err
		}
		remote = httpContent
	}
	return Service{
		Content:  adapters.NewContentRouterAdapter(adapters.NewFileContentAdapter(), remote),
		Grammar:  adapters.NewPEP508GrammarAdapter(),
		Names:    adapters.NewPEP503NormalizerAdapter(),
		Warnings: adapters.NewZerologWarningsAdapter(),
		Merge:    policy,
		Report:   adapters.NewReportWriterAdapter(),
		Clock:    time.Now,
	}, nil
}
