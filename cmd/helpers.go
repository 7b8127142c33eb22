package main

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/compliance-hub/internal/registry"
	"github.com/sells-group/compliance-hub/internal/report"
	"github.com/sells-group/compliance-hub/internal/store"
)

// openStore opens the configured backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// newBuilder wires the registry and store into a report builder.
func newBuilder(ctx context.Context) (*report.Builder, store.Store, *registry.Registry, error) {
	reg, err := registry.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return report.NewBuilder(st, reg), st, reg, nil
}

// outputWriter returns stdout or the given file. The caller must call the
// returned closer.
func outputWriter(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create %s", path)
	}
	return f, f.Close, nil
}

func newFormatter() *report.Formatter {
	return report.NewFormatter(cfg.Report.Locale, cfg.Report.Currency)
}
