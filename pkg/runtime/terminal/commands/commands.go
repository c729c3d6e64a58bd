package commands

import (
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
)

// Reporter renders a dashboard report
type Reporter interface {
	Handle(report *domain.Report) error
}

// Source hands out the dashboard built from the loaded configuration. It is
// only valid once the root command has run its pre-run hook.
type Source interface {
	Dashboard() *dashboard.Service
}
