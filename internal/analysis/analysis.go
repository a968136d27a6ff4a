// Package analysis evaluates every active scenario in a configuration and
// produces the corresponding reports.
package analysis

import (
	"fmt"

	"github.com/mhollis/unit-economics/internal/config"
	"github.com/mhollis/unit-economics/internal/report"
	"github.com/mhollis/unit-economics/pkg/adapters"
	"go.uber.org/zap"
)

// GetReports processes the reports for all active scenarios.
func GetReports(logger *zap.Logger, conf config.Configuration) []report.Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	thresholds := adapters.ThresholdsFromConfig(conf.Thresholds)

	var results []report.Report
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "analysis.GetReports"),
			)
			continue
		}

		inputs := adapters.ScenarioToReportInputs(scenario)
		results = append(results, report.Build(logger, inputs, thresholds))
	}

	return results
}
