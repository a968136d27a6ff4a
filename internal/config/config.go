// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/mhollis/unit-economics/pkg/configprocessor"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for unit-economics.
type Configuration struct {
	Scenarios  []Scenario
	Thresholds ThresholdsConfig `yaml:"thresholds,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ThresholdsConfig optionally overrides the insight classifier cutoffs.
// Zero values fall back to the defaults.
type ThresholdsConfig struct {
	RetentionLow float64 `yaml:"retentionLow,omitempty"`
	RetentionMid float64 `yaml:"retentionMid,omitempty"`
	UpsellLow    float64 `yaml:"upsellLow,omitempty"`
	UpsellMid    float64 `yaml:"upsellMid,omitempty"`
	ReferralLow  float64 `yaml:"referralLow,omitempty"`
	ReferralMid  float64 `yaml:"referralMid,omitempty"`
}

// Scenario holds one named set of business inputs to evaluate.
type Scenario struct {
	Name   string
	Active bool

	LTV        LTVConfig
	ARPU       *ARPUConfig       `yaml:"arpu,omitempty"`
	CAC        CACConfig         `yaml:"cac"`
	Churn      *ChurnConfig      `yaml:"churn,omitempty"`
	Insights   *InsightsConfig   `yaml:"insights,omitempty"`
	Adjustment *AdjustmentConfig `yaml:"adjustment,omitempty"`
}

// LTVConfig holds the purchase-based lifetime value inputs. When UseChurn is
// set the lifespan is derived from MonthlyChurnPercent instead of
// LifespanYears; the two sources are mutually exclusive.
type LTVConfig struct {
	AvgPurchaseValue    float64 `yaml:"avgPurchaseValue"`
	PurchaseFrequency   float64 `yaml:"purchaseFrequency"`
	LifespanYears       float64 `yaml:"lifespanYears,omitempty"`
	UseChurn            bool    `yaml:"useChurn,omitempty"`
	MonthlyChurnPercent float64 `yaml:"monthlyChurnPercent,omitempty"`
}

// ARPUConfig holds the optional subscription-style LTV inputs.
type ARPUConfig struct {
	MonthlyRevenue      float64 `yaml:"monthlyRevenue"`
	MonthlyChurnPercent float64 `yaml:"monthlyChurnPercent"`
	GrossMarginPercent  float64 `yaml:"grossMarginPercent"`
}

// CACConfig holds the customer acquisition cost inputs.
type CACConfig struct {
	MarketingSpend float64          `yaml:"marketingSpend"`
	NewCustomers   float64          `yaml:"newCustomers"`
	Period         string           `yaml:"period,omitempty"` // monthly, annual
	Breakdown      *BreakdownConfig `yaml:"breakdown,omitempty"`
}

// BreakdownConfig itemizes the marketing spend.
type BreakdownConfig struct {
	AdSpend  float64 `yaml:"adSpend"`
	TeamCost float64 `yaml:"teamCost"`
	ToolCost float64 `yaml:"toolCost"`
}

// ChurnConfig holds the churn analysis inputs. Method selects which count
// applies: "lostCustomers" uses LostCustomers, "startEnd" uses EndCustomers.
type ChurnConfig struct {
	Method         string  `yaml:"method"`
	StartCustomers float64 `yaml:"startCustomers"`
	LostCustomers  float64 `yaml:"lostCustomers,omitempty"`
	EndCustomers   float64 `yaml:"endCustomers,omitempty"`
}

// InsightsConfig holds the rate percentages for the insight classifiers.
type InsightsConfig struct {
	RetentionPercent float64 `yaml:"retentionPercent"`
	UpsellPercent    float64 `yaml:"upsellPercent"`
	ReferralPercent  float64 `yaml:"referralPercent"`
}

// AdjustmentConfig holds the signed percentage deltas for scenario planning.
type AdjustmentConfig struct {
	PurchaseValuePercent float64 `yaml:"purchaseValuePercent,omitempty"`
	CACPercent           float64 `yaml:"cacPercent,omitempty"`
	RetentionPercent     float64 `yaml:"retentionPercent,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory reader. Used by the HTTP server for request payloads.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var scenarios []configprocessor.ScenarioInfo
	for _, scenario := range c.Scenarios {
		info := configprocessor.ScenarioInfo{
			Name:           scenario.Name,
			Active:         scenario.Active,
			MarketingSpend: scenario.CAC.MarketingSpend,
			Period:         scenario.CAC.Period,
		}

		info.Percents = append(info.Percents,
			configprocessor.PercentField{Name: "ltv.monthlyChurnPercent", Value: scenario.LTV.MonthlyChurnPercent},
		)
		info.Amounts = append(info.Amounts,
			configprocessor.AmountField{Name: "ltv.avgPurchaseValue", Value: scenario.LTV.AvgPurchaseValue},
			configprocessor.AmountField{Name: "ltv.purchaseFrequency", Value: scenario.LTV.PurchaseFrequency},
			configprocessor.AmountField{Name: "ltv.lifespanYears", Value: scenario.LTV.LifespanYears},
			configprocessor.AmountField{Name: "cac.marketingSpend", Value: scenario.CAC.MarketingSpend},
			configprocessor.AmountField{Name: "cac.newCustomers", Value: scenario.CAC.NewCustomers},
		)

		if scenario.ARPU != nil {
			info.Percents = append(info.Percents,
				configprocessor.PercentField{Name: "arpu.monthlyChurnPercent", Value: scenario.ARPU.MonthlyChurnPercent},
				configprocessor.PercentField{Name: "arpu.grossMarginPercent", Value: scenario.ARPU.GrossMarginPercent},
			)
			info.Amounts = append(info.Amounts,
				configprocessor.AmountField{Name: "arpu.monthlyRevenue", Value: scenario.ARPU.MonthlyRevenue},
			)
		}

		if scenario.CAC.Breakdown != nil {
			info.HasBreakdown = true
			info.BreakdownTotal = scenario.CAC.Breakdown.AdSpend +
				scenario.CAC.Breakdown.TeamCost + scenario.CAC.Breakdown.ToolCost
		}

		if scenario.Churn != nil {
			info.ChurnMethod = scenario.Churn.Method
			info.Amounts = append(info.Amounts,
				configprocessor.AmountField{Name: "churn.startCustomers", Value: scenario.Churn.StartCustomers},
				configprocessor.AmountField{Name: "churn.lostCustomers", Value: scenario.Churn.LostCustomers},
				configprocessor.AmountField{Name: "churn.endCustomers", Value: scenario.Churn.EndCustomers},
			)
		}

		if scenario.Insights != nil {
			info.Percents = append(info.Percents,
				configprocessor.PercentField{Name: "insights.retentionPercent", Value: scenario.Insights.RetentionPercent},
				configprocessor.PercentField{Name: "insights.upsellPercent", Value: scenario.Insights.UpsellPercent},
				configprocessor.PercentField{Name: "insights.referralPercent", Value: scenario.Insights.ReferralPercent},
			)
		}

		scenarios = append(scenarios, info)
	}

	processor := configprocessor.NewProcessor()
	return processor.ValidateScenarios(scenarios)
}
