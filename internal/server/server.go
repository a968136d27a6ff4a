package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mhollis/unit-economics/internal/analysis"
	"github.com/mhollis/unit-economics/internal/config"
	"github.com/mhollis/unit-economics/internal/metrics"
	"github.com/mhollis/unit-economics/internal/report"
	"github.com/mhollis/unit-economics/pkg/constants"
	"github.com/mhollis/unit-economics/pkg/format"
	"github.com/mhollis/unit-economics/pkg/output"
	"github.com/mhollis/unit-economics/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the web UI and metrics API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Metrics API endpoint for form-driven evaluations
	mux.HandleFunc("/api/metrics", h.handleMetrics)

	// Metrics API endpoint for YAML config uploads
	mux.HandleFunc("/api/metrics/upload", h.handleMetricsUpload)

	// Scenario planning endpoint (baseline + percentage deltas)
	mux.HandleFunc("/api/scenario", h.handleScenario)

	// Config serialization endpoint for downloads
	mux.HandleFunc("/api/export", h.handleConfigExport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type metricsResponse struct {
	Scenarios  []string               `json:"scenarios"`
	Reports    []reportPayload        `json:"reports"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

// reportPayload mirrors report.Report with JSON-safe numbers: the Inf and
// NaN sentinels cannot be encoded as JSON floats, so unbounded or undefined
// values carry a nil pointer plus a display string.
type reportPayload struct {
	Name            string           `json:"name"`
	LTV             *float64         `json:"ltv,omitempty"`
	LTVDisplay      string           `json:"ltvDisplay"`
	ARPULTV         *float64         `json:"arpuLtv,omitempty"`
	CAC             float64          `json:"cac"`
	Ratio           *float64         `json:"ratio,omitempty"`
	RatioDisplay    string           `json:"ratioDisplay"`
	PaybackMonths   *float64         `json:"paybackMonths,omitempty"`
	PaybackDisplay  string           `json:"paybackDisplay"`
	PaybackBand     string           `json:"paybackBand"`
	MonthlyRevenue  float64          `json:"monthlyRevenue"`
	AnnualRevenue   float64          `json:"annualRevenue"`
	MonthlyROI      float64          `json:"monthlyRoi"`
	LifespanYears   *float64         `json:"lifespanYears,omitempty"`
	LifespanDisplay string           `json:"lifespanDisplay"`
	Tier            string           `json:"tier"`
	Status          string           `json:"status"`
	Actions         []string         `json:"actions"`
	Churn           *churnPayload    `json:"churn,omitempty"`
	Insights        []insightPayload `json:"insights,omitempty"`
	Scenario        *scenarioPayload `json:"scenario,omitempty"`
	Gauge           report.GaugeSpec `json:"gauge"`
	Warnings        []string         `json:"warnings,omitempty"`
}

type churnPayload struct {
	MonthlyRatePct  float64  `json:"monthlyRatePct"`
	AnnualRatePct   float64  `json:"annualRatePct"`
	LifespanYears   *float64 `json:"lifespanYears,omitempty"`
	LifespanDisplay string   `json:"lifespanDisplay"`
}

type insightPayload struct {
	Metric  string  `json:"metric"`
	RatePct float64 `json:"ratePct"`
	Band    string  `json:"band"`
	Message string  `json:"message"`
}

type scenarioPayload struct {
	NewLTV         *float64 `json:"newLtv,omitempty"`
	NewLTVDisplay  string   `json:"newLtvDisplay"`
	NewCAC         float64  `json:"newCac"`
	NewRatio       *float64 `json:"newRatio,omitempty"`
	RatioDisplay   string   `json:"newRatioDisplay"`
	RatioChangePct *float64 `json:"ratioChangePct,omitempty"`
}

func (h *handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), "server.handleMetrics")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode payload: %v", err), "server.handleMetrics")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	// A bare scenario object is wrapped into a single-scenario configuration
	// so the form can post either shape.
	configPayload := payload
	if _, hasScenarios := payload["scenarios"]; !hasScenarios {
		if rawScenario, ok := payload["scenario"]; ok {
			scenarioMap, ok := rawScenario.(map[string]interface{})
			if !ok {
				h.respondError(w, http.StatusBadRequest, "invalid scenario payload: expected object", "server.handleMetrics")
				return
			}
			if _, ok := scenarioMap["name"]; !ok {
				scenarioMap["name"] = "Form"
			}
			scenarioMap["active"] = true
			configPayload = map[string]interface{}{"scenarios": []interface{}{scenarioMap}}
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleMetrics")
		return
	}

	h.runEvaluation(w, configBytes, start, "server.handleMetrics")
}

func (h *handler) handleMetricsUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}
	if err := r.ParseMultipartForm(h.maxRequestSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxRequestSize), "server.handleMetricsUpload")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleMetricsUpload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleMetricsUpload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleMetricsUpload"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleMetricsUpload")
		return
	}

	h.runEvaluation(w, buf.Bytes(), start, "server.handleMetricsUpload")
}

func (h *handler) runEvaluation(w http.ResponseWriter, configBytes []byte, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	results := analysis.GetReports(h.logger, *cfg)

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	elapsed := time.Since(start)

	response := metricsResponse{
		Scenarios:  extractScenarioNames(results),
		Reports:    buildReportPayloads(results),
		CSV:        output.CsvString(results),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("metrics computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

type scenarioRequest struct {
	BaseLTV              float64 `json:"baseLtv"`
	BaseCAC              float64 `json:"baseCac"`
	PurchaseValuePercent float64 `json:"purchaseValuePercent"`
	CACPercent           float64 `json:"cacPercent"`
	RetentionPercent     float64 `json:"retentionPercent"`
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}

	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode payload: %v", err), "server.handleScenario")
		return
	}

	baseline := metrics.Baseline{
		LTV: validation.ClampNonNegative(req.BaseLTV),
		CAC: validation.ClampNonNegative(req.BaseCAC),
	}
	adjustment := metrics.ScenarioAdjustment{
		PurchaseValuePct: validation.ClampPurchaseValuePct(req.PurchaseValuePercent),
		CACPct:           validation.ClampCACPct(req.CACPercent),
		RetentionPct:     validation.ClampRetentionPct(req.RetentionPercent),
	}

	adjusted := metrics.ApplyScenario(baseline, adjustment)
	currentRatio := metrics.Ratio(baseline.LTV, baseline.CAC)
	newRatio := metrics.Ratio(adjusted.LTV, adjusted.CAC)

	payload := scenarioPayload{
		NewLTV:        floatPtr(adjusted.LTV),
		NewLTVDisplay: format.Currency(adjusted.LTV),
		NewCAC:        adjusted.CAC,
		NewRatio:      floatPtr(newRatio),
		RatioDisplay:  format.Ratio(newRatio),
	}
	if currentRatio > 0 && !math.IsInf(currentRatio, 1) && !math.IsInf(newRatio, 1) {
		change := (newRatio/currentRatio - 1) * constants.PercentageMultiplier
		payload.RatioChangePct = &change
	}

	h.writeJSON(w, http.StatusOK, payload)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "thresholds"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("metrics request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func extractScenarioNames(results []report.Report) []string {
	names := make([]string, 0, len(results))
	for _, result := range results {
		names = append(names, result.Name)
	}
	return names
}

func buildReportPayloads(results []report.Report) []reportPayload {
	payloads := make([]reportPayload, 0, len(results))
	for _, r := range results {
		payload := reportPayload{
			Name:            r.Name,
			LTV:             floatPtr(r.LTV),
			LTVDisplay:      currencyDisplay(r.LTV),
			ARPULTV:         r.ARPULTV,
			CAC:             r.CAC,
			Ratio:           floatPtr(r.Ratio),
			RatioDisplay:    format.Ratio(r.Ratio),
			PaybackMonths:   floatPtr(r.PaybackMonths),
			PaybackDisplay:  format.Months(r.PaybackMonths),
			PaybackBand:     r.PaybackBand.String(),
			MonthlyRevenue:  r.MonthlyRevenue,
			AnnualRevenue:   r.AnnualRevenue,
			MonthlyROI:      r.MonthlyROI,
			LifespanYears:   floatPtr(r.LifespanYears),
			LifespanDisplay: format.Years(r.LifespanYears),
			Tier:            r.Tier.String(),
			Status:          r.Status,
			Actions:         r.Actions,
			Gauge:           r.Gauge,
			Warnings:        r.Warnings,
		}

		if r.Churn != nil {
			payload.Churn = &churnPayload{
				MonthlyRatePct:  r.Churn.MonthlyRate * constants.PercentageMultiplier,
				AnnualRatePct:   r.Churn.AnnualRate * constants.PercentageMultiplier,
				LifespanYears:   floatPtr(r.Churn.LifespanYears),
				LifespanDisplay: format.Years(r.Churn.LifespanYears),
			}
		}

		for _, insight := range r.Insights {
			payload.Insights = append(payload.Insights, insightPayload{
				Metric:  insight.Metric,
				RatePct: insight.RatePct,
				Band:    insight.Band.String(),
				Message: insight.Message,
			})
		}

		if r.Scenario != nil {
			sp := &scenarioPayload{
				NewLTV:        floatPtr(r.Scenario.NewLTV),
				NewLTVDisplay: currencyDisplay(r.Scenario.NewLTV),
				NewCAC:        r.Scenario.NewCAC,
				NewRatio:      floatPtr(r.Scenario.NewRatio),
				RatioDisplay:  format.Ratio(r.Scenario.NewRatio),
			}
			if r.Scenario.RatioChangeKnown {
				change := r.Scenario.RatioChangePct
				sp.RatioChangePct = &change
			}
			payload.Scenario = sp
		}

		payloads = append(payloads, payload)
	}
	return payloads
}

// floatPtr returns a pointer to v, or nil when v is a non-finite sentinel
// that JSON cannot encode.
func floatPtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func currencyDisplay(v float64) string {
	if math.IsInf(v, 1) {
		return format.Infinity
	}
	return format.Currency(v)
}
