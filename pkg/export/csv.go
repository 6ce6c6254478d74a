// Package export writes the run outputs as CSV tables for downstream
// dashboards and analytics.
package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"github.com/sxm-mobility/roadflow/pkg/assignment"
	"github.com/sxm-mobility/roadflow/pkg/scenario"
)

// RunParams are the assignment parameters echoed into every exported row so
// a table is interpretable on its own.
type RunParams struct {
	MSAIters int
	BPRAlpha float64
	BPRBeta  float64
}

// Summary is the one-row KPI record of a baseline run.
type Summary struct {
	Place       string  `json:"place"`
	NetworkType string  `json:"network_type"`
	MSAIters    int     `json:"msa_iters"`
	BPRAlpha    float64 `json:"bpr_alpha"`
	BPRBeta     float64 `json:"bpr_beta"`
	ODPairs     int     `json:"od_pairs"`
	Nodes       int     `json:"nodes"`
	Edges       int     `json:"edges"`
	TSTT        float64 `json:"tstt"`
	Delay       float64 `json:"delay"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteBottlenecks writes the ranked bottleneck table.
func WriteBottlenecks(path string, rows []assignment.BottleneckRow) error {
	header := []string{"u", "v", "key", "flow", "capacity", "v_c", "delay"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatInt(r.U, 10),
			strconv.FormatInt(r.V, 10),
			strconv.Itoa(int(r.Key)),
			formatFloat(r.Flow),
			formatFloat(r.Capacity),
			formatFloat(r.VC),
			formatFloat(r.Delay),
		})
	}
	return writeCSV(path, header, records)
}

// WriteSummary writes the one-row baseline KPI table.
func WriteSummary(path string, s Summary) error {
	header := []string{
		"place_query", "network_type", "msa_iters", "bpr_alpha", "bpr_beta",
		"od_pairs", "nodes", "edges", "tstt", "delay",
	}
	row := []string{
		s.Place,
		s.NetworkType,
		strconv.Itoa(s.MSAIters),
		formatFloat(s.BPRAlpha),
		formatFloat(s.BPRBeta),
		strconv.Itoa(s.ODPairs),
		strconv.Itoa(s.Nodes),
		strconv.Itoa(s.Edges),
		formatFloat(s.TSTT),
		formatFloat(s.Delay),
	}
	return writeCSV(path, header, [][]string{row})
}

// ScenarioRow is one scenario outcome compared against the baseline.
// DelayImprovement is positive when the scenario reduces delay.
type ScenarioRow struct {
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	TSTT             float64 `json:"tstt"`
	Delay            float64 `json:"delay"`
	DeltaTSTT        float64 `json:"delta_tstt"`
	DeltaDelay       float64 `json:"delta_delay"`
	BaselineTSTT     float64 `json:"baseline_tstt"`
	BaselineDelay    float64 `json:"baseline_delay"`
	ODPairs          int     `json:"od_pairs"`
	MSAIters         int     `json:"msa_iters"`
	BPRAlpha         float64 `json:"bpr_alpha"`
	BPRBeta          float64 `json:"bpr_beta"`
	DelayImprovement float64 `json:"delay_improvement"`
}

// BuildScenarioRows turns runner results into reporting rows ranked by delay
// improvement, biggest win first.
func BuildScenarioRows(baseline scenario.Scores, results []scenario.Result, odPairs int, params RunParams) []ScenarioRow {
	rows := make([]ScenarioRow, 0, len(results))
	for _, res := range results {
		row := ScenarioRow{
			Name:          res.Scenario.Name(),
			Type:          res.Scenario.Type(),
			TSTT:          res.Scores.TSTT,
			Delay:         res.Scores.Delay,
			DeltaTSTT:     res.Scores.TSTT - baseline.TSTT,
			DeltaDelay:    res.Scores.Delay - baseline.Delay,
			BaselineTSTT:  baseline.TSTT,
			BaselineDelay: baseline.Delay,
			ODPairs:       odPairs,
			MSAIters:      params.MSAIters,
			BPRAlpha:      params.BPRAlpha,
			BPRBeta:       params.BPRBeta,
		}
		row.DelayImprovement = -row.DeltaDelay
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DelayImprovement > rows[j].DelayImprovement
	})
	return rows
}

// WriteScenarioResults writes the ranked scenario comparison table.
func WriteScenarioResults(path string, rows []ScenarioRow) error {
	header := []string{
		"scenario_name", "scenario_type", "tstt", "delay",
		"delta_tstt", "delta_delay", "baseline_tstt", "baseline_delay",
		"od_pairs", "msa_iters", "bpr_alpha", "bpr_beta", "delay_improvement",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Name,
			r.Type,
			formatFloat(r.TSTT),
			formatFloat(r.Delay),
			formatFloat(r.DeltaTSTT),
			formatFloat(r.DeltaDelay),
			formatFloat(r.BaselineTSTT),
			formatFloat(r.BaselineDelay),
			strconv.Itoa(r.ODPairs),
			strconv.Itoa(r.MSAIters),
			formatFloat(r.BPRAlpha),
			formatFloat(r.BPRBeta),
			formatFloat(r.DelayImprovement),
		})
	}
	return writeCSV(path, header, records)
}

// WriteScenarioDetails writes one row per scenario with its parameters as a
// JSON object (name and description excluded; keys sorted by the marshaller).
func WriteScenarioDetails(path string, scenarios []scenario.Scenario) error {
	header := []string{"scenario_name", "scenario_type", "description", "params_json"}
	records := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		params, err := json.Marshal(s.Params())
		if err != nil {
			return err
		}
		records = append(records, []string{
			s.Name(),
			s.Type(),
			s.Description(),
			string(params),
		})
	}
	return writeCSV(path, header, records)
}
