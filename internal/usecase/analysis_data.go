package usecase

import (
	"math"
	"sort"
	"time"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

// Paleta usada quando o workflow não manda cor; atribuída pelo índice do item.
var analysisPalette = []string{
	"#50C878", "#4B7BFF", "#FF4B4B", "#FFB84D", "#9D4EDD",
	"#06D6A0", "#F72585", "#4CC9F0", "#FB8500", "#219EBC",
}

var analysisSections = []string{
	"summary", "score", "recommendations",
	"sentiment_trends", "ranking_data", "share_of_rank", "overall_sentiment",
	"competitor_analysis", "strategic_insights", "prompt_analysis",
}

type DataMetrics struct {
	LLMsAnalyzed       []string `json:"llms_analyzed"`
	CompetitorsFound   []string `json:"competitors_found"`
	TemporalDataMonths int      `json:"temporal_data_months"`
	PromptsAnalyzed    []string `json:"prompts_analyzed"`
	CompletenessScore  int      `json:"completeness_score"`
	SectionsComplete   []string `json:"sections_complete"`
	SectionsPartial    []string `json:"sections_partial"`
	SectionsMissing    []string `json:"sections_missing"`
}

// ProcessAnalysisData preenche cores e seções ausentes. Chaves desconhecidas
// passam intactas. Devolve também os concorrentes encontrados.
func ProcessAnalysisData(data entity.AnalysisData) (entity.AnalysisData, []string) {
	processed := make(entity.AnalysisData, len(data)+8)
	for k, v := range data {
		processed[k] = v
	}
	competitors := extractCompetitors(data)

	if items, ok := processed["overall_sentiment"].([]any); ok {
		processed["overall_sentiment"] = fillColors(items)
	}

	for _, key := range []string{"sentiment_trends", "ranking_data", "share_of_rank", "overall_sentiment"} {
		if !truthy(processed[key]) {
			processed[key] = []any{}
		}
	}

	competitorAnalysis := objectOrEmpty(processed["competitor_analysis"])
	if items, ok := competitorAnalysis["market_share"].([]any); ok {
		competitorAnalysis["market_share"] = fillColors(items)
	}
	defaultKeys(competitorAnalysis, []any{}, "market_share", "strengths", "weaknesses", "opportunities")
	processed["competitor_analysis"] = competitorAnalysis

	insights := objectOrEmpty(processed["strategic_insights"])
	defaultKeys(insights, []any{}, "key_insights", "action_items", "growth_opportunities", "competitive_threats")
	processed["strategic_insights"] = insights

	prompts := objectOrEmpty(processed["prompt_analysis"])
	for _, key := range []string{"sentiment_by_llm", "ranking_by_prompt"} {
		if !truthy(prompts[key]) {
			prompts[key] = map[string]any{}
		}
	}
	processed["prompt_analysis"] = prompts

	return processed, competitors
}

func CalculateDataMetrics(data entity.AnalysisData, competitors []string) DataMetrics {
	m := DataMetrics{
		CompetitorsFound: competitors,
		SectionsComplete: []string{},
		SectionsPartial:  []string{},
		SectionsMissing:  []string{},
	}
	if m.CompetitorsFound == nil {
		m.CompetitorsFound = []string{}
	}

	for _, section := range analysisSections {
		v := data[section]
		switch {
		case !truthy(v):
			m.SectionsMissing = append(m.SectionsMissing, section)
		case sectionComplete(v):
			m.SectionsComplete = append(m.SectionsComplete, section)
		default:
			m.SectionsPartial = append(m.SectionsPartial, section)
		}
	}
	m.CompletenessScore = int(math.Round(float64(len(m.SectionsComplete)) / float64(len(analysisSections)) * 100))

	prompts, _ := data["prompt_analysis"].(map[string]any)
	m.LLMsAnalyzed = sortedKeys(prompts["sentiment_by_llm"])
	m.PromptsAnalyzed = sortedKeys(prompts["ranking_by_prompt"])

	if trends, ok := data["sentiment_trends"].([]any); ok {
		m.TemporalDataMonths = len(trends)
	}
	return m
}

// HasCompleteData: o dashboard só renderiza gráficos com as três seções.
func HasCompleteData(data entity.AnalysisData) bool {
	return truthy(data["sentiment_trends"]) && truthy(data["ranking_data"]) && truthy(data["competitor_analysis"])
}

type AnalysisDataOutput struct {
	entity.AnalysisResult
	HasCompleteData  bool      `json:"has_complete_data"`
	LastUpdated      time.Time `json:"last_updated"`
	AnalysisAgeHours int       `json:"analysis_age_hours"`
}

func newAnalysisDataOutput(result *entity.AnalysisResult, now time.Time) *AnalysisDataOutput {
	age := int(math.Floor(now.Sub(result.UpdatedAt).Hours()))
	if age < 0 {
		age = 0
	}
	return &AnalysisDataOutput{
		AnalysisResult:   *result,
		HasCompleteData:  HasCompleteData(result.AnalysisData),
		LastUpdated:      result.UpdatedAt,
		AnalysisAgeHours: age,
	}
}

func extractCompetitors(data entity.AnalysisData) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, key := range []string{"sentiment_trends", "ranking_data"} {
		rows, _ := data[key].([]any)
		for _, row := range rows {
			obj, ok := row.(map[string]any)
			if !ok {
				continue
			}
			for _, k := range sortedKeys(obj) {
				if k != "month" && k != "Mês" {
					add(k)
				}
			}
		}
	}

	rows, _ := data["overall_sentiment"].([]any)
	for _, row := range rows {
		if obj, ok := row.(map[string]any); ok {
			name, _ := obj["name"].(string)
			add(name)
		}
	}
	return out
}

func fillColors(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			out[i] = item
			continue
		}
		filled := make(map[string]any, len(obj)+1)
		for k, v := range obj {
			filled[k] = v
		}
		if !truthy(filled["color"]) {
			filled["color"] = analysisPalette[i%len(analysisPalette)]
		}
		out[i] = filled
	}
	return out
}

func objectOrEmpty(v any) map[string]any {
	obj, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	out := make(map[string]any, len(obj))
	for k, val := range obj {
		out[k] = val
	}
	return out
}

func defaultKeys(obj map[string]any, empty []any, keys ...string) {
	for _, k := range keys {
		if !truthy(obj[k]) {
			obj[k] = empty
		}
	}
}

// truthy segue a noção de "valor presente" do payload JSON: nil, false, 0 e ""
// contam como ausentes; listas e objetos vazios não.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case string:
		return t != ""
	}
	return true
}

func sectionComplete(v any) bool {
	switch t := v.(type) {
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

func sortedKeys(v any) []string {
	obj, ok := v.(map[string]any)
	if !ok {
		return []string{}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
