package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/earnings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"money": FormatGroupedCurrency,
	"pct":   FormatRate,
	"frac":  FormatFraction,
	"count": FormatCount,
}).Parse(htmlTemplateSource))

// htmlCohort is one selected cohort with the number of generated individuals in it.
type htmlCohort struct {
	Key       domain.AgeMonthKey
	Headcount int
	Total     decimal.Decimal
	Entries   []domain.MonthlyProjectionEntry
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	sizes := report.Population.CohortSizes()
	views := make([]htmlCohort, 0, len(report.Cohorts))
	for _, cp := range report.Cohorts {
		views = append(views, htmlCohort{
			Key:       cp.Key,
			Headcount: sizes[cp.Key],
			Total:     domain.SumEarnings(cp.Entries),
			Entries:   cp.Entries,
		})
	}

	data := struct {
		*domain.ProjectionReport
		Preview          domain.Population
		PopulationGroups int
		CohortViews      []htmlCohort
	}{report, report.Population.Head(PopulationPreviewRows), len(sizes), views}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
