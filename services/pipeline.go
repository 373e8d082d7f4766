package services

import (
	"co2-report/models"
	"co2-report/utils"
)

// EmissionFields and GDPFields are the columns shown for every ranked country.
var (
	EmissionFields = []models.Field{
		{Label: "Country", Column: models.ColCountry},
		{Label: "Total emission", Column: models.ColTotalIncludingBunker},
		{Label: "Emission per capita", Column: models.ColTotalAndBunkerPerCapita},
	}
	GDPFields = []models.Field{
		{Label: "Country", Column: models.ColCountry},
		{Label: "GDP", Column: models.ColGDP},
		{Label: "GDP per capita", Column: models.ColGDPPerCapita},
	}
)

// Pipeline runs the reconciliation and analytics stages in order.
type Pipeline struct {
	logger     *utils.Logger
	normalizer *Normalizer
	years      *YearSelector
	aggregator *Aggregator
	joiner     *Joiner
	ranker     *Ranker
	changes    *ChangeScanner
}

// NewPipeline wires every stage around the given alias table and change window.
func NewPipeline(aliases map[string]string, changeWindow int, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		logger:     logger,
		normalizer: NewNormalizer(aliases, logger),
		years:      NewYearSelector(logger),
		aggregator: NewAggregator(logger),
		joiner:     NewJoiner(logger),
		ranker:     NewRanker(logger),
		changes:    NewChangeScanner(changeWindow, logger),
	}
}

// Run reconciles the three sources and builds the report. The inputs are not
// modified.
func (p *Pipeline) Run(gdp, pop models.WideTable, co2 models.LongTable, r YearRange) (*models.Report, error) {
	sel, err := p.years.Select(gdp, pop, co2, r)
	if err != nil {
		return nil, err
	}

	gdpN := p.aggregator.DedupeWide(p.normalizer.NormalizeWide(sel.GDP))
	popN := p.aggregator.DedupeWide(p.normalizer.NormalizeWide(sel.Population))
	co2N := p.aggregator.DedupeLong(p.normalizer.NormalizeLong(sel.Emissions))

	joined := p.joiner.Join(gdpN, popN, co2N)
	derived := DerivePerCapita(joined.Table)

	report := &models.Report{
		Years:     sel.Years,
		Excluded:  joined.Excluded,
		Joined:    derived,
		Emissions: p.ranker.Top(derived, EmissionFields, models.ColTotalAndBunkerPerCapita),
		GDP:       p.ranker.Top(derived, GDPFields, models.ColGDPPerCapita),
	}
	if changes, ok := p.changes.Scan(derived); ok {
		report.Changes = changes
	}
	return report, nil
}
