package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goprovision/internal/domain"
	"github.com/iho/goprovision/internal/usecase"
)

const dateLayout = "2006-01-02"

// ECLStagingConfigRequest carries the stage boundaries in their textual
// "0-30" / "360+" form.
type ECLStagingConfigRequest struct {
	Stage1 string `json:"stage_1"`
	Stage2 string `json:"stage_2"`
	Stage3 string `json:"stage_3"`
}

// ToDomain parses the textual ranges. Omitted configs fall back to the
// standard boundaries.
func (r *ECLStagingConfigRequest) ToDomain() (domain.ECLStagingConfig, error) {
	if r == nil {
		return domain.DefaultECLStagingConfig(), nil
	}

	var cfg domain.ECLStagingConfig
	var err error

	if cfg.Stage1, err = domain.ParseRange(r.Stage1); err != nil {
		return cfg, err
	}
	if cfg.Stage2, err = domain.ParseRange(r.Stage2); err != nil {
		return cfg, err
	}
	if cfg.Stage3, err = domain.ParseRange(r.Stage3); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// CategoryBandRequest couples a textual days range with a provision rate.
type CategoryBandRequest struct {
	DaysRange string          `json:"days_range"`
	Rate      decimal.Decimal `json:"rate"`
}

func (r CategoryBandRequest) toDomain() (domain.CategoryBand, error) {
	days, err := domain.ParseRange(r.DaysRange)
	if err != nil {
		return domain.CategoryBand{}, err
	}

	return domain.CategoryBand{Days: days, Rate: r.Rate}, nil
}

// LocalImpairmentConfigRequest carries the five regulatory bands.
type LocalImpairmentConfigRequest struct {
	Current     CategoryBandRequest `json:"current"`
	OLEM        CategoryBandRequest `json:"olem"`
	Substandard CategoryBandRequest `json:"substandard"`
	Doubtful    CategoryBandRequest `json:"doubtful"`
	Loss        CategoryBandRequest `json:"loss"`
}

// ToDomain parses the textual ranges. Omitted configs fall back to the
// standard regulatory bands.
func (r *LocalImpairmentConfigRequest) ToDomain() (domain.LocalImpairmentConfig, error) {
	if r == nil {
		return domain.DefaultLocalImpairmentConfig(), nil
	}

	var cfg domain.LocalImpairmentConfig
	var err error

	if cfg.Current, err = r.Current.toDomain(); err != nil {
		return cfg, err
	}
	if cfg.OLEM, err = r.OLEM.toDomain(); err != nil {
		return cfg, err
	}
	if cfg.Substandard, err = r.Substandard.toDomain(); err != nil {
		return cfg, err
	}
	if cfg.Doubtful, err = r.Doubtful.toDomain(); err != nil {
		return cfg, err
	}
	if cfg.Loss, err = r.Loss.toDomain(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// parseReportingDate parses a "2006-01-02" reporting date, defaulting to
// today (UTC) when omitted.
func parseReportingDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reporting_date %q, expected YYYY-MM-DD", s)
	}

	return t, nil
}

// StageLoansRequest triggers a staging run over a portfolio.
type StageLoansRequest struct {
	PortfolioID      string                        `json:"portfolio_id"`
	ReportingDate    string                        `json:"reporting_date,omitempty"`
	ECLConfig        *ECLStagingConfigRequest      `json:"ecl_config,omitempty"`
	ImpairmentConfig *LocalImpairmentConfigRequest `json:"impairment_config,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *StageLoansRequest) ToUseCaseInput() (usecase.StageLoansInput, error) {
	reportingDate, err := parseReportingDate(r.ReportingDate)
	if err != nil {
		return usecase.StageLoansInput{}, err
	}

	eclCfg, err := r.ECLConfig.ToDomain()
	if err != nil {
		return usecase.StageLoansInput{}, err
	}

	impCfg, err := r.ImpairmentConfig.ToDomain()
	if err != nil {
		return usecase.StageLoansInput{}, err
	}

	return usecase.StageLoansInput{
		PortfolioID:      r.PortfolioID,
		ReportingDate:    reportingDate,
		ECLConfig:        eclCfg,
		ImpairmentConfig: impCfg,
	}, nil
}

// CalculateECLRequest triggers an expected-credit-loss run.
type CalculateECLRequest struct {
	PortfolioID   string                   `json:"portfolio_id"`
	ReportingDate string                   `json:"reporting_date,omitempty"`
	StagingConfig *ECLStagingConfigRequest `json:"staging_config,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CalculateECLRequest) ToUseCaseInput() (usecase.CalculateECLInput, error) {
	reportingDate, err := parseReportingDate(r.ReportingDate)
	if err != nil {
		return usecase.CalculateECLInput{}, err
	}

	cfg, err := r.StagingConfig.ToDomain()
	if err != nil {
		return usecase.CalculateECLInput{}, err
	}

	return usecase.CalculateECLInput{
		PortfolioID:   r.PortfolioID,
		ReportingDate: reportingDate,
		StagingConfig: cfg,
	}, nil
}

// CalculateImpairmentRequest triggers a regulatory provisioning run.
type CalculateImpairmentRequest struct {
	PortfolioID   string                        `json:"portfolio_id"`
	ReportingDate string                        `json:"reporting_date,omitempty"`
	Config        *LocalImpairmentConfigRequest `json:"config,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CalculateImpairmentRequest) ToUseCaseInput() (usecase.CalculateImpairmentInput, error) {
	reportingDate, err := parseReportingDate(r.ReportingDate)
	if err != nil {
		return usecase.CalculateImpairmentInput{}, err
	}

	cfg, err := r.Config.ToDomain()
	if err != nil {
		return usecase.CalculateImpairmentInput{}, err
	}

	return usecase.CalculateImpairmentInput{
		PortfolioID:   r.PortfolioID,
		ReportingDate: reportingDate,
		Config:        cfg,
	}, nil
}
