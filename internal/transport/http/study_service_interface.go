package http

import (
	"context"

	"marketstudy/internal/financial"
	"marketstudy/internal/pipeline"
	"marketstudy/internal/services"
	"marketstudy/pkg/contracts/domain"
)

// StudyServiceInterface defines the study operations the handlers use
type StudyServiceInterface interface {
	Run(ctx context.Context) (pipeline.Summary, error)
	LastRun() (pipeline.Summary, bool)
	Result(ctx context.Context) (domain.StudyResult, error)
	SummaryHTML(ctx context.Context) ([]byte, error)

	Market() domain.MarketInfo
	CompetitorAnalysis(ctx context.Context) (services.CompetitorReport, error)
	FinancialAnalysis(ctx context.Context) domain.FinancialAnalysis
	Sensitivity(ctx context.Context) domain.SensitivityResult
	WhatIf(ctx context.Context, o financial.Overrides) (domain.FinancialAnalysis, error)
}

var _ StudyServiceInterface = (*services.StudyService)(nil)
