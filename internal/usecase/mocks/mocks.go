package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/goprovision/internal/domain"
)

// MockLoanRepository is a mock implementation of LoanRepository backed by
// an in-memory slice with working keyset pagination.
type MockLoanRepository struct {
	mu    sync.RWMutex
	loans []*domain.Loan

	CountByPortfolioFunc func(ctx context.Context, portfolioID string) (int, error)
	ListPageFunc         func(ctx context.Context, portfolioID, afterID string, limit int) ([]*domain.Loan, error)
}

func NewMockLoanRepository(loans ...*domain.Loan) *MockLoanRepository {
	repo := &MockLoanRepository{}
	repo.SetLoans(loans)
	return repo
}

func (m *MockLoanRepository) SetLoans(loans []*domain.Loan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans = append([]*domain.Loan(nil), loans...)
	sort.Slice(m.loans, func(i, j int) bool { return m.loans[i].ID < m.loans[j].ID })
}

func (m *MockLoanRepository) CountByPortfolio(ctx context.Context, portfolioID string) (int, error) {
	if m.CountByPortfolioFunc != nil {
		return m.CountByPortfolioFunc(ctx, portfolioID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, loan := range m.loans {
		if loan.PortfolioID == portfolioID {
			count++
		}
	}
	return count, nil
}

func (m *MockLoanRepository) ListPage(ctx context.Context, portfolioID, afterID string, limit int) ([]*domain.Loan, error) {
	if m.ListPageFunc != nil {
		return m.ListPageFunc(ctx, portfolioID, afterID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var page []*domain.Loan
	for _, loan := range m.loans {
		if loan.PortfolioID != portfolioID || loan.ID <= afterID {
			continue
		}
		page = append(page, loan)
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

// MockClientRepository is a mock implementation of ClientRepository.
type MockClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client

	GetByBorrowerRefsFunc func(ctx context.Context, refs []string) (map[string]*domain.Client, error)
}

func NewMockClientRepository(clients ...*domain.Client) *MockClientRepository {
	m := &MockClientRepository{clients: make(map[string]*domain.Client)}
	for _, c := range clients {
		m.clients[c.BorrowerRef] = c
	}
	return m
}

func (m *MockClientRepository) GetByBorrowerRefs(ctx context.Context, refs []string) (map[string]*domain.Client, error) {
	if m.GetByBorrowerRefsFunc != nil {
		return m.GetByBorrowerRefsFunc(ctx, refs)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make(map[string]*domain.Client, len(refs))
	for _, ref := range refs {
		if c, ok := m.clients[ref]; ok {
			found[ref] = c
		}
	}
	return found, nil
}

// MockRunRepository is a mock implementation of RunRepository.
type MockRunRepository struct {
	mu   sync.RWMutex
	runs map[string]*domain.CalculationRun

	CreateFunc  func(ctx context.Context, run *domain.CalculationRun) error
	FinishFunc  func(ctx context.Context, run *domain.CalculationRun) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.CalculationRun, error)
}

func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{runs: make(map[string]*domain.CalculationRun)}
}

func (m *MockRunRepository) Create(ctx context.Context, run *domain.CalculationRun) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, run)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

func (m *MockRunRepository) Finish(ctx context.Context, run *domain.CalculationRun) error {
	if m.FinishFunc != nil {
		return m.FinishFunc(ctx, run)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

func (m *MockRunRepository) GetByID(ctx context.Context, id string) (*domain.CalculationRun, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if run, ok := m.runs[id]; ok {
		return run, nil
	}
	return nil, domain.ErrRunNotFound
}

// MockStageResultRepository collects saved stage results.
type MockStageResultRepository struct {
	mu      sync.Mutex
	Results []*domain.StageResult
	Batches int

	SaveBatchFunc func(ctx context.Context, results []*domain.StageResult) error
}

func NewMockStageResultRepository() *MockStageResultRepository {
	return &MockStageResultRepository{}
}

func (m *MockStageResultRepository) SaveBatch(ctx context.Context, results []*domain.StageResult) error {
	if m.SaveBatchFunc != nil {
		return m.SaveBatchFunc(ctx, results)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results = append(m.Results, results...)
	m.Batches++
	return nil
}

// MockECLResultRepository collects saved ECL results.
type MockECLResultRepository struct {
	mu      sync.Mutex
	Results []*domain.ECLResult
	Batches int

	SaveBatchFunc func(ctx context.Context, results []*domain.ECLResult) error
}

func NewMockECLResultRepository() *MockECLResultRepository {
	return &MockECLResultRepository{}
}

func (m *MockECLResultRepository) SaveBatch(ctx context.Context, results []*domain.ECLResult) error {
	if m.SaveBatchFunc != nil {
		return m.SaveBatchFunc(ctx, results)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results = append(m.Results, results...)
	m.Batches++
	return nil
}

// MockImpairmentResultRepository collects saved impairment results.
type MockImpairmentResultRepository struct {
	mu      sync.Mutex
	Results []*domain.ImpairmentResult
	Totals  map[string][]domain.CategoryTotal

	SaveBatchFunc  func(ctx context.Context, results []*domain.ImpairmentResult) error
	SaveTotalsFunc func(ctx context.Context, runID string, totals []domain.CategoryTotal) error
}

func NewMockImpairmentResultRepository() *MockImpairmentResultRepository {
	return &MockImpairmentResultRepository{Totals: make(map[string][]domain.CategoryTotal)}
}

func (m *MockImpairmentResultRepository) SaveBatch(ctx context.Context, results []*domain.ImpairmentResult) error {
	if m.SaveBatchFunc != nil {
		return m.SaveBatchFunc(ctx, results)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results = append(m.Results, results...)
	return nil
}

func (m *MockImpairmentResultRepository) SaveTotals(ctx context.Context, runID string, totals []domain.CategoryTotal) error {
	if m.SaveTotalsFunc != nil {
		return m.SaveTotalsFunc(ctx, runID, totals)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Totals[runID] = totals
	return nil
}

// MockProgressReporter records progress reports.
type MockProgressReporter struct {
	mu      sync.Mutex
	Reports []ProgressReport

	ReportFunc func(ctx context.Context, runID string, processed, total int, message string)
}

type ProgressReport struct {
	RunID     string
	Processed int
	Total     int
	Message   string
}

func NewMockProgressReporter() *MockProgressReporter {
	return &MockProgressReporter{}
}

func (m *MockProgressReporter) Report(ctx context.Context, runID string, processed, total int, message string) {
	if m.ReportFunc != nil {
		m.ReportFunc(ctx, runID, processed, total, message)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, ProgressReport{RunID: runID, Processed: processed, Total: total, Message: message})
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("test-id-%d", m.next)
}

// MockPDEstimator is a mock implementation of PDEstimator.
type MockPDEstimator struct {
	PD       float64
	Fallback bool

	ProbabilityOfDefaultFunc func(dateOfBirth *time.Time, asOf time.Time) (float64, bool)
}

func NewMockPDEstimator(pd float64) *MockPDEstimator {
	return &MockPDEstimator{PD: pd}
}

func (m *MockPDEstimator) ProbabilityOfDefault(dateOfBirth *time.Time, asOf time.Time) (float64, bool) {
	if m.ProbabilityOfDefaultFunc != nil {
		return m.ProbabilityOfDefaultFunc(dateOfBirth, asOf)
	}
	return m.PD, m.Fallback
}
