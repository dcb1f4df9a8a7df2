package rest

import (
	"context"
	"sync"

	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/service/glossary"
)

// glossaryServiceMock is a moq-style mock of glossaryService.
type glossaryServiceMock struct {
	GenerateFunc    func(ctx context.Context, input glossary.GenerateInput) (*domain.Glossary, error)
	ExpandTermFunc  func(ctx context.Context, input glossary.ExpandInput) (*domain.ExpandedContent, error)
	ExtendTermsFunc func(ctx context.Context, input glossary.ExtendInput) ([]domain.Term, error)

	mu    sync.Mutex
	calls struct {
		Generate    []glossary.GenerateInput
		ExpandTerm  []glossary.ExpandInput
		ExtendTerms []glossary.ExtendInput
	}
}

func (m *glossaryServiceMock) Generate(ctx context.Context, input glossary.GenerateInput) (*domain.Glossary, error) {
	if m.GenerateFunc == nil {
		panic("glossaryServiceMock.GenerateFunc: method is nil but Generate was just called")
	}
	m.mu.Lock()
	m.calls.Generate = append(m.calls.Generate, input)
	m.mu.Unlock()
	return m.GenerateFunc(ctx, input)
}

func (m *glossaryServiceMock) ExpandTerm(ctx context.Context, input glossary.ExpandInput) (*domain.ExpandedContent, error) {
	if m.ExpandTermFunc == nil {
		panic("glossaryServiceMock.ExpandTermFunc: method is nil but ExpandTerm was just called")
	}
	m.mu.Lock()
	m.calls.ExpandTerm = append(m.calls.ExpandTerm, input)
	m.mu.Unlock()
	return m.ExpandTermFunc(ctx, input)
}

func (m *glossaryServiceMock) ExtendTerms(ctx context.Context, input glossary.ExtendInput) ([]domain.Term, error) {
	if m.ExtendTermsFunc == nil {
		panic("glossaryServiceMock.ExtendTermsFunc: method is nil but ExtendTerms was just called")
	}
	m.mu.Lock()
	m.calls.ExtendTerms = append(m.calls.ExtendTerms, input)
	m.mu.Unlock()
	return m.ExtendTermsFunc(ctx, input)
}

func (m *glossaryServiceMock) expandCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls.ExpandTerm)
}
