package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
)

type fakeDestination struct {
	mu        sync.Mutex
	kinds     map[string]entity.PropertyKind
	schemaErr error
	// failFor makes CreatePage fail for pages whose title matches.
	failFor map[string]error
	panicOn string

	schemaCalls int
	created     []entity.PropertySet
}

func newFakeDestination(kinds map[string]entity.PropertyKind) *fakeDestination {
	return &fakeDestination{kinds: kinds, failFor: map[string]error{}}
}

func (f *fakeDestination) RetrieveSchema(_ context.Context, _ string) (map[string]entity.PropertyKind, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schemaCalls++
	if f.schemaErr != nil {
		return nil, f.schemaErr
	}
	return f.kinds, nil
}

func (f *fakeDestination) CreatePage(_ context.Context, _ string, props entity.PropertySet) (entity.PageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	title := props[constants.FieldName].Text
	if title == f.panicOn && f.panicOn != "" {
		panic("boom")
	}
	if err, ok := f.failFor[title]; ok {
		return entity.PageRef{}, err
	}
	f.created = append(f.created, props)
	id := fmt.Sprintf("page-%d", len(f.created))
	return entity.PageRef{ID: id, URL: "https://notion.so/" + id}, nil
}

type fakeHistory struct {
	err     error
	sources []constants.RunSource
	batches []entity.BatchResult
}

func (h *fakeHistory) RecordBatch(_ context.Context, source constants.RunSource, _ string, res entity.BatchResult) error {
	h.sources = append(h.sources, source)
	h.batches = append(h.batches, res)
	return h.err
}

type fakeExtractor struct {
	rec   entity.RawRecord
	err   error
	calls int
}

func (e *fakeExtractor) Extract(_ context.Context, _ llm.Document) (entity.RawRecord, []byte, error) {
	e.calls++
	if e.err != nil {
		return nil, nil, e.err
	}
	return e.rec, []byte(`{}`), nil
}

func resumeSchema() map[string]entity.PropertyKind {
	return map[string]entity.PropertyKind{
		constants.FieldName:     entity.KindTitle,
		constants.FieldGender:   entity.KindSelect,
		constants.FieldPhone:    entity.KindPhone,
		constants.FieldPosition: entity.KindMultiSelect,
	}
}
