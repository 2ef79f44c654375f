package application

import (
	"context"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

// memStore is an in-memory driven.RecordStore for service tests.
type memStore struct {
	records   []model.Record
	loadErr   error
	appendErr error
	loads     int
	appends   int
}

func (m *memStore) LoadAll(_ context.Context) ([]model.Record, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]model.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memStore) Append(_ context.Context, record model.Record) error {
	m.appends++
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, record)
	return nil
}

var (
	hikvision  = model.Record{Brand: "Hikvision", Model: "DS-7204", User: "admin", Pass: "12345", Info: "Hold reset 10s"}
	hikvision2 = model.Record{Brand: "Hikvision", Model: "DS-7208", User: "admin", Pass: "abcd"}
	dahua      = model.Record{Brand: "Dahua", Model: "XVR5104", User: "admin", Pass: "admin", Info: "Factory default"}
)
