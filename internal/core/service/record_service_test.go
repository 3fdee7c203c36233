package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ports"
)

type stubRecordRepo struct {
	records   []domain.ServiceRecord
	insertErr error
	batches   int
}

func (r *stubRecordRepo) Create(_ context.Context, rec domain.ServiceRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *stubRecordRepo) InsertMany(_ context.Context, recs []domain.ServiceRecord) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.batches++
	r.records = append(r.records, recs...)
	return nil
}

func (r *stubRecordRepo) List(context.Context) ([]domain.ServiceRecord, error) {
	out := make([]domain.ServiceRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

func (r *stubRecordRepo) Distinct(_ context.Context, f domain.Field) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, rec := range r.records {
		var v string
		switch f {
		case domain.FieldZona:
			v = rec.Zona
		case domain.FieldStatus:
			v = rec.Status
		}
		if strings.TrimSpace(v) != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out, nil
}

func (r *stubRecordRepo) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.records))
	r.records = nil
	return n, nil
}

func TestRecordService_Create_Coerces(t *testing.T) {
	repo := &stubRecordRepo{}
	svc := NewRecordService(repo, zerolog.Nop())

	rec, err := svc.Create(context.Background(), ports.RecordInput{
		Registro:    " 42 ",
		DataEntrada: "05/03/2024",
		Solicitante: "Ana",
		Quantidade:  "12,5",
		Status:      " aberto",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	want := domain.ServiceRecord{
		Registro:    "42",
		DataEntrada: "2024-03-05",
		Solicitante: "Ana",
		Quantidade:  12,
		Status:      "aberto",
	}
	if *rec != want || repo.records[0] != want {
		t.Fatalf("unexpected record %+v", *rec)
	}
}

func TestRecordService_Create_Defaults(t *testing.T) {
	repo := &stubRecordRepo{}
	svc := NewRecordService(repo, zerolog.Nop())

	rec, err := svc.Create(context.Background(), ports.RecordInput{DataEntrada: "ontem", Quantidade: "muitos"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.DataEntrada != "" || rec.Quantidade != 0 {
		t.Fatalf("expected defaults, got %+v", *rec)
	}

	rec, _ = svc.Create(context.Background(), ports.RecordInput{Quantidade: "-3"})
	if rec.Quantidade != 0 {
		t.Fatalf("negative quantity should clamp to 0, got %d", rec.Quantidade)
	}
}

func TestRecordService_Suggestions(t *testing.T) {
	repo := &stubRecordRepo{records: []domain.ServiceRecord{
		{Zona: "sul"}, {Zona: "Norte"}, {Zona: ""}, {Zona: "sul"},
	}}
	svc := NewRecordService(repo, zerolog.Nop())

	got, err := svc.Suggestions(context.Background(), "ZONA")
	if err != nil {
		t.Fatalf("Suggestions returned error: %v", err)
	}
	if strings.Join(got, ",") != "Norte,sul" {
		t.Fatalf("unexpected suggestions %v", got)
	}

	for _, field := range []string{"registro", "quantidade", "senha", ""} {
		got, err := svc.Suggestions(context.Background(), field)
		if err != nil {
			t.Fatalf("Suggestions(%q) returned error: %v", field, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("Suggestions(%q) expected empty non-nil slice, got %#v", field, got)
		}
	}
}

func TestRecordService_ListAndDeleteAll(t *testing.T) {
	repo := &stubRecordRepo{}
	svc := NewRecordService(repo, zerolog.Nop())

	empty, err := svc.List(context.Background())
	if err != nil || empty == nil {
		t.Fatalf("List on empty store should return empty slice, got %#v, %v", empty, err)
	}

	repo.records = []domain.ServiceRecord{{Registro: "1"}, {Registro: "2"}}
	list, _ := svc.List(context.Background())
	if list[0].Registro != "2" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	n, err := svc.DeleteAll(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("DeleteAll = %d, %v", n, err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("records not deleted")
	}
}

func TestRecordService_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	repo := &failingRecordRepo{err: boom}
	svc := NewRecordService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.RecordInput{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if _, err := svc.DeleteAll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

type failingRecordRepo struct {
	stubRecordRepo
	err error
}

func (r *failingRecordRepo) Create(context.Context, domain.ServiceRecord) error { return r.err }
func (r *failingRecordRepo) DeleteAll(context.Context) (int64, error)           { return 0, r.err }
