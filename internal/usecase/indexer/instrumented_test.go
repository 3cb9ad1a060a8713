package indexer

import (
	"context"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/memdex/internal/metrics"
	"github.com/kailas-cloud/memdex/internal/repository/corpus"
)

func TestMain(m *testing.M) {
	metrics.RegisterEngineMetrics()
	os.Exit(m.Run())
}

func TestInstrumented_IndexEntryCountsPass(t *testing.T) {
	c := corpus.New()
	addEntry(t, c, "e1", "neural networks", 80)
	p := NewInstrumented(newService(c, &mockSaver{}), zap.NewNop())

	passesBefore := testutil.ToFloat64(metrics.IndexPassesTotal.WithLabelValues("entry", "ok"))
	coveredBefore := testutil.ToFloat64(metrics.EntriesIndexedTotal)

	ran, err := p.IndexEntry(context.Background(), "e1")
	if err != nil || !ran {
		t.Fatalf("IndexEntry: ran=%v err=%v", ran, err)
	}

	if d := testutil.ToFloat64(metrics.IndexPassesTotal.WithLabelValues("entry", "ok")) - passesBefore; d != 1 {
		t.Errorf("expected index_passes_total{entry,ok} to grow by 1, grew by %f", d)
	}
	if d := testutil.ToFloat64(metrics.EntriesIndexedTotal) - coveredBefore; d != 1 {
		t.Errorf("expected entries_indexed_total to grow by 1, grew by %f", d)
	}
}

func TestInstrumented_IndexEntryCountsError(t *testing.T) {
	c := corpus.New()
	p := NewInstrumented(newService(c, &mockSaver{}), zap.NewNop())

	before := testutil.ToFloat64(metrics.IndexPassesTotal.WithLabelValues("entry", "error"))

	ran, err := p.IndexEntry(context.Background(), "missing")
	if err == nil || !ran {
		t.Fatalf("expected error for missing entry, ran=%v err=%v", ran, err)
	}

	if d := testutil.ToFloat64(metrics.IndexPassesTotal.WithLabelValues("entry", "error")) - before; d != 1 {
		t.Errorf("expected index_passes_total{entry,error} to grow by 1, grew by %f", d)
	}
}

func TestInstrumented_CountsDrops(t *testing.T) {
	c := corpus.New()
	addEntry(t, c, "e1", "content", 50)
	svc := newService(c, &mockSaver{})
	p := NewInstrumented(svc, zap.NewNop())

	// Занимаем гейт вручную — вторая заявка должна быть сброшена.
	if !svc.gate.enter() {
		t.Fatal("gate.enter")
	}
	defer svc.gate.leave()

	before := testutil.ToFloat64(metrics.IndexDropsTotal)

	ran, err := p.IndexEntry(context.Background(), "e1")
	if ran || err != nil {
		t.Fatalf("expected drop, ran=%v err=%v", ran, err)
	}

	if d := testutil.ToFloat64(metrics.IndexDropsTotal) - before; d != 1 {
		t.Errorf("expected index_drops_total to grow by 1, grew by %f", d)
	}
}

func TestInstrumented_IndexAllCountsCoveredEntries(t *testing.T) {
	c := corpus.New()
	addEntry(t, c, "e1", "first entry", 50)
	addEntry(t, c, "e2", "second entry", 50)
	p := NewInstrumented(newService(c, &mockSaver{}), zap.NewNop())

	passesBefore := testutil.ToFloat64(metrics.IndexPassesTotal.WithLabelValues("all", "ok"))
	coveredBefore := testutil.ToFloat64(metrics.EntriesIndexedTotal)

	indexed, ran, err := p.IndexAll(context.Background())
	if err != nil || !ran || indexed != 2 {
		t.Fatalf("IndexAll: indexed=%d ran=%v err=%v", indexed, ran, err)
	}

	if d := testutil.ToFloat64(metrics.IndexPassesTotal.WithLabelValues("all", "ok")) - passesBefore; d != 1 {
		t.Errorf("expected index_passes_total{all,ok} to grow by 1, grew by %f", d)
	}
	if d := testutil.ToFloat64(metrics.EntriesIndexedTotal) - coveredBefore; d != 2 {
		t.Errorf("expected entries_indexed_total to grow by 2, grew by %f", d)
	}
}

func TestInstrumented_BusyDelegates(t *testing.T) {
	c := corpus.New()
	svc := newService(c, &mockSaver{})
	p := NewInstrumented(svc, zap.NewNop())

	if p.Busy() {
		t.Error("expected idle indexer")
	}
	if !svc.gate.enter() {
		t.Fatal("gate.enter")
	}
	defer svc.gate.leave()
	if !p.Busy() {
		t.Error("expected busy indexer")
	}
}
