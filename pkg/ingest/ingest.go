// Package ingest orchestrates the classification pipeline: parse the raw
// export, classify every message, aggregate session entries by day, and
// publish the rebuilt corpus in one atomic swap. Parsing failures are
// fatal and leave the previous corpus (in memory and persisted) intact.
package ingest

import (
	"fmt"

	"github.com/bramtechsolutions/campaign-rag/pkg/classify"
	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
	"github.com/bramtechsolutions/campaign-rag/pkg/export"
)

// Persister writes a finished corpus snapshot to durable storage,
// replacing whatever the previous run persisted.
type Persister interface {
	ReplaceAll(snap *corpus.Snapshot) error
}

// Pipeline rebuilds the corpus from a raw export. It is the only writer
// of its Store.
type Pipeline struct {
	store   *corpus.Store
	persist Persister
}

// New creates a pipeline publishing to store. persist may be nil for
// in-memory-only operation.
func New(store *corpus.Store, persist Persister) *Pipeline {
	return &Pipeline{store: store, persist: persist}
}

// Run ingests one raw export and returns the per-partition counts of the
// rebuilt corpus. Re-running with the same export yields identical
// document contents and identical counts.
//
// Character and world documents merge into the scratch snapshot as they
// are classified (overwrite-by-key); session entries need the full pass
// before one Session per distinct date is finalized.
func (p *Pipeline) Run(data []byte) (corpus.Counts, error) {
	exp, err := export.Parse(data)
	if err != nil {
		return corpus.Counts{}, err
	}

	b := corpus.NewBuilder()
	for i := range exp.Messages {
		for _, res := range classify.Classify(&exp.Messages[i]) {
			switch res.Kind {
			case corpus.KindCharacter:
				b.PutCharacter(res.Key, *res.Character)
			case corpus.KindSession:
				b.AddSessionEntry(res.Key, *res.Entry)
			case corpus.KindWorld:
				b.PutWorld(res.Key, *res.World)
			}
		}
	}
	snap := b.Snapshot()

	// Persist before publishing so a storage failure leaves readers on
	// the previous generation.
	if p.persist != nil {
		if err := p.persist.ReplaceAll(snap); err != nil {
			return corpus.Counts{}, fmt.Errorf("ingest: persist corpus: %w", err)
		}
	}

	p.store.Replace(snap)
	return snap.Counts(), nil
}
