package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/arcstd/parse"
	"github.com/revelaction/arcstd/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ParseStore keeps parser output and oracle derivations.
type ParseStore struct {
	pool *sqlitex.Pool
}

var (
	_ storage.ParseWriter      = (*ParseStore)(nil)
	_ storage.ParseReader      = (*ParseStore)(nil)
	_ storage.DerivationWriter = (*ParseStore)(nil)
	_ storage.DerivationReader = (*ParseStore)(nil)
)

func NewParseStore(pool *sqlitex.Pool) *ParseStore {
	return &ParseStore{pool: pool}
}

func (h *ParseStore) WriteParse(p storage.Parse) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	arcs := p.Arcs
	if arcs == nil {
		arcs = []parse.Arc{}
	}
	data, err := json.Marshal(arcs)
	if err != nil {
		return err
	}

	complete := 0
	if p.Complete {
		complete = 1
	}

	err = sqlitex.Execute(conn, `INSERT INTO parses (doc_id, sentence_id, predictor, complete, arcs) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (doc_id, sentence_id, predictor) DO UPDATE SET complete = excluded.complete, arcs = excluded.arcs`, &sqlitex.ExecOptions{
		Args: []interface{}{p.DocId, p.SentenceId, p.Predictor, complete, string(data)},
	})
	if err != nil {
		return fmt.Errorf("failed to write parse %d:%d: %w", p.DocId, p.SentenceId, err)
	}
	return nil
}

func (h *ParseStore) ReadParses(docId int, predictor string) ([]storage.Parse, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	parses := []storage.Parse{}
	err = sqlitex.Execute(conn, "SELECT sentence_id, complete, arcs FROM parses WHERE doc_id = ? AND predictor = ? ORDER BY sentence_id", &sqlitex.ExecOptions{
		Args: []interface{}{docId, predictor},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			p := storage.Parse{
				DocId:      docId,
				SentenceId: stmt.ColumnInt(0),
				Predictor:  predictor,
				Complete:   stmt.ColumnInt(1) != 0,
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &p.Arcs); err != nil {
				return err
			}
			parses = append(parses, p)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return parses, nil
}

func (h *ParseStore) WriteDerivation(d storage.Derivation) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT INTO derivations (doc_id, sentence_id, transitions) VALUES (?, ?, ?)
		ON CONFLICT (doc_id, sentence_id) DO UPDATE SET transitions = excluded.transitions`, &sqlitex.ExecOptions{
		Args: []interface{}{d.DocId, d.SentenceId, parse.FormatTransitions(d.Transitions)},
	})
	if err != nil {
		return fmt.Errorf("failed to write derivation %d:%d: %w", d.DocId, d.SentenceId, err)
	}
	return nil
}

func (h *ParseStore) ReadDerivations(docId int) ([]storage.Derivation, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	ds := []storage.Derivation{}
	err = sqlitex.Execute(conn, "SELECT sentence_id, transitions FROM derivations WHERE doc_id = ? ORDER BY sentence_id", &sqlitex.ExecOptions{
		Args: []interface{}{docId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ts, err := parse.ParseTransitions(stmt.ColumnText(1))
			if err != nil {
				return err
			}
			ds = append(ds, storage.Derivation{DocId: docId, SentenceId: stmt.ColumnInt(0), Transitions: ts})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}
