package main

import (
	"github.com/revelaction/arcstd/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Pool opens sqlite databases on first use and closes them at exit.
type Pool struct {
	pools map[string]*sqlitex.Pool
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if pool, ok := p.pools[path]; ok {
		return pool, nil
	}
	pool, err := zombiezen.Open(path)
	if err != nil {
		return nil, err
	}
	if p.pools == nil {
		p.pools = map[string]*sqlitex.Pool{}
	}
	p.pools[path] = pool
	return pool, nil
}

func (p *Pool) Close() error {
	var first error
	for path, pool := range p.pools {
		if err := pool.Close(); err != nil && first == nil {
			first = err
		}
		delete(p.pools, path)
	}
	return first
}
