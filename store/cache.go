package store

import (
	"minimart/model"

	cache "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"
)

// Store is the read-through, memoized front of the loader. Repeated requests
// for the same data directory return the cached dataset; invalidation is
// explicit, never implicit during a session.
type Store struct {
	datasets *cache.Cache
}

func New(size int) (*Store, error) {
	datasets, err := cache.New(size)
	if err != nil {
		return nil, err
	}
	return &Store{datasets: datasets}, nil
}

// Dataset returns the dataset for the directory, loading it on first use.
func (s *Store) Dataset(dir string) (*model.Dataset, error) {
	if v, ok := s.datasets.Get(dir); ok {
		return v.(*model.Dataset), nil
	}

	log.WithField("dir", dir).Debug("Dataset cache miss, loading.")
	ds, err := Load(dir)
	if err != nil {
		return nil, err
	}
	s.datasets.Add(dir, ds)
	return ds, nil
}

// Invalidate drops every cached dataset. The next request reloads from disk.
func (s *Store) Invalidate() {
	s.datasets.Purge()
	log.Info("Dataset cache invalidated.")
}
