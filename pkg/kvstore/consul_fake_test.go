package kvstore

import (
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
)

// fakeConsulKV is an in-process stand-in for *api.KV with real CAS semantics.
type fakeConsulKV struct {
	mu       sync.Mutex
	pairs    map[string]*api.KVPair
	index    uint64
	failCAS  int
	casCalls int
	getErr   error
}

func newFakeConsulKV() *fakeConsulKV {
	return &fakeConsulKV{pairs: make(map[string]*api.KVPair)}
}

func (f *fakeConsulKV) Put(p *api.KVPair, _ *api.WriteOptions) (*api.WriteMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(p)
	return &api.WriteMeta{}, nil
}

func (f *fakeConsulKV) Get(key string, _ *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, nil, f.getErr
	}
	p, ok := f.pairs[key]
	if !ok {
		return nil, &api.QueryMeta{}, nil
	}
	cp := *p
	cp.Value = append([]byte{}, p.Value...)
	return &cp, &api.QueryMeta{}, nil
}

func (f *fakeConsulKV) CAS(p *api.KVPair, _ *api.WriteOptions) (bool, *api.WriteMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.casCalls++
	if f.failCAS > 0 {
		f.failCAS--
		return false, &api.WriteMeta{}, nil
	}

	existing, ok := f.pairs[p.Key]
	switch {
	case p.ModifyIndex == 0 && ok:
		return false, &api.WriteMeta{}, nil
	case p.ModifyIndex != 0 && (!ok || existing.ModifyIndex != p.ModifyIndex):
		return false, &api.WriteMeta{}, nil
	}
	f.store(p)
	return true, &api.WriteMeta{}, nil
}

func (f *fakeConsulKV) DeleteTree(prefix string, _ *api.WriteOptions) (*api.WriteMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.pairs {
		if strings.HasPrefix(key, prefix) {
			delete(f.pairs, key)
		}
	}
	return &api.WriteMeta{}, nil
}

func (f *fakeConsulKV) store(p *api.KVPair) {
	f.index++
	f.pairs[p.Key] = &api.KVPair{
		Key:         p.Key,
		Value:       append([]byte{}, p.Value...),
		ModifyIndex: f.index,
	}
}

func (f *fakeConsulKV) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.pairs))
	for key := range f.pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
