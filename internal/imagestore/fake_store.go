package imagestore

import (
	"context"
	"io"
	"sync"
)

// FakeStore keeps images in memory. It backs local runs without a bucket
// and the handler tests.
type FakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

const fakePrefix = "memory://"

func NewFakeStore() *FakeStore {
	return &FakeStore{objects: map[string][]byte{}}
}

func (f *FakeStore) Put(_ context.Context, fileName, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	url := fakePrefix + NewKey(fileName)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[url] = data

	return url, nil
}

func (f *FakeStore) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, url)

	return nil
}

func (f *FakeStore) Has(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[url]

	return ok
}
