package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hydroline/hydroline/config"
)

// Manager holds the configured disks and the name of the default one.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// Connect boots the storage manager from configuration. The local disk is
// always available; the s3 disk is added only when S3_BUCKET is set.
func Connect() (*Manager, error) {
	m := &Manager{
		disks:       map[string]Disk{"local": newLocalDisk()},
		defaultDisk: config.StorageDefault(),
	}

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			return nil, fmt.Errorf("storage: boot s3 disk: %w", err)
		}
		m.disks["s3"] = d
	}

	if _, ok := m.disks[m.defaultDisk]; !ok {
		return nil, fmt.Errorf("storage: default disk %q is not configured", m.defaultDisk)
	}
	return m, nil
}

// Disk returns the named disk, or the default disk when name is "".
func (m *Manager) Disk(name string) (Disk, error) {
	if name == "" {
		name = m.defaultDisk
	}
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Register plugs in a custom Disk implementation. Used by tests to swap in
// an in-memory disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}

// Default returns the default disk.
func (m *Manager) Default() Disk {
	d, err := m.Disk("")
	if err != nil {
		panic(err)
	}
	return d
}

// Put writes content to path on the default disk.
func (m *Manager) Put(ctx context.Context, path string, content []byte) error {
	return m.Default().Put(ctx, path, content)
}

// PutStream writes from r to path on the default disk.
func (m *Manager) PutStream(ctx context.Context, path string, r io.Reader) error {
	return m.Default().PutStream(ctx, path, r)
}

// Delete removes path from the default disk.
func (m *Manager) Delete(ctx context.Context, path string) error {
	return m.Default().Delete(ctx, path)
}

// URL returns the public URL for path on the default disk.
func (m *Manager) URL(path string) string {
	return m.Default().URL(path)
}
