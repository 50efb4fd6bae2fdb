package resources

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirStore serves resources from a local directory.
type DirStore struct {
	root string
}

// NewDirStore creates a store rooted at dir, creating it if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("resources: create root %s: %w", dir, err)
	}
	return &DirStore{root: dir}, nil
}

func (s *DirStore) resolve(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Open implements Store.
func (s *DirStore) Open(_ context.Context, key string) (*Resource, error) {
	p, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resources: open %s: %w", key, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("resources: stat %s: %w", key, err)
	}
	if st.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}
	return &Resource{
		Info:        Info{Key: key, Size: st.Size(), ModTime: st.ModTime()},
		ContentType: contentTypeFor(key),
		Body:        f,
	}, nil
}

// Exists implements Store.
func (s *DirStore) Exists(_ context.Context, key string) (bool, error) {
	p, err := s.resolve(key)
	if err != nil {
		return false, err
	}
	st, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("resources: stat %s: %w", key, err)
	}
	return !st.IsDir(), nil
}

// List implements Store.
func (s *DirStore) List(_ context.Context, prefix string) ([]Info, error) {
	base, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}
	var infos []Info
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == base {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		infos = append(infos, Info{
			Key:     filepath.ToSlash(rel),
			Size:    st.Size(),
			ModTime: st.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resources: list %s: %w", prefix, err)
	}
	return infos, nil
}
