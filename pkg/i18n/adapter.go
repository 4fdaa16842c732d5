package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
)

// Adapter loads every available translation.
type Adapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations from an in-memory map.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return map[string]map[string]any{}, nil
	}
	return a.Data, nil
}

// FSAdapter loads every YAML and JSON file under dir in fsys.
// Files for the same language are merged; later files win on conflicting leaves.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

// NewFSAdapter creates an adapter over fsys. An empty dir means the root.
func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	all := make(map[string]map[string]any)
	err := fs.WalkDir(a.fsys, a.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Join(ErrFailedToReadDirectory, err)
		}
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrLoadingCancelled, err)
		}
		if d.IsDir() {
			return nil
		}
		parser := ParserForFile(d.Name())
		if parser == nil {
			return nil
		}

		content, err := fs.ReadFile(a.fsys, p)
		if err != nil {
			return errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", p, err))
		}
		if len(content) == 0 {
			return nil
		}
		parsed, err := parser.Parse(ctx, content)
		if err != nil {
			return errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", path.Base(p), err))
		}
		for lang, tr := range parsed {
			if all[lang] == nil {
				all[lang] = make(map[string]any, len(tr))
			}
			mergeTranslations(all[lang], tr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func mergeTranslations(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeTranslations(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			dst[k] = maps.Clone(srcMap)
			continue
		}
		dst[k] = v
	}
}
