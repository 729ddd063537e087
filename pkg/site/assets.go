package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"

	"portfolio/pkg/actor"
)

// AssetFinder emits the path of every theme asset below `root`. Names
// starting with `.` or `_` are skipped, files and directories alike. The
// tree is listed on the first call, so the finder must run on one worker.
func AssetFinder(root fs.FS) actor.OutputCallback[string] {
	var assets []string
	var listed bool
	return func(ctx context.Context) (string, error) {
		if !listed {
			listed = true
			if err := fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if p != "." && isPrivateAsset(d.Name()) {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if d.Type().IsRegular() {
					assets = append(assets, p)
				}
				return nil
			}); err != nil {
				return "", fmt.Errorf("listing theme assets: %w", err)
			}
		}
		if len(assets) < 1 {
			return "", actor.ErrStop
		}
		next := assets[0]
		assets = assets[1:]
		return next, nil
	}
}

func isPrivateAsset(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// AssetCopier copies each asset from `src` to the same path below `prefix`
// in `dst`, stopping mid-file when the context is done.
func AssetCopier(dst billy.Filesystem, src fs.FS, prefix string) actor.InputCallback[string] {
	return func(ctx context.Context, p string) (err error) {
		var in fs.File
		var out billy.File
		target := path.Join(prefix, p)

		if in, err = src.Open(p); err != nil {
			goto ERROR
		}
		defer func() { err = errors.Join(err, in.Close()) }()

		if out, err = dst.Create(target); err != nil {
			goto ERROR
		}
		defer func() { err = errors.Join(err, out.Close()) }()

		if _, err = io.Copy(out, &contextReader{ctx, in}); err != nil {
			goto ERROR
		}
		return

	ERROR:
		err = fmt.Errorf("copying asset `%s` to `%s`: %w", p, target, err)
		return
	}
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
