package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"

	"portfolio/pkg/actor"
)

// artifact is one generated output file. Write runs on a templater worker.
type artifact struct {
	Path  string
	Write func(io.Writer) error
}

type file struct {
	Path string
	Data []byte
}

type templater = actor.Map[artifact, file]

// newTemplater generates each artifact into memory so a failure never
// leaves a partial file behind.
func newTemplater(
	name string,
	concurrency int,
	artifacts <-chan artifact,
) templater {
	return actor.NewMap(
		name,
		concurrency,
		artifacts,
		func(ctx context.Context, a artifact) (f file, err error) {
			var buf bytes.Buffer
			if err = a.Write(&buf); err != nil {
				err = fmt.Errorf("generating `%s`: %w", a.Path, err)
				return
			}
			f = file{Path: a.Path, Data: buf.Bytes()}
			return
		},
	)
}

// fileWriter writes each file into `dst`.
func fileWriter(dst billy.Filesystem) actor.InputCallback[file] {
	return func(ctx context.Context, f file) error {
		if err := write(dst, f.Path, f.Data); err != nil {
			return fmt.Errorf("writing `%s`: %w", f.Path, err)
		}
		return nil
	}
}

func write(fs billy.Filesystem, path string, data []byte) (err error) {
	var f billy.File
	if f, err = fs.Create(path); err != nil {
		return
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	_, err = f.Write(data)
	return
}
