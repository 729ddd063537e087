package site

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/pkg/actor"
)

func assetFS() fstest.MapFS {
	return fstest.MapFS{
		"site.css":          {Data: []byte("body {}")},
		"img/avatar.png":    {Data: []byte("png")},
		".DS_Store":         {Data: []byte("junk")},
		"_drafts/old.css":   {Data: []byte("old")},
		"img/.hidden.svg":   {Data: []byte("svg")},
		"fonts/_partial.js": {Data: []byte("js")},
	}
}

func TestAssetFinderSkipsPrivateNames(t *testing.T) {
	find := AssetFinder(assetFS())
	var found []string
	for {
		p, err := find(context.Background())
		if errors.Is(err, actor.ErrStop) {
			break
		}
		require.NoError(t, err)
		found = append(found, p)
	}
	assert.ElementsMatch(t, []string{"site.css", "img/avatar.png"}, found)
}

func TestAssetFinderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AssetFinder(assetFS())(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssetCopier(t *testing.T) {
	dst := memfs.New()
	copyAsset := AssetCopier(dst, assetFS(), "static")
	require.NoError(t, copyAsset(context.Background(), "img/avatar.png"))

	data, err := util.ReadFile(dst, "static/img/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	err = copyAsset(context.Background(), "missing.css")
	assert.ErrorContains(t, err, "copying asset `missing.css`")
}
