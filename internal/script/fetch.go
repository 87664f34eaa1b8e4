// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/tbprogress/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrFetchScript is returned when a script URL cannot be retrieved.
var ErrFetchScript = errors.New("failed to fetch progress script")

const (
	getterPathSeparator = "//"
	getterRefSeparator  = "?"
	minGetterParts      = 3
)

// Fetch retrieves the script at src, which may be a local path or any go-getter URL
// naming a file, then decodes and validates it.
func Fetch(ctx context.Context, src string, vars map[string]string) (*Script, error) {
	data, name, err := fetchBytes(ctx, src)
	if err != nil {
		return nil, err
	}

	return Decode(name, data, vars)
}

// fetchBytes returns the content and file name of src.
// Local paths are read through FsFactory. Remote sources are downloaded into a temporary
// directory; go-getter only fetches directories for those, so the file name is split off first.
func fetchBytes(ctx context.Context, src string) ([]byte, string, error) {
	if src == "" {
		return nil, "", fmt.Errorf("%w: empty source", ErrFetchScript)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrFetchScript, err)
	}

	req := &getter.Request{
		Src:     src,
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	ok, err := getter.Detect(req, &getter.FileGetter{})
	if err != nil {
		return nil, "", errors.Join(ErrFetchScript, err)
	}

	if ok {
		ctxlog.Debug(ctx, "script", "detail", "reading local file", "src", src)

		data, err := afero.ReadFile(FsFactory(), src)
		if err != nil {
			return nil, "", errors.Join(ErrFetchScript, err)
		}

		return data, filepath.Base(src), nil
	}

	dirURL, fileName := splitGetterURL(src)
	if dirURL == "" || fileName == "" {
		return nil, "", fmt.Errorf("%w: URL must name a file: %s", ErrFetchScript, src)
	}

	tmpDir, err := os.MkdirTemp("", "tbprogress-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrFetchScript, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	req.Src = dirURL
	req.Dst = filepath.Join(tmpDir, "g")

	ctxlog.Debug(ctx, "script", "detail", "fetching", "src", req.Src, "file", fileName)

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, "", errors.Join(ErrFetchScript, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, "", errors.Join(ErrFetchScript, err)
	}

	return data, fileName, nil
}

// splitGetterURL splits "git::https://host/repo//dir/file.yaml?ref=v1" into
// "git::https://host/repo//dir?ref=v1" and "file.yaml".
func splitGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, getterPathSeparator)
	if len(parts) < minGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, found := strings.Cut(last, getterRefSeparator); found {
		last, ref = before, after
	}

	if last == "" || strings.HasSuffix(last, "/") {
		return "", ""
	}

	fileName := path.Base(last)
	dir := path.Dir(last)

	if dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	out := strings.Join(parts, getterPathSeparator)
	if ref != "" {
		out += getterRefSeparator + ref
	}

	return out, fileName
}
