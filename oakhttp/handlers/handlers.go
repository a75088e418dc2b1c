// Package handlers provides ready-made callbacks built entirely on the
// public handler contract, the way any embedding application would
// write them.
package handlers

import (
	"errors"
	"io/fs"
	"mime"
	"os"
	"path"
	"strings"

	"oakhttp.dev/go/server/oakhttp"
)

// ServeSameDir serves files for a directory route from the local
// directory of the same name: a route at "/www" reads from ./www.
func ServeSameDir(req *oakhttp.Request, resp *oakhttp.Response) error {
	root := strings.TrimPrefix(req.Target.TargetPath, "/")
	return serveFile(root, req, resp)
}

// ServeDir serves files for a directory route from root, which need
// not match the route pattern.
func ServeDir(root string) oakhttp.HandlerFunc {
	return func(req *oakhttp.Request, resp *oakhttp.Response) error {
		return serveFile(root, req, resp)
	}
}

func serveFile(root string, req *oakhttp.Request, resp *oakhttp.Response) error {
	// Clean confines the lookup to root; ".." cannot escape it.
	rel := path.Clean("/" + req.Target.RelativePath)
	name := path.Join(root, rel)
	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := resp.SetStatus(oakhttp.StatusNotFound); err != nil {
				return err
			}
			return resp.End()
		}
		// Anything else becomes a 500 via the dispatcher.
		return err
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		if err := resp.SetHeader("Content-Type", ct); err != nil {
			return err
		}
	}
	if err := resp.Send(data); err != nil {
		return err
	}
	return resp.End()
}
