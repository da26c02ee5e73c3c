package session

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cristianadrielbraun/payqr/internal/qrengine"
)

// BundleFormats are the files written into an export bundle, in order.
var BundleFormats = []qrengine.Format{qrengine.PNG, qrengine.SVG, qrengine.PDF}

// Bundle renders the settled code in every BundleFormats format
// concurrently and returns them as a zip archive.
func (s *Session) Bundle(ctx context.Context) ([]byte, error) {
	req := s.Request()
	if !s.countdown.Visible() {
		return nil, ErrExpired
	}
	opts := req.Options()

	files := make([][]byte, len(BundleFormats))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range BundleFormats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := qrengine.Export(opts, f)
			if err != nil {
				return fmt.Errorf("render %s: %w", f, err)
			}
			files[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, f := range BundleFormats {
		w, err := zw.Create(f.Filename())
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", f.Filename(), err)
		}
		if _, err := w.Write(files[i]); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Filename(), err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close bundle: %w", err)
	}
	return buf.Bytes(), nil
}
