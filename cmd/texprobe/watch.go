package main

import (
	"context"
	"image"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// watch re-uploads images when they change on disk until ctx is done.
// Directories are watched rather than files so editors that replace the
// file on save are still seen.
func (p *prober) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	byPath := make(map[string]UploadConfig)
	dirs := make(map[string]bool)
	for _, u := range p.cfg.Uploads {
		if u.Image == "" {
			continue
		}
		path, err := filepath.Abs(p.cfg.imagePath(u))
		if err != nil {
			return err
		}
		byPath[path] = u
		dirs[filepath.Dir(path)] = true
	}
	if len(byPath) == 0 {
		p.log.Warn("watch: no images configured")
		return nil
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %s", dir)
		}
	}
	p.log.Info("watching images", "count", len(byPath))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			u, ok := byPath[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			if err := p.reload(u); err != nil {
				p.log.Error("reload failed", "upload", u.Name, "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Error("watch", "err", err)
		}
	}
}

// reload writes a changed image into its texture, or recreates the
// texture when the size changed.
func (p *prober) reload(u UploadConfig) error {
	img, err := decodeFile(p.cfg.imagePath(u))
	if err != nil {
		return err
	}
	old := p.textures[u.Name]
	b := img.Bounds()
	if old != nil && old.Width() == b.Dx() && old.Height() == b.Dy() {
		if err := old.WriteImage(img, image.Point{}); err != nil {
			return err
		}
		p.log.Info("reloaded", "upload", u.Name, "id", old.ID())
		return nil
	}

	u.Width, u.Height = 0, 0
	tex, err := p.upload(u, img)
	if err != nil {
		return err
	}
	old.Destroy()
	p.textures[u.Name] = tex
	p.log.Info("recreated", "upload", u.Name, "size", b.Size(), "id", tex.ID())
	return nil
}
