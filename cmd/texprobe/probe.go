package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/glestex"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// prober owns the textures created from a configuration. Every method
// must be called from the same goroutine.
type prober struct {
	cfg      *Config
	r        *glestex.Renderer
	log      *slog.Logger
	out      io.Writer
	textures map[string]*glestex.Texture
}

func newProber(cfg *Config, r *glestex.Renderer, log *slog.Logger, out io.Writer) *prober {
	return &prober{
		cfg:      cfg,
		r:        r,
		log:      log,
		out:      out,
		textures: make(map[string]*glestex.Texture),
	}
}

// run uploads every configured texture, optionally watches the source
// images, then destroys everything it created.
func (p *prober) run(ctx context.Context) error {
	defer p.destroyAll()

	p.printCapabilities()

	images, err := decodeImages(ctx, p.cfg)
	if err != nil {
		return err
	}
	for i, u := range p.cfg.Uploads {
		tex, err := p.upload(u, images[i])
		if err != nil {
			return errors.Wrapf(err, "upload %q", u.Name)
		}
		p.textures[u.Name] = tex
		if u.Write != nil {
			if err := p.write(tex, *u.Write); err != nil {
				return errors.Wrapf(err, "write %q", u.Name)
			}
		}
	}
	p.printTextures()

	if p.cfg.Watch {
		if err := p.watch(ctx); err != nil {
			return err
		}
	}
	return nil
}

// decodeImages decodes the configured images concurrently. Entries
// without an image are nil.
func decodeImages(ctx context.Context, cfg *Config) ([]image.Image, error) {
	images := make([]image.Image, len(cfg.Uploads))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, u := range cfg.Uploads {
		if u.Image == "" {
			continue
		}
		path := cfg.imagePath(u)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(path)
			if err != nil {
				return errors.Wrapf(err, "upload %q", u.Name)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// upload creates one texture. Images are written through WriteImage so
// the red/blue order follows the configured format.
func (p *prober) upload(u UploadConfig, img image.Image) (*glestex.Texture, error) {
	format, err := glestex.ParseFormat(u.Format)
	if err != nil {
		return nil, err
	}
	info, ok := p.r.Formats().Lookup(format)
	if !ok {
		return nil, errors.Wrapf(glestex.ErrUnsupportedFormat, "%s", format)
	}

	width, height := u.Width, u.Height
	if img != nil {
		b := img.Bounds()
		if (width != 0 && width != b.Dx()) || (height != 0 && height != b.Dy()) {
			return nil, errors.Newf("image is %dx%d, config says %dx%d", b.Dx(), b.Dy(), width, height)
		}
		width, height = b.Dx(), b.Dy()
		if format == glestex.FormatABGR8888 && u.Stride == 0 {
			return p.r.FromImage(img)
		}
	}

	stride := u.Stride
	if stride == 0 {
		stride = width * info.BytesPerPixel()
	}
	var data []byte
	if img != nil {
		data = make([]byte, stride*height)
	} else {
		data = pattern(info, stride, width, height)
	}
	tex, err := p.r.FromPixels(format, stride, width, height, data)
	if err != nil {
		return nil, err
	}
	if img != nil {
		if err := tex.WriteImage(img, image.Point{}); err != nil {
			tex.Destroy()
			return nil, err
		}
	}
	return tex, nil
}

func (p *prober) write(tex *glestex.Texture, reg Region) error {
	info, _ := p.r.Formats().Lookup(tex.Format())
	stride := reg.Width * info.BytesPerPixel()
	return tex.Write(stride, reg.Width, reg.Height, 0, 0, reg.X, reg.Y,
		pattern(info, stride, reg.Width, reg.Height))
}

// pattern fills the pixel bytes of each row with a diagonal ramp and
// leaves row padding zero.
func pattern(info glestex.FormatInfo, stride, width, height int) []byte {
	data := make([]byte, stride*height)
	rowBytes := width * info.BytesPerPixel()
	for y := 0; y < height; y++ {
		row := data[y*stride : y*stride+rowBytes]
		for i := range row {
			row[i] = byte(i + y)
		}
	}
	return data
}

func (p *prober) destroyAll() {
	for name, tex := range p.textures {
		tex.Destroy()
		delete(p.textures, name)
	}
	fmt.Fprintln(p.out, p.r.Stats())
}

func (p *prober) printCapabilities() {
	c := p.r.Capabilities()
	fmt.Fprintf(p.out, "driver %s: image_target=%t wl_drm=%t dmabuf=%t dmabuf_modifiers=%t debug_markers=%t\n",
		p.cfg.Driver, c.ImageTarget, c.WaylandBuffer, c.DMABUFImport, c.DMABUFModifiers, c.DebugMarkers)
}

func (p *prober) printTextures() {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tFORMAT\tTARGET\tALPHA\tID")
	for _, u := range p.cfg.Uploads {
		t := p.textures[u.Name]
		fmt.Fprintf(tw, "%s\t%dx%d\t%s\t%s\t%t\t%s\n",
			u.Name, t.Width(), t.Height(), t.Format(), t.Target(), t.HasAlpha(), t.ID())
	}
	_ = tw.Flush()
}
