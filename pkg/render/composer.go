package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"shipbot/pkg/ship"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

const (
	CanvasWidth  = 500
	CanvasHeight = 200
	AvatarSize   = 150
	HeartSize    = 75
)

// ErrGenerate wraps every failure while building a ship image
var ErrGenerate = errors.New("failed to generate shipping image")

// Glyphs points at the heart images on disk. They are read on every render.
type Glyphs struct {
	Heart       string
	BrokenHeart string
}

// Composer draws two circular avatars with a heart between them
type Composer struct {
	glyphs  Glyphs
	fetcher *Fetcher
}

func NewComposer(glyphs Glyphs, fetcher *Fetcher) *Composer {
	return &Composer{
		glyphs:  glyphs,
		fetcher: fetcher,
	}
}

// Compose renders the ship image from raw avatar bytes as PNG
func (c *Composer) Compose(avatarA, avatarB []byte, percentage int) ([]byte, error) {
	left, err := decodeAvatar(avatarA)
	if err != nil {
		return nil, fmt.Errorf("%w: first avatar: %w", ErrGenerate, err)
	}
	right, err := decodeAvatar(avatarB)
	if err != nil {
		return nil, fmt.Errorf("%w: second avatar: %w", ErrGenerate, err)
	}

	glyphPath := c.glyphs.BrokenHeart
	if (ship.Result{Percentage: percentage}).WholeHeart() {
		glyphPath = c.glyphs.Heart
	}
	glyph, err := imaging.Open(glyphPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open glyph %s: %w", ErrGenerate, glyphPath, err)
	}
	glyph = imaging.Resize(glyph, HeartSize, HeartSize, imaging.Lanczos)

	canvas := imaging.New(CanvasWidth, CanvasHeight, color.NRGBA{})
	drawCircle(canvas, left, image.Pt(25, 25))
	drawCircle(canvas, right, image.Pt(CanvasWidth-25-AvatarSize, 25))

	heartAt := image.Pt((CanvasWidth-HeartSize)/2, (CanvasHeight-HeartSize)/2)
	out := imaging.Overlay(canvas, glyph, heartAt, 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrGenerate, err)
	}
	return buf.Bytes(), nil
}

func decodeAvatar(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return imaging.Resize(img, AvatarSize, AvatarSize, imaging.Lanczos), nil
}

// drawCircle blits src (AvatarSize square) clipped to its inscribed circle
func drawCircle(dst draw.Image, src image.Image, at image.Point) {
	r := AvatarSize / 2
	mask := &circle{center: image.Pt(r, r), radius: r}
	bounds := image.Rect(at.X, at.Y, at.X+AvatarSize, at.Y+AvatarSize)
	draw.DrawMask(dst, bounds, src, src.Bounds().Min, mask, image.Point{}, draw.Over)
}

// circle is an alpha mask that is opaque inside the radius
type circle struct {
	center image.Point
	radius int
}

func (c *circle) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.center.X-c.radius, c.center.Y-c.radius, c.center.X+c.radius, c.center.Y+c.radius)
}

func (c *circle) At(x, y int) color.Color {
	xx := float64(x-c.center.X) + 0.5
	yy := float64(y-c.center.Y) + 0.5
	rr := float64(c.radius)
	if xx*xx+yy*yy < rr*rr {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}

// Render fetches both avatars and composes them. Any failure is a single
// ErrGenerate; there is no retry and no partial image.
func (c *Composer) Render(ctx context.Context, avatarURLA, avatarURLB string, percentage int) ([]byte, error) {
	if c.fetcher == nil {
		return nil, fmt.Errorf("%w: no avatar fetcher configured", ErrGenerate)
	}

	var avatarA, avatarB []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := c.fetcher.Fetch(gctx, avatarURLA)
		avatarA = data
		return err
	})
	g.Go(func() error {
		data, err := c.fetcher.Fetch(gctx, avatarURLB)
		avatarB = data
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}

	return c.Compose(avatarA, avatarB, percentage)
}
