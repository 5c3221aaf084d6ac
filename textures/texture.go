// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textures

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/internal/mipmap"
)

// Kind is the asset type name and directory of textures.
const Kind = "textures"

// Extensions lists the file extensions the texture mapper reads.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".webp"}

// MaxDimension is the largest width or height uploaded as is. Larger
// images are scaled down to fit, keeping their aspect ratio.
const MaxDimension = 8192

// ErrNotImage is returned for texture files that are not a known image format.
var ErrNotImage = errors.New("textures: not an image")

// TextureData is the raw record of a texture: the encoded image file.
type TextureData struct {
	Name string
	Data []byte
}

// FromDisk reads an image file.
func FromDisk(path string) (TextureData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TextureData{}, err
	}
	if !filetype.IsImage(data) {
		return TextureData{}, fmt.Errorf("%w: %s", ErrNotImage, path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return TextureData{Name: name, Data: data}, nil
}

// Encoding tells Upload how to average texels when building mip levels.
type Encoding = mipmap.Encoding

// Texel encodings.
const (
	SRGB   = mipmap.SRGB   // color maps
	Linear = mipmap.Linear // data maps such as normal maps
)

// Texture is an RGBA8 texture with a full mip chain resident on the GPU.
type Texture struct {
	Name      string
	Width     int
	Height    int
	MipLevels int
	Texture   hal.Texture
	View      hal.TextureView
}

// ToAsset decodes the image and uploads it.
func (d TextureData) ToAsset(bc *assets.BuildContext) (*Texture, error) {
	img, err := Decode(d.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	return Upload(bc, d.Name, img, SRGB)
}

// Decode decodes an encoded image into RGBA pixels.
func Decode(data []byte) (*image.RGBA, error) {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		assets.Logger().Debug("textures: decoding", "mime", kind.MIME.Value, "bytes", len(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return clone.AsRGBA(img), nil
}

// fit scales img down so neither side exceeds MaxDimension.
func fit(img *image.RGBA) *image.RGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= MaxDimension && h <= MaxDimension {
		return img
	}
	scale := float64(MaxDimension) / float64(max(w, h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	assets.Logger().Warn("textures: image scaled down", "from", fmt.Sprintf("%dx%d", w, h), "to", fmt.Sprintf("%dx%d", nw, nh))
	return transform.Resize(img, nw, nh, transform.Linear)
}

// Upload creates an RGBA8 texture and view from img and writes its pixels
// and every mip level. Models use it for their material maps.
func Upload(bc *assets.BuildContext, label string, img *image.RGBA, enc Encoding) (*Texture, error) {
	if err := bc.RequireDevice(); err != nil {
		return nil, err
	}
	img = fit(img)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrNotImage, label)
	}
	levels := mipmap.Chain(img, enc)
	size := hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1} //nolint:gosec // bounded by MaxDimension

	tex, err := bc.Device.CreateTexture(&hal.TextureDescriptor{
		Label:         "texture:" + label,
		Size:          size,
		MipLevelCount: uint32(len(levels)), //nolint:gosec // at most 14 levels
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("textures: create %s: %w", label, err)
	}

	view, err := bc.Device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "texture:" + label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: uint32(len(levels)), //nolint:gosec // at most 14 levels
	})
	if err != nil {
		bc.Device.DestroyTexture(tex)
		return nil, fmt.Errorf("textures: create view %s: %w", label, err)
	}

	for i, level := range levels {
		writeLevel(bc.Queue, tex, uint32(i), level) //nolint:gosec // at most 14 levels
	}
	assets.Logger().Debug("textures: uploaded", "name", label, "width", w, "height", h, "mips", len(levels))

	return &Texture{Name: label, Width: w, Height: h, MipLevels: len(levels), Texture: tex, View: view}, nil
}

func writeLevel(queue hal.Queue, tex hal.Texture, mip uint32, img *image.RGBA) {
	size := hal.Extent3D{
		Width:              uint32(img.Bounds().Dx()), //nolint:gosec // bounded by MaxDimension
		Height:             uint32(img.Bounds().Dy()), //nolint:gosec // bounded by MaxDimension
		DepthOrArrayLayers: 1,
	}
	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: mip,
		},
		img.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride), //nolint:gosec // stride of a bounded image
			RowsPerImage: size.Height,
		},
		&size,
	)
}

// Destroy releases the view and the texture.
func (t *Texture) Destroy(device hal.Device) {
	if t.View != nil {
		device.DestroyTextureView(t.View)
		t.View = nil
	}
	if t.Texture != nil {
		device.DestroyTexture(t.Texture)
		t.Texture = nil
	}
}

// Mapper moves textures through the asset pipeline.
type Mapper = assets.RawMapper[TextureData, *Texture]

// NewMapper returns a mapper for textures/** image files.
func NewMapper() *Mapper {
	return assets.NewRawMapper[TextureData, *Texture](Kind, FromDisk, Extensions...)
}
