package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"sync"
)

// Images larger than this are rejected rather than buffered.
const maxImageBytes = 8 << 20

// Natural pixel sizes are converted to millimeters at screen resolution.
const pxPerMM = 96.0 / 25.4

type imageAsset struct {
	Src       string
	Name      string // registration name inside the PDF
	ImageType string // gofpdf type string: PNG, JPG, GIF
	Data      []byte
	PixelW    int
	PixelH    int
}

func (a *imageAsset) WidthMM() float64  { return float64(a.PixelW) / pxPerMM }
func (a *imageAsset) HeightMM() float64 { return float64(a.PixelH) / pxPerMM }

// probeImages fetches every src concurrently and waits for all of them, so
// dimensions are known before any drawing starts. A failed load leaves a nil
// slot; the draw pass skips it. Draw order stays textual order regardless of
// completion order.
func probeImages(client *http.Client, srcs []string) []*imageAsset {
	assets := make([]*imageAsset, len(srcs))
	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			asset, err := fetchImage(client, src)
			if err != nil {
				log.Printf("report: skipping image %q: %v", src, err)
				return
			}
			assets[i] = asset
		}(i, src)
	}
	wg.Wait()
	return assets
}

func fetchImage(client *http.Client, src string) (*imageAsset, error) {
	if src == "" {
		return nil, fmt.Errorf("empty image src")
	}
	resp, err := client.Get(src)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	var imageType string
	switch format {
	case "png":
		imageType = "PNG"
	case "jpeg":
		imageType = "JPG"
	case "gif":
		imageType = "GIF"
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("degenerate image size %dx%d", cfg.Width, cfg.Height)
	}
	return &imageAsset{
		Src:       src,
		ImageType: imageType,
		Data:      data,
		PixelW:    cfg.Width,
		PixelH:    cfg.Height,
	}, nil
}
