package helper

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	menuImageMaxDim     = 1600
	menuImageWebPQuality = 80
)

// SaveMenuImage decodes an uploaded image, resizes it to fit the display
// bound and stores it under dir as WebP. Returns the stored filename.
func SaveMenuImage(dir string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > menuImageMaxDim || img.Bounds().Dy() > menuImageMaxDim {
		img = imaging.Fit(img, menuImageMaxDim, menuImageMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: menuImageWebPQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := uuid.New().String() + ".webp"
	if err := os.WriteFile(filepath.Join(dir, filename), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return filename, nil
}

// RemoveUpload deletes a stored file referenced by its public /uploads URL.
// Missing files are not an error.
func RemoveUpload(dir, url string) {
	name := filepath.Base(url)
	if name == "." || name == "/" || name == "" {
		return
	}
	_ = os.Remove(filepath.Join(dir, name))
}
