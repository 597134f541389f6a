package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	// MaxFileSize caps a single uploaded image.
	MaxFileSize = 5 * 1024 * 1024

	localsKey = "uploadedFile"
)

// File describes an upload that has already been persisted by a Store.
type File struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

type Store interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error
}

// Single decodes at most one file from the multipart field, rejects anything
// that is not an image or exceeds MaxFileSize, stores it and exposes the
// result to later handlers through FromContext. Requests without the field
// pass through untouched.
func Single(field string, store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return c.Next()
		}

		files := form.File[field]
		if len(files) == 0 {
			return c.Next()
		}
		if len(files) > 1 {
			return reject(c, fmt.Sprintf("Only one %s file may be uploaded", field))
		}

		fh := files[0]
		mimeType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") {
			return reject(c, "Not an image! Please upload an image.")
		}
		if fh.Size > MaxFileSize {
			return reject(c, "File too large. Maximum size is 5MB")
		}

		src, err := fh.Open()
		if err != nil {
			slog.ErrorContext(c.UserContext(), "Error opening uploaded file", slog.String("error", err.Error()))
			return reject(c, "Could not read uploaded file")
		}
		defer src.Close()

		name := GenerateFilename(fh.Filename, time.Now())
		if err := store.Save(c.UserContext(), name, mimeType, src, fh.Size); err != nil {
			slog.ErrorContext(c.UserContext(), "Error storing uploaded file", slog.String("filename", name), slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
		}

		c.Locals(localsKey, &File{Filename: name, MimeType: mimeType, Size: fh.Size})

		return c.Next()
	}
}

// FromContext returns the file stored by Single, or nil when none was sent.
func FromContext(c *fiber.Ctx) *File {
	f, _ := c.Locals(localsKey).(*File)
	return f
}

// GenerateFilename builds "<unix millis>-<random>-<original base name>".
func GenerateFilename(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	base = strings.ReplaceAll(base, " ", "_")

	return fmt.Sprintf("%d-%d-%s", now.UnixMilli(), rand.Int64N(1_000_000_000), base)
}

func reject(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}
