//go:build !linux && !darwin

package fsmeta

import (
	"io/fs"

	"github.com/aki/eb/internal/core/listing"
)

// fillPlatform leaves only what fs.FileInfo carries portably. Selecting a
// changed, created or accessed column on these platforms is an error.
func fillPlatform(_ *listing.Entry, _ string, _ fs.FileInfo) {}
