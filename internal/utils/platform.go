// Package utils provides small platform helpers shared across packages.
package utils

import (
	"path/filepath"
	"strings"
)

// batchExtensions are the Windows script extensions that must be run
// through cmd.exe.
var batchExtensions = map[string]bool{
	".bat": true,
	".cmd": true,
}

// IsBatchFile reports whether path names a Windows batch script.
func IsBatchFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return batchExtensions[ext]
}
