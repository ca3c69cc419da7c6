package util

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// UniqueFileName builds "<field>-<unix ms>-<random>.<ext>" keeping the
// original extension in lower case.
func UniqueFileName(field, originalName string, now time.Time) string {
	field = strings.TrimSpace(field)
	if field == "" {
		field = "file"
	}
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(originalName)))
	if strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return fmt.Sprintf("%s-%d-%d%s", field, now.UnixMilli(), randomSuffix(), ext)
}

func randomSuffix() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint32(time.Now().UnixNano() % 1e9)
	}
	return binary.BigEndian.Uint32(b[:]) % 1e9
}

// CleanBaseName makes name safe for a Content-Disposition file name. Path
// separators, reserved characters and control characters become '_'.
// Traversal sequences and blank names are refused.
func CleanBaseName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "..") {
		return "", false
	}
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, name)
	return clean, true
}
