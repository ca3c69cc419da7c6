package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"resume-roaster/internal/shared/util"
)

// Format is an export target.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

const defaultBaseName = "resume"

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrEmptyText         = errors.New("export text is empty")
)

// Document is a rendered file ready to be served or written to disk.
type Document struct {
	Data        []byte
	ContentType string
	FileName    string
}

var contentTypes = map[Format]string{
	FormatTXT:  "text/plain; charset=utf-8",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatPDF:  "application/pdf",
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := contentTypes[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
	return f, nil
}

// Render produces text in the requested format. baseName is used for the
// file name; its extension, if any, is replaced.
func Render(format Format, baseName, text string) (Document, error) {
	contentType, ok := contentTypes[format]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrEmptyText
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatTXT:
		data = []byte(text)
	case FormatDOCX:
		data, err = renderDOCX(text)
	case FormatPDF:
		data, err = renderPDF(text)
	}
	if err != nil {
		return Document{}, fmt.Errorf("render %s: %w", format, err)
	}

	return Document{
		Data:        data,
		ContentType: contentType,
		FileName:    fileName(baseName, format),
	}, nil
}

func fileName(baseName string, format Format) string {
	base := strings.TrimSpace(baseName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	clean, ok := util.CleanBaseName(base)
	if !ok {
		clean = defaultBaseName
	}
	return clean + "." + string(format)
}

// lines splits text into lines with trailing whitespace and CR removed.
func lines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimRight(l, " \t\r")
	}
	return out
}
