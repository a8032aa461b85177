package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ExportService renders a user's notes to a single standalone HTML
// document. Note content is treated as GFM markdown.
type ExportService struct {
	notes NoteStore
	md    goldmark.Markdown
}

func NewExportService(notes NoteStore) *ExportService {
	return &ExportService{
		notes: notes,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

func (s *ExportService) RenderHTML(ctx context.Context, userID string) (string, error) {
	notes, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	var source strings.Builder
	for i, note := range notes {
		if i > 0 {
			source.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&source, "# %s\n\n%s\n", note.Title, note.Content)
	}
	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>HD Notes export</title></head>\n<body>\n")
	if err := s.md.Convert([]byte(source.String()), &out); err != nil {
		return "", err
	}
	out.WriteString("</body>\n</html>\n")
	return out.String(), nil
}
