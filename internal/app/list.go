package app

import (
	"context"
	"strings"

	"reqtxt/internal/ports"
	"reqtxt/internal/types"
)

// List renders the parsed entries back to one line each, in document
// order across the whole include tree.
func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	parsed, err := s.Parse(ctx, ParseRequest{Path: req.Path})
	if err != nil {
		return ListResult{}, err
	}
	var result ListResult
	if req.Constraints {
		for _, entry := range parsed.Constraints {
			result.Entries = append(result.Entries, ListEntry{
				Text: formatSpecifier(entry.Specifier),
				Name: entryName(entry.Specifier, s.Names),
				Span: entry.Span,
			})
		}
		return result, nil
	}
	for _, entry := range parsed.Requirements {
		if req.EditableOnly && !entry.Editable {
			continue
		}
		text := formatSpecifier(entry.Specifier)
		if entry.Editable {
			text = "-e " + text
		}
		result.Entries = append(result.Entries, ListEntry{
			Text:     text,
			Name:     entryName(entry.Specifier, s.Names),
			Editable: entry.Editable,
			Span:     entry.Span,
		})
	}
	return result, nil
}

// formatSpecifier renders a specifier in requirements-file syntax.
func formatSpecifier(specifier types.Specifier) string {
	var builder strings.Builder
	switch specifier.Kind {
	case types.SpecifierNamed:
		builder.WriteString(specifier.Name)
		writeExtras(&builder, specifier.Extras)
		builder.WriteString(specifier.Versions)
	case types.SpecifierURL, types.SpecifierVCS:
		if specifier.Name != "" {
			builder.WriteString(specifier.Name)
			writeExtras(&builder, specifier.Extras)
			builder.WriteString(" @ ")
		}
		builder.WriteString(specifier.URL)
	case types.SpecifierPath:
		if specifier.Name != "" {
			builder.WriteString(specifier.Name)
			writeExtras(&builder, specifier.Extras)
			builder.WriteString(" @ ")
		}
		builder.WriteString(specifier.Path)
	}
	if specifier.Marker != "" {
		builder.WriteString(" ; ")
		builder.WriteString(specifier.Marker)
	}
	return builder.String()
}

func writeExtras(builder *strings.Builder, extras []string) {
	if len(extras) == 0 {
		return
	}
	builder.WriteString("[")
	builder.WriteString(strings.Join(extras, ","))
	builder.WriteString("]")
}

func entryName(specifier types.Specifier, names ports.NameNormalizer) string {
	if specifier.Name == "" {
		return ""
	}
	if names == nil {
		return specifier.Name
	}
	return names.Normalize(specifier.Name)
}
