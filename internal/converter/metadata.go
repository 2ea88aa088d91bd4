package converter

import (
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

// Metadata captures the recognized keys of a leading frontmatter block. Keys
// the converter does not recognize are ignored; malformed blocks are dropped
// without failing the conversion.
type Metadata struct {
	Author      string
	Email       string
	Created     string
	Modified    string
	Description string
	Keywords    []string
	Tags        []string
	Aliases     []string
	StyleClass  string
}

type metadataEnvelope struct {
	Author      string         `yaml:"author"`
	Email       string         `yaml:"email"`
	Created     any            `yaml:"created"`
	Modified    any            `yaml:"modified"`
	Date        any            `yaml:"date"`
	Description string         `yaml:"description"`
	Keywords    any            `yaml:"keywords"`
	Tags        any            `yaml:"tags"`
	Aliases     any            `yaml:"aliases"`
	CSSClass    string         `yaml:"cssclass"`
	Custom      map[string]any `yaml:",inline"`
}

// extractMetadata strips a leading delimited metadata block from the source
// and returns the parsed side structure plus the remaining body. A block that
// fails to parse is logged and the source is returned untouched.
func extractMetadata(source string, logger interfaces.Logger) (Metadata, string) {
	var env metadataEnvelope

	body, err := frontmatter.Parse(strings.NewReader(source), &env)
	if err != nil {
		if logger != nil {
			logger.Warn("frontmatter parse failed, keeping body verbatim", "error", err)
		}
		return Metadata{}, source
	}

	created := scalarString(env.Created)
	if created == "" {
		created = scalarString(env.Date)
	}

	return Metadata{
		Author:      strings.TrimSpace(env.Author),
		Email:       strings.TrimSpace(env.Email),
		Created:     created,
		Modified:    scalarString(env.Modified),
		Description: strings.TrimSpace(env.Description),
		Keywords:    stringList(env.Keywords),
		Tags:        stringList(env.Tags),
		Aliases:     stringList(env.Aliases),
		StyleClass:  strings.TrimSpace(env.CSSClass),
	}, string(body)
}

// scalarString renders a frontmatter scalar (string, timestamp, number) as a
// plain string.
func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// stringList accepts bracketed YAML lists, indented lists, or a single comma
// separated scalar and normalizes them into a flat string slice.
func stringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if trimmed := scalarString(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case string:
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		if scalar := scalarString(v); scalar != "" {
			return []string{scalar}
		}
		return nil
	}
}
