package converter

import "strings"

// fixedAttributes is the attribute block appended to every converted
// document, after any metadata-derived attributes.
var fixedAttributes = []string{
	":doctype: article",
	":icons: font",
	":source-highlighter: rouge",
	":toc: auto",
	":experimental:",
}

// injectHeader prepends the document title line and attribute block. Metadata
// captured from the frontmatter maps onto attribute lines ahead of the fixed
// block.
func injectHeader(title string, meta Metadata, body string) string {
	var head []string
	head = append(head, "= "+title)

	if meta.Author != "" {
		author := meta.Author
		if meta.Email != "" {
			author += " <" + meta.Email + ">"
		}
		head = append(head, author)
	}
	if meta.Modified != "" {
		head = append(head, ":revdate: "+meta.Modified)
	} else if meta.Created != "" {
		head = append(head, ":revdate: "+meta.Created)
	}
	if meta.Description != "" {
		head = append(head, ":description: "+meta.Description)
	}
	if len(meta.Keywords) > 0 {
		head = append(head, ":keywords: "+strings.Join(meta.Keywords, ", "))
	}
	if len(meta.Tags) > 0 {
		head = append(head, ":tags: "+strings.Join(meta.Tags, ", "))
	}
	if len(meta.Aliases) > 0 {
		head = append(head, ":aliases: "+strings.Join(meta.Aliases, ", "))
	}
	if meta.StyleClass != "" {
		head = append(head, ":role: "+meta.StyleClass)
	}

	head = append(head, fixedAttributes...)

	return strings.Join(head, "\n") + "\n\n" + strings.TrimLeft(body, "\n")
}
