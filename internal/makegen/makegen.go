// Package makegen renders a drush makefile equivalent to a configuration tree,
// so an installation can be reproduced with stock drush tooling.
package makegen

import (
	"fmt"
	"io"
	"strings"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/zerr"
)

// Write renders the makefile for the tree. Projects are emitted in sorted
// dirname order.
func Write(w io.Writer, tree *domain.Tree) error {
	var b strings.Builder

	b.WriteString("api = 2\n")
	if strings.HasPrefix(tree.Core.Project, "drupal-") {
		b.WriteString("core = 7.x\n")
	}

	for _, dirname := range tree.DefinedProjects() {
		writeProject(&b, tree.Projects[dirname])
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write makefile")
	}
	return nil
}

func writeProject(b *strings.Builder, p *domain.Project) {
	if p.IsDrupalOrg() && len(p.Pipeline) > 0 {
		// drush resolves the release itself, so the download entry collapses
		// into a version line and only the patches remain.
		key := "projects[" + p.Name + "]"
		fmt.Fprintf(b, "%s[version] = %s\n", key, p.Version)
		for _, res := range p.Pipeline[1:] {
			writeResource(b, res, key+"[patch][]", true)
		}
		b.WriteByte('\n')
		return
	}

	if len(p.Pipeline) == 0 {
		return
	}
	key := "projects[" + strings.SplitN(p.Dirname, "-", 2)[0] + "]"
	writeResource(b, p.Pipeline[0], key+"[download]", false)
	for _, res := range p.Pipeline[1:] {
		writeResource(b, res, key+"[patch][]", true)
	}
	b.WriteByte('\n')
}

func writeResource(b *strings.Builder, res domain.Resource, key string, shorthand bool) {
	if res.Purpose != "" {
		b.WriteString("; " + res.Purpose)
		if res.Link != "" {
			b.WriteString(" - " + res.Link)
		}
		b.WriteByte('\n')
	}

	switch {
	case res.IsSCM():
		fmt.Fprintf(b, "%s[type] = git\n", key)
		fmt.Fprintf(b, "%s[url] = %s\n", key, res.URL)
		if res.Branch != "" {
			fmt.Fprintf(b, "%s[branch] = %s\n", key, res.Branch)
		}
		if res.Revision != "" {
			fmt.Fprintf(b, "%s[revision] = %s\n", key, res.Revision)
		}
	case shorthand:
		fmt.Fprintf(b, "%s = %s\n", key, res.URL)
	default:
		fmt.Fprintf(b, "%s[type] = file\n", key)
		fmt.Fprintf(b, "%s[url] = %s\n", key, res.URL)
	}
}
