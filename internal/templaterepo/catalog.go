package templaterepo

import "fmt"

// Catalog is the fixed, ordered set of templates offered to the user.
// It has no mutation API; callers get copies of its entries.
type Catalog struct {
	templates []Template
	byTitle   map[string]int
}

// NewCatalog builds a catalog from the given templates, preserving their order.
// Titles must be unique and every source must parse as owner/repo.
func NewCatalog(templates ...Template) (*Catalog, error) {
	c := &Catalog{
		templates: make([]Template, 0, len(templates)),
		byTitle:   make(map[string]int, len(templates)),
	}

	for _, t := range templates {
		if t.Title == "" {
			return nil, fmt.Errorf("template for %s has no title", t.Source)
		}
		if t.Source.Owner == "" || t.Source.Repo == "" {
			return nil, fmt.Errorf("template %q has no source repository", t.Title)
		}
		if _, dup := c.byTitle[t.Title]; dup {
			return nil, fmt.Errorf("duplicate template title %q", t.Title)
		}
		c.byTitle[t.Title] = len(c.templates)
		c.templates = append(c.templates, t)
	}

	return c, nil
}

// DefaultCatalog returns the templates shipped with the CLI.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Template{Title: "Next.js + TypeScript", Source: mustParse("nakamaio/iota-example-with-next")},
		Template{Title: "Next.js + TypeScript + Tailwind + Shadcn", Source: mustParse("nakamaio/iota-example-with-next-shadcn")},
		Template{Title: "Next.js + TypeScript + Chakra UI", Source: mustParse("nakamaio/iota-example-with-next-chakra")},
		Template{Title: "Vite + React + TypeScript", Source: mustParse("nakamaio/iota-example-with-vite-react")},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Titles returns the display names in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.templates))
	for i, t := range c.templates {
		titles[i] = t.Title
	}
	return titles
}

// Templates returns a copy of the catalog entries in order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Lookup resolves a display name to its template.
func (c *Catalog) Lookup(title string) (Template, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return Template{}, false
	}
	return c.templates[i], true
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

func mustParse(s string) RepoSource {
	src, err := ParseRepoSource(s)
	if err != nil {
		panic(err)
	}
	return src
}
