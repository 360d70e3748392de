// Package sections renders the fixed set of page-builder section kinds.
package sections

// Kind is a page-builder section type. The set is closed; strings that do not
// name a kind parse to KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindHero
	KindServices
	KindAbout
	KindTestimonials
	KindPortfolio
	KindGallery
	KindProcess
	KindCTA
	KindFAQ
	KindContactForm
	KindCustom

	kindCount
)

type kindInfo struct {
	name        string
	label       string
	description string
}

var kinds = [kindCount]kindInfo{
	KindUnknown:      {},
	KindHero:         {"hero", "Hero Section", "Main banner with headline and CTA"},
	KindServices:     {"services", "Services Grid", "Display services in a grid layout"},
	KindAbout:        {"about", "About Section", "Company information and values"},
	KindTestimonials: {"testimonials", "Testimonials", "Client reviews and feedback"},
	KindPortfolio:    {"portfolio", "Portfolio Gallery", "Showcase past projects"},
	KindGallery:      {"gallery", "Image Gallery", "Photo grid showcase"},
	KindProcess:      {"process", "Process Steps", "How it works section"},
	KindCTA:          {"cta", "Call to Action", "Conversion-focused section"},
	KindFAQ:          {"faq", "FAQ Section", "Frequently asked questions"},
	KindContactForm:  {"contact-form", "Contact Form", "Lead capture form"},
	KindCustom:       {"custom", "Custom Block", "Custom HTML/component"},
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := KindUnknown + 1; k < kindCount; k++ {
		m[kinds[k].name] = k
	}
	return m
}()

// Parse maps a stored type string to its Kind.
func Parse(name string) Kind {
	if k, ok := byName[name]; ok {
		return k
	}
	return KindUnknown
}

// Valid reports whether name is a known section kind.
func Valid(name string) bool {
	return Parse(name) != KindUnknown
}

func (k Kind) String() string {
	if k <= KindUnknown || k >= kindCount {
		return "unknown"
	}
	return kinds[k].name
}

// Label is the human name shown in the builder palette.
func (k Kind) Label() string {
	if k <= KindUnknown || k >= kindCount {
		return ""
	}
	return kinds[k].label
}

// Description is the palette subtitle.
func (k Kind) Description() string {
	if k <= KindUnknown || k >= kindCount {
		return ""
	}
	return kinds[k].description
}

// CatalogEntry describes one kind for the builder palette.
type CatalogEntry struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Catalog lists every known kind in declaration order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, CatalogEntry{Type: k.String(), Label: k.Label(), Description: k.Description()})
	}
	return out
}
