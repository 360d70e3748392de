package sections

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

// Props are the per-component settings stored with a section.
type Props map[string]interface{}

func (p Props) str(key, fallback string) string {
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Renderer turns a section's props into HTML.
type Renderer func(p Props) (template.HTML, error)

// Registry dispatches kinds to renderers. Every kind has exactly one slot.
type Registry struct {
	renderers [kindCount]Renderer
	policy    *bluemonday.Policy
}

// NewRegistry returns a registry with the built-in renderer for every kind.
func NewRegistry() *Registry {
	r := &Registry{policy: bluemonday.UGCPolicy()}
	r.renderers = [kindCount]Renderer{
		KindUnknown:      nil,
		KindHero:         templateRenderer(heroTmpl),
		KindServices:     templateRenderer(servicesTmpl),
		KindAbout:        templateRenderer(aboutTmpl),
		KindTestimonials: templateRenderer(testimonialsTmpl),
		KindPortfolio:    templateRenderer(portfolioTmpl),
		KindGallery:      r.renderGallery,
		KindProcess:      templateRenderer(processTmpl),
		KindCTA:          templateRenderer(ctaTmpl),
		KindFAQ:          templateRenderer(faqTmpl),
		KindContactForm:  templateRenderer(contactTmpl),
		KindCustom:       r.renderCustom,
	}
	return r
}

// Override replaces the renderer for k.
func (r *Registry) Override(k Kind, fn Renderer) {
	if k <= KindUnknown || k >= kindCount {
		return
	}
	r.renderers[k] = fn
}

// Render renders one section. Unknown kinds render nothing.
func (r *Registry) Render(kind string, p Props) (template.HTML, error) {
	fn := r.renderers[Parse(kind)]
	if fn == nil {
		return "", nil
	}
	if p == nil {
		p = Props{}
	}
	out, err := fn(p)
	if err != nil {
		return "", fmt.Errorf("render %s section: %w", kind, err)
	}
	return out, nil
}

func templateRenderer(t *template.Template) Renderer {
	return func(p Props) (template.HTML, error) {
		var buf bytes.Buffer
		if err := t.Execute(&buf, p); err != nil {
			return "", err
		}
		return template.HTML(buf.String()), nil
	}
}

type galleryImage struct {
	Src string
	Alt string
}

var defaultGallery = []galleryImage{
	{"/images/stand-1.jpg", "Exhibition Stand 1"},
	{"/images/stand-2.jpg", "Exhibition Stand 2"},
	{"/images/stand-3.jpg", "Exhibition Stand 3"},
	{"/images/hero-stand.jpg", "Featured Stand"},
}

func (r *Registry) renderGallery(p Props) (template.HTML, error) {
	images := defaultGallery
	if raw, ok := p["images"].([]interface{}); ok && len(raw) > 0 {
		images = make([]galleryImage, 0, len(raw))
		for _, item := range raw {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			src, _ := m["src"].(string)
			alt, _ := m["alt"].(string)
			if src != "" {
				images = append(images, galleryImage{Src: src, Alt: alt})
			}
		}
	}
	var buf bytes.Buffer
	err := galleryTmpl.Execute(&buf, struct {
		Title  string
		Images []galleryImage
	}{p.str("title", "Featured Projects Gallery"), images})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// renderCustom emits the stored HTML after sanitizing it.
func (r *Registry) renderCustom(p Props) (template.HTML, error) {
	raw := p.str("html", "")
	if raw == "" {
		return template.HTML(`<section class="section section-custom"></section>`), nil
	}
	clean := r.policy.Sanitize(raw)
	return template.HTML(`<section class="section section-custom">` + clean + `</section>`), nil
}
