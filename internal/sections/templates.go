package sections

import "html/template"

func mustSection(name, body string) *template.Template {
	return template.Must(template.New(name).Funcs(template.FuncMap{
		"def": func(v interface{}, fallback string) interface{} {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
			return fallback
		},
	}).Parse(body))
}

var (
	heroTmpl = mustSection("hero", `<section class="section section-hero">
<h1>{{def .title "Exhibition Stands That Command Attention"}}</h1>
<p>{{def .subtitle "Custom trade show booths designed, built and installed worldwide."}}</p>
<a class="button" href="{{def .ctaHref "/contact"}}">{{def .ctaLabel "Get a Free Quote"}}</a>
</section>`)

	servicesTmpl = mustSection("services", `<section class="section section-services">
<h2>{{def .title "Our Services"}}</h2>
<ul><li>Custom Stand Design</li><li>Build and Installation</li><li>Modular Systems</li><li>Project Management</li></ul>
</section>`)

	aboutTmpl = mustSection("about", `<section class="section section-about">
<h2>{{def .title "About Verlux Stands"}}</h2>
<p>{{def .body "We design and build exhibition stands for brands at trade shows across the globe."}}</p>
</section>`)

	testimonialsTmpl = mustSection("testimonials", `<section class="section section-testimonials">
<h2>{{def .title "What Our Clients Say"}}</h2>
</section>`)

	portfolioTmpl = mustSection("portfolio", `<section class="section section-portfolio">
<h2>{{def .title "Our Portfolio"}}</h2>
<a href="/portfolio">View all projects</a>
</section>`)

	galleryTmpl = template.Must(template.New("gallery").Parse(`<section class="section section-gallery">
<h2>{{.Title}}</h2>
<div class="grid">{{range .Images}}<img src="{{.Src}}" alt="{{.Alt}}" loading="lazy">{{end}}</div>
</section>`))

	processTmpl = mustSection("process", `<section class="section section-process">
<h2>{{def .title "How It Works"}}</h2>
<ol><li>Consultation</li><li>Design</li><li>Production</li><li>Installation</li></ol>
</section>`)

	ctaTmpl = mustSection("cta", `<section class="section section-cta">
<h2>{{def .title "Ready to Stand Out at Your Next Show?"}}</h2>
<a class="button" href="{{def .ctaHref "/contact"}}">{{def .ctaLabel "Contact Us"}}</a>
</section>`)

	faqTmpl = mustSection("faq", `<section class="section section-faq">
<h2>{{def .title "Frequently Asked Questions"}}</h2>
</section>`)

	contactTmpl = mustSection("contact-form", `<section class="section section-contact">
<h2>{{def .title "Get in Touch"}}</h2>
<a class="button" href="/contact">Contact Us</a>
</section>`)
)
