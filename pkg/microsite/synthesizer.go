package microsite

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

const (
	agentName     = "Kashmir Cortave"
	brokerageName = "Monarch & Co"
	agentPhone    = "(713) 299-2850"
	agentEmail    = "kashmir@monarch.co"

	portalPrefix = "https://monarch.co/portal/private-access-"
)

var portalLinkRe = regexp.MustCompile(`https://monarch\.co/\S+`)

// Synthesizer renders private portfolio pages and manufactures their access
// URLs. It is stateless; pages are stored on the lead, not on disk.
type Synthesizer struct {
	tpl *template.Template
}

func NewSynthesizer() (*Synthesizer, error) {
	tpl, err := template.New("portfolio").Parse(portfolioTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse portfolio template: %w", err)
	}
	return &Synthesizer{tpl: tpl}, nil
}

type templateData struct {
	Listing       *Listing
	AgentName     string
	BrokerageName string
	AgentPhone    string
	AgentEmail    string
}

// Synthesize renders the portfolio page for a listing.
func (s *Synthesizer) Synthesize(listing *Listing) (string, error) {
	var buf bytes.Buffer
	err := s.tpl.Execute(&buf, templateData{
		Listing:       listing,
		AgentName:     agentName,
		BrokerageName: brokerageName,
		AgentPhone:    agentPhone,
		AgentEmail:    agentEmail,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render portfolio page: %w", err)
	}
	return buf.String(), nil
}

// NewAccessURL mints a simulated secure portal URL with a fresh public token.
func (s *Synthesizer) NewAccessURL() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	token := make([]byte, 8)
	rand.Read(token)
	for i := range token {
		token[i] = alphabet[int(token[i])%len(alphabet)]
	}
	return portalPrefix + string(token)
}

// InjectAccessURL rewrites an email body so it carries exactly one portal
// link. An existing monarch.co link is replaced in place; otherwise a call to
// action paragraph is appended. Re-running with a new URL swaps the link
// without growing the body.
func InjectAccessURL(emailBody, accessURL string) string {
	if strings.Contains(emailBody, "https://monarch.co/") {
		return portalLinkRe.ReplaceAllString(emailBody, accessURL)
	}
	cta := fmt.Sprintf(
		"\n\nI've also curated a secure, private digital portfolio featuring properties that match your specific criteria. You can access it exclusively here:\n%s\n\n",
		accessURL,
	)
	return emailBody + cta
}

const portfolioTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Listing.PageTitle}} | Monarch &amp; Co</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            background-color: #0F0F0F;
            color: #E0E0E0;
            font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;
            line-height: 1.6;
            overflow-x: hidden;
        }
        a { text-decoration: none; color: inherit; transition: 0.3s; }
        ul { list-style: none; }
        img { max-width: 100%; display: block; object-fit: cover; }
        .font-serif { font-family: 'Didot', 'Bodoni MT', 'Playfair Display', serif; }
        .container { max-width: 1400px; margin: 0 auto; padding: 0 40px; }
        header { padding: 40px 0; border-bottom: 1px solid #1A1A1A; background: #0F0F0F; position: sticky; top: 0; z-index: 100; }
        .brand-logo { font-size: 32px; letter-spacing: 4px; font-weight: bold; color: #FFF; }
        .brand-sub { font-size: 10px; letter-spacing: 6px; color: #666; display: block; margin-top: 10px; }
        nav ul { display: flex; gap: 50px; font-size: 11px; letter-spacing: 3px; font-weight: 600; text-transform: uppercase; }
        .search-section { padding: 80px 0; background: #111; }
        .search-bar { max-width: 800px; margin: 0 auto; position: relative; }
        .search-input { width: 100%; background: #1A1A1A; border: 1px solid #222; padding: 22px 30px; color: #fff; font-size: 16px; border-radius: 2px; }
        .main-layout { display: grid; grid-template-columns: 320px 1fr; gap: 80px; padding: 80px 0; }
        .filter-title { font-size: 24px; margin-bottom: 50px; letter-spacing: 3px; border-bottom: 1px solid #1A1A1A; padding-bottom: 20px; color: #FFF; }
        .filter-label { font-size: 11px; letter-spacing: 3px; color: #555; margin-bottom: 20px; display: block; text-transform: uppercase; }
        .testimonial { margin-bottom: 25px; padding: 25px; border: 1px solid #222; background: #1A1A1A; border-radius: 4px; }
        .testimonial-quote { font-size: 11px; color: #D4AF37; font-style: italic; line-height: 1.6; margin-bottom: 15px; }
        .testimonial-name { font-size: 10px; font-weight: bold; color: #fff; text-transform: uppercase; letter-spacing: 2px; }
        .testimonial-role { font-size: 8px; color: #888; text-transform: uppercase; letter-spacing: 1px; margin-top: 4px; }
        .property-card { background: #151515; border: 1px solid #1A1A1A; transition: all 0.6s cubic-bezier(0.16, 1, 0.3, 1); }
        .property-card:hover { border-color: #D4AF37; transform: translateY(-10px); }
        .card-image-wrapper { height: 350px; overflow: hidden; }
        .card-image { width: 100%; height: 100%; transition: transform 1.2s ease; }
        .property-card:hover .card-image { transform: scale(1.1); }
        .card-details { padding: 40px; text-align: center; }
        .price { font-size: 24px; color: #D4AF37; margin-bottom: 15px; letter-spacing: 2px; }
        .address { font-size: 20px; margin-bottom: 12px; color: #FFF; font-weight: 300; }
        .specs { font-size: 12px; color: #555; letter-spacing: 3px; margin-bottom: 30px; text-transform: uppercase; }
        .btn-view { background: transparent; border: 1px solid #333; color: #FFF; padding: 15px 35px; font-size: 11px; letter-spacing: 4px; cursor: pointer; transition: 0.4s; text-transform: uppercase; }
        .property-card:hover .btn-view { background: #D4AF37; border-color: #D4AF37; color: #000; font-weight: bold; }
        footer { border-top: 1px solid #1A1A1A; padding: 120px 0; margin-top: 120px; font-size: 14px; color: #444; }
        .footer-grid { display: grid; grid-template-columns: 1.8fr 1fr 1fr; gap: 100px; }
        .footer-heading { color: #FFF; margin-bottom: 40px; font-size: 18px; letter-spacing: 3px; text-transform: uppercase; }
        .text-highlight { color: #D4AF37; }
    </style>
</head>
<body>
    <header>
        <div class="container" style="display:flex; justify-content:space-between; align-items:center;">
            <div class="brand">
                <div class="brand-logo font-serif uppercase">Theopolis</div>
                <span class="brand-sub uppercase">Premier Real Estate</span>
            </div>
            <nav>
                <ul>
                    <li><a href="#">Properties</a></li>
                    <li><a href="#">The Studio</a></li>
                    <li><a href="#">Contact</a></li>
                </ul>
            </nav>
        </div>
    </header>

    <div class="search-section">
        <div class="container">
            <div class="search-bar text-center">
                <input type="text" class="search-input" placeholder="Explore exclusive estates in {{.Listing.City}}...">
            </div>
        </div>
    </div>

    <div class="container main-layout">
        <aside>
            <div class="filter-title font-serif uppercase">Curate</div>

            <div style="margin-bottom: 60px;">
                <label class="filter-label">Market Strategy</label>
                <p style="font-size: 11px; color: #444; line-height: 1.8; margin-bottom: 30px;">{{.AgentName}} leverages {{.BrokerageName}}'s proprietary AI systems to match elite portfolios with global buyers instantly.</p>
                {{range .Listing.Testimonials}}
                <div class="testimonial">
                    <p class="testimonial-quote">&quot;{{.Quote}}&quot;</p>
                    <p class="testimonial-name">- {{.Name}}</p>
                    <p class="testimonial-role">{{.Role}}</p>
                </div>
                {{end}}
            </div>
        </aside>

        <main style="display:grid; grid-template-columns: repeat(auto-fill, minmax(400px, 1fr)); gap: 40px;">
            <div class="property-card">
                <div class="card-image-wrapper">
                    <img src="{{.Listing.ImageURL}}" class="card-image">
                </div>
                <div class="card-details">
                    <div class="price font-serif">{{.Listing.Price}}</div>
                    <div class="address font-serif uppercase">
                        {{.Listing.Address}}<br><span style="color:#444">{{.Listing.City}}, {{.Listing.State}}</span>
                    </div>
                    <div class="specs">
                        {{.Listing.Beds}} BEDS | {{.Listing.Baths}} BATHS | {{.Listing.SqFt}} SQ FT
                    </div>
                    <button class="btn-view">Inquire Privately</button>
                </div>
            </div>
        </main>
    </div>

    <footer>
        <div class="container footer-grid">
            <div>
                <h4 class="footer-heading font-serif">{{.BrokerageName}}</h4>
                <p style="line-height: 2;">{{.BrokerageName}} is the global benchmark for high-end real estate, representing the world's most distinguished estates. Principal agent {{.AgentName}} integrates cutting-edge AI to ensure zero lead friction and absolute discretion.</p>
                <br>
                <p style="color:#FFF;"><strong class="text-highlight">Principal Agent:</strong> {{.AgentName}}</p>
                <p style="color:#FFF;"><strong class="text-highlight">Brokerage:</strong> {{.BrokerageName}}</p>
            </div>
            <div>
                <h4 class="footer-heading font-serif">Registry</h4>
                <ul style="letter-spacing: 2px; font-size: 11px; text-transform: uppercase;">
                    <li style="margin-bottom:15px;"><a href="#">Private Collection</a></li>
                    <li style="margin-bottom:15px;"><a href="#">International Desk</a></li>
                    <li style="margin-bottom:15px;"><a href="#">Luxury Insights</a></li>
                </ul>
            </div>
            <div>
                <h4 class="footer-heading font-serif">Private Desk</h4>
                <p><a href="mailto:{{.AgentEmail}}" class="text-highlight" style="font-weight:bold;">{{.AgentEmail}}</a></p>
                <p style="margin-top:15px; color:#FFF;">{{.AgentPhone}}</p>
                <p style="margin-top:15px; font-size: 11px; color:#333;">2211 Norfolk St #650, Houston, TX 77098</p>
                <br>
                <p style="font-size:10px; opacity:0.3;">&copy; 2026 Monarch &amp; Co. AI Powered by Roy.</p>
            </div>
        </div>
    </footer>
</body>
</html>`
