package microsite

// Listing is the generated content backing one private portfolio page. Field
// tags line up with the JSON shape the content generator is asked to emit.
type Listing struct {
	PageTitle    string        `json:"page_title"`
	Price        string        `json:"listing_price"`
	Address      string        `json:"listing_address"`
	City         string        `json:"listing_city"`
	State        string        `json:"listing_state"`
	Beds         string        `json:"listing_beds"`
	Baths        string        `json:"listing_baths"`
	SqFt         string        `json:"listing_sqft"`
	ImageURL     string        `json:"listing_image_url"`
	Testimonials []Testimonial `json:"testimonials"`
}

type Testimonial struct {
	Name  string `json:"name"`
	Quote string `json:"quote"`
	Role  string `json:"role"`
}

// DefaultListing is served when content generation is unavailable so the
// portfolio flow still completes end to end.
func DefaultListing(leadName string) *Listing {
	return &Listing{
		PageTitle: leadName + " | The Monarch Collection",
		Price:     "$8,250,000",
		Address:   "2100 Memorial Drive",
		City:      "Houston",
		State:     "TX",
		Beds:      "6",
		Baths:     "5.5",
		SqFt:      "9,200",
		ImageURL:  "https://images.pexels.com/photos/323780/pexels-photo-323780.jpeg",
		Testimonials: []Testimonial{
			{
				Name:  "John R.",
				Role:  "Developer",
				Quote: "Kashmir's AI integration at Monarch & Co captured a $12M lead while we were at dinner. Remarkable.",
			},
			{
				Name:  "Elena S.",
				Role:  "Broker",
				Quote: "The black-tie service of AI. Kashmir's high-net-worth clients actually love the immediate response.",
			},
			{
				Name:  "Marcus T.",
				Role:  "Investor",
				Quote: "Monarch & Co is ahead of the curve. No inquiry ever goes unanswered.",
			},
		},
	}
}
