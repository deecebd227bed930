package settings

// Keys the admin dashboard may set. Anything else is rejected.
const (
	HeroTitle      = "hero_title"
	HeroSubtitle   = "hero_subtitle"
	AboutText      = "about_text"
	ContactPhone   = "contact_phone"
	ContactEmail   = "contact_email"
	ContactAddress = "contact_address"
	InstagramURL   = "instagram_url"
	FacebookURL    = "facebook_url"
	OpeningHours   = "opening_hours"
)

var Keys = []string{
	HeroTitle,
	HeroSubtitle,
	AboutText,
	ContactPhone,
	ContactEmail,
	ContactAddress,
	InstagramURL,
	FacebookURL,
	OpeningHours,
}

const maxValueLen = 5000

func known(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
