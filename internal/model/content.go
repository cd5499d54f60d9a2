package model

type Project struct {
	ID          int      `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
	Image       string   `json:"image"`
}

type Skill struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
	Icon     string   `json:"icon"`
}

type Achievement struct {
	Title  string `json:"title"`
	Number int    `json:"number"`
	Icon   string `json:"icon"`
	Desc   string `json:"desc"`
}

type NavLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

type Social struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Profile is the site owner as shown in hero, footer and metadata.
type Profile struct {
	Name     string   `json:"name"`
	Initials string   `json:"initials"`
	Headline string   `json:"headline"`
	Tagline  string   `json:"tagline"`
	Email    string   `json:"email"`
	Socials  []Social `json:"socials"`
}
