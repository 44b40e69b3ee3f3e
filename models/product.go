package models

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product adalah item menu dari endpoint /pos/{slug}/menu.
type Product struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Price    Amount    `json:"price"`
	Image    string    `json:"image,omitempty"`
	Category *Category `json:"category,omitempty"`
}

func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
