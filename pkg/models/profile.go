package models

// AuthorProfile is the front matter of the author page. The body of the
// file holds the free-form bio.
type AuthorProfile struct {
	Name       string `yaml:"name" json:"name" validate:"required"`
	Avatar     string `yaml:"avatar" json:"avatar"`
	Occupation string `yaml:"occupation" json:"occupation"`
	Email      string `yaml:"email" json:"email" validate:"omitempty,email"`
	Twitter    string `yaml:"twitter" json:"twitter" validate:"omitempty,url"`
	GitHub     string `yaml:"github" json:"github" validate:"omitempty,url"`
}
