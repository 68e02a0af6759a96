package models

type SiteConfig struct {
	MediaFolder  string    `yaml:"media_folder"`
	PublicFolder string    `yaml:"public_folder"`
	Sections     []Section `yaml:"sections"`
}

type Section struct {
	Name         string  `yaml:"name"`
	Label        string  `yaml:"label"`
	Folder       string  `yaml:"folder"`
	Path         string  `yaml:"path"`
	Extension    string  `yaml:"extension"`
	MediaFolder  string  `yaml:"media_folder,omitempty"`
	PublicFolder string  `yaml:"public_folder,omitempty"`
	Fields       []Field `yaml:"fields"`
}

type Field struct {
	Name    string      `yaml:"name"`
	Widget  string      `yaml:"widget"`
	Default interface{} `yaml:"default,omitempty"`
}
