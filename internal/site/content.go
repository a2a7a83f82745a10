// Package site holds the landing page copy and the in-page navigation shell
// shared by the web renderer and the terminal client.
package site

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embeddedContent []byte

// Section ids in page order. Nav items must point at one of these.
const (
	SectionHero     = "hero"
	SectionProblem  = "problem"
	SectionServices = "services"
	SectionProcess  = "process"
	SectionTalent   = "talent"
	SectionTeam     = "team"
	SectionContact  = "contact"
)

var sectionOrder = []string{
	SectionHero, SectionProblem, SectionServices, SectionProcess,
	SectionTalent, SectionTeam, SectionContact,
}

type NavItem struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type CTA struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

type Hero struct {
	Headline     string   `yaml:"headline"`
	Subheadline  string   `yaml:"subheadline"`
	Body         string   `yaml:"body"`
	PrimaryCTA   CTA      `yaml:"primary_cta"`
	SecondaryCTA CTA      `yaml:"secondary_cta"`
	Stats        []string `yaml:"stats"`
}

type Point struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Problem struct {
	Title    string  `yaml:"title"`
	Quote    string  `yaml:"quote"`
	Subtitle string  `yaml:"subtitle"`
	Points   []Point `yaml:"points"`
}

// Pod is a bundled staffing offering. Presentation only.
type Pod struct {
	Name  string   `yaml:"name"`
	Icon  string   `yaml:"icon"`
	Size  string   `yaml:"size"`
	Roles []string `yaml:"roles"`
	Goal  string   `yaml:"goal"`
}

type Services struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Pods     []Pod  `yaml:"pods"`
}

type ProcessStep struct {
	Day    string `yaml:"day"`
	Title  string `yaml:"title"`
	Detail string `yaml:"detail"`
}

type Process struct {
	Title           string        `yaml:"title"`
	Subtitle        string        `yaml:"subtitle"`
	Steps           []ProcessStep `yaml:"steps"`
	GuaranteesTitle string        `yaml:"guarantees_title"`
	Guarantees      []string      `yaml:"guarantees"`
}

type RoleCluster struct {
	Name  string   `yaml:"name"`
	Roles []string `yaml:"roles"`
}

type Talent struct {
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle"`
	Clusters []RoleCluster `yaml:"clusters"`
	Note     string        `yaml:"note"`
}

type ComparisonRow struct {
	Feature string   `yaml:"feature"`
	Values  []string `yaml:"values"`
}

type Comparison struct {
	Title    string          `yaml:"title"`
	Subtitle string          `yaml:"subtitle"`
	Columns  []string        `yaml:"columns"`
	Rows     []ComparisonRow `yaml:"rows"`
	Footnote string          `yaml:"footnote"`
}

type TeamMember struct {
	Name       string `yaml:"name"`
	Role       string `yaml:"role"`
	Background string `yaml:"background"`
	Focus      string `yaml:"focus"`
}

type Team struct {
	Title    string       `yaml:"title"`
	Subtitle string       `yaml:"subtitle"`
	Members  []TeamMember `yaml:"members"`
}

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Contact struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	Stats        []Stat `yaml:"stats"`
	OfferTitle   string `yaml:"offer_title"`
	Offer        string `yaml:"offer"`
	FormTitle    string `yaml:"form_title"`
	Email        string `yaml:"email"`
	Website      string `yaml:"website"`
	ResponseTime string `yaml:"response_time"`
	CallTitle    string `yaml:"call_title"`
	CallBody     string `yaml:"call_body"`
	CallCTA      string `yaml:"call_cta"`
}

type FooterColumn struct {
	Title string   `yaml:"title"`
	Links []string `yaml:"links"`
}

type Footer struct {
	Columns []FooterColumn `yaml:"columns"`
}

// Content is every static block of the landing page.
type Content struct {
	Brand      string     `yaml:"brand"`
	Tagline    string     `yaml:"tagline"`
	Nav        []NavItem  `yaml:"nav"`
	Hero       Hero       `yaml:"hero"`
	Problem    Problem    `yaml:"problem"`
	Services   Services   `yaml:"services"`
	Process    Process    `yaml:"process"`
	Talent     Talent     `yaml:"talent"`
	Comparison Comparison `yaml:"comparison"`
	Team       Team       `yaml:"team"`
	Contact    Contact    `yaml:"contact"`
	Footer     Footer     `yaml:"footer"`
}

// Load parses the embedded page copy.
func Load() (*Content, error) {
	return Parse(embeddedContent)
}

// LoadFile parses page copy from disk, for editing copy without a rebuild.
func LoadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SectionIDs returns the anchor ids in page order.
func SectionIDs() []string {
	out := make([]string, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

func (c *Content) validate() error {
	if c.Brand == "" {
		return fmt.Errorf("content: brand is empty")
	}
	known := make(map[string]bool, len(sectionOrder))
	for _, id := range sectionOrder {
		known[id] = true
	}
	for _, item := range c.Nav {
		if !known[item.ID] {
			return fmt.Errorf("content: nav item %q points at unknown section %q", item.Label, item.ID)
		}
	}
	for _, row := range c.Comparison.Rows {
		if len(row.Values) != len(c.Comparison.Columns) {
			return fmt.Errorf("content: comparison row %q has %d values for %d columns",
				row.Feature, len(row.Values), len(c.Comparison.Columns))
		}
	}
	return nil
}
