// Package recommend matches accumulated hiring requirements against the
// service-package catalog with a deterministic weighted score.
package recommend

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServicePackage is one catalog entry.
type ServicePackage struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	// Industries this package targets. Matched after synonym folding.
	Industries []string `yaml:"industries"`
	// Urgencies this package suits; empty means any.
	Urgencies []string `yaml:"urgencies"`
	// RoleCountMin/Max bound the head count this package fits.
	// Max zero means unbounded.
	RoleCountMin int `yaml:"roleCountMin"`
	RoleCountMax int `yaml:"roleCountMax"`
	// BasePrice is the package price covering DefaultRoles openings.
	BasePrice float64 `yaml:"basePrice"`
	// SurchargePerRole is added for each opening beyond DefaultRoles.
	SurchargePerRole float64 `yaml:"surchargePerRole"`
	DefaultRoles     int     `yaml:"defaultRoles"`
	// BaseTimelineDays is the standard delivery timeline.
	BaseTimelineDays int `yaml:"baseTimelineDays"`
	// MinTimelineDays is the floor after urgency compression.
	MinTimelineDays int      `yaml:"minTimelineDays"`
	Features        []string `yaml:"features"`
}

// Catalog is the ordered set of service packages. Order is significant:
// score ties resolve to the earlier entry.
type Catalog struct {
	Packages []ServicePackage `yaml:"packages"`
}

// LoadCatalog reads and validates the catalog file. An empty or invalid
// catalog is an error; callers are expected to treat it as fatal.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Packages) == 0 {
		return fmt.Errorf("catalog has no packages")
	}
	seen := make(map[string]bool)
	for i, p := range c.Packages {
		switch {
		case p.ID == "":
			return fmt.Errorf("package %d: missing id", i)
		case seen[p.ID]:
			return fmt.Errorf("package %q: duplicate id", p.ID)
		case p.Name == "":
			return fmt.Errorf("package %q: missing name", p.ID)
		case p.BasePrice <= 0:
			return fmt.Errorf("package %q: basePrice must be positive", p.ID)
		case p.BaseTimelineDays <= 0:
			return fmt.Errorf("package %q: baseTimelineDays must be positive", p.ID)
		case p.MinTimelineDays <= 0 || p.MinTimelineDays > p.BaseTimelineDays:
			return fmt.Errorf("package %q: minTimelineDays must be in (0, baseTimelineDays]", p.ID)
		case p.DefaultRoles <= 0:
			return fmt.Errorf("package %q: defaultRoles must be positive", p.ID)
		case p.RoleCountMax > 0 && p.RoleCountMin > p.RoleCountMax:
			return fmt.Errorf("package %q: roleCountMin exceeds roleCountMax", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Find returns the package with the given id, or nil.
func (c *Catalog) Find(id string) *ServicePackage {
	for i := range c.Packages {
		if c.Packages[i].ID == id {
			return &c.Packages[i]
		}
	}
	return nil
}

// industrySynonyms folds common variants onto catalog industry terms.
var industrySynonyms = map[string]string{
	"tech":               "technology",
	"software":           "technology",
	"it":                 "technology",
	"saas":               "technology",
	"financial services": "finance",
	"banking":            "finance",
	"medical":            "healthcare",
	"health":             "healthcare",
	"pharma":             "healthcare",
	"healthtech":         "healthcare",
	"e-commerce":         "ecommerce",
	"consumer":           "ecommerce",
	"retail":             "ecommerce",
	"learning":           "edtech",
	"academic":           "edtech",
	"education":          "edtech",
}

// canonicalIndustry lowercases and folds synonyms.
func canonicalIndustry(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, ok := industrySynonyms[s]; ok {
		return folded
	}
	return s
}
