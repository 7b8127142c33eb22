// Package registry loads the static authored catalogues: regulations with
// their categories and recommendations, the cross-cutting pillar list, the
// pairwise overlap table, the penalty tiers, and the cost bands. Catalogues
// are loaded once at process start, validated, and injected by reference
// into every aggregation call; the Registry is immutable after Load.
package registry

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/penalty"
	"github.com/sells-group/compliance-hub/internal/roadmap"
)

//go:embed catalogues/regulations.yaml
var regulationsYAML []byte

//go:embed catalogues/pillars.yaml
var pillarsYAML []byte

//go:embed catalogues/overlaps.yaml
var overlapsYAML []byte

//go:embed catalogues/penalties.yaml
var penaltiesYAML []byte

//go:embed catalogues/costs.yaml
var costsYAML []byte

// Registry holds every authored catalogue, indexed for lookup.
type Registry struct {
	Regulations  []model.Regulation
	Pillars      []model.Pillar
	Overlaps     []model.OverlapMapping
	PenaltyTable penalty.Table
	Costs        roadmap.CostCatalogue

	byID map[string]*model.Regulation
}

// Load parses the embedded catalogues and validates referential integrity.
// Entries referencing unknown regulations or categories are dropped with a
// warning rather than failing the load: partially-drifted authored data
// must degrade gracefully.
func Load() (*Registry, error) {
	var regs struct {
		Regulations []model.Regulation `yaml:"regulations"`
	}
	if err := yaml.Unmarshal(regulationsYAML, &regs); err != nil {
		return nil, eris.Wrap(err, "registry: parse regulations")
	}

	var pillars struct {
		Pillars []model.Pillar `yaml:"pillars"`
	}
	if err := yaml.Unmarshal(pillarsYAML, &pillars); err != nil {
		return nil, eris.Wrap(err, "registry: parse pillars")
	}

	var overlaps struct {
		Overlaps []model.OverlapMapping `yaml:"overlaps"`
	}
	if err := yaml.Unmarshal(overlapsYAML, &overlaps); err != nil {
		return nil, eris.Wrap(err, "registry: parse overlaps")
	}

	var penalties struct {
		Tiers penalty.Table `yaml:"tiers"`
	}
	if err := yaml.Unmarshal(penaltiesYAML, &penalties); err != nil {
		return nil, eris.Wrap(err, "registry: parse penalties")
	}

	var costs roadmap.CostCatalogue
	if err := yaml.Unmarshal(costsYAML, &costs); err != nil {
		return nil, eris.Wrap(err, "registry: parse costs")
	}

	r := &Registry{
		Regulations:  regs.Regulations,
		Pillars:      pillars.Pillars,
		Overlaps:     overlaps.Overlaps,
		PenaltyTable: penalties.Tiers,
		Costs:        costs,
		byID:         make(map[string]*model.Regulation, len(regs.Regulations)),
	}
	for i := range r.Regulations {
		r.byID[r.Regulations[i].ID] = &r.Regulations[i]
	}

	r.validate()

	zap.L().Info("registry: catalogues loaded",
		zap.Int("regulations", len(r.Regulations)),
		zap.Int("pillars", len(r.Pillars)),
		zap.Int("overlaps", len(r.Overlaps)),
	)
	return r, nil
}

// validate drops recommendations, pillar components, and overlap entries
// that reference unknown regulations or categories.
func (r *Registry) validate() {
	for i := range r.Regulations {
		reg := &r.Regulations[i]
		known := make(map[string]bool, len(reg.Categories))
		for _, c := range reg.Categories {
			known[c.ID] = true
		}
		kept := reg.Recommendations[:0]
		for _, rec := range reg.Recommendations {
			if !known[rec.CategoryID] {
				zap.L().Warn("registry: dropping recommendation with unknown category",
					zap.String("regulation", reg.ID),
					zap.String("recommendation", rec.ID),
					zap.String("category", rec.CategoryID),
				)
				continue
			}
			kept = append(kept, rec)
		}
		reg.Recommendations = kept
	}

	for i := range r.Pillars {
		p := &r.Pillars[i]
		kept := p.Components[:0]
		for _, c := range p.Components {
			if !r.hasCategory(c.RegulationID, c.CategoryID) {
				zap.L().Warn("registry: dropping pillar component with unknown mapping",
					zap.String("pillar", p.ID),
					zap.String("regulation", c.RegulationID),
					zap.String("category", c.CategoryID),
				)
				continue
			}
			kept = append(kept, c)
		}
		p.Components = kept
	}

	kept := r.Overlaps[:0]
	for _, o := range r.Overlaps {
		if r.byID[o.RegA] == nil || r.byID[o.RegB] == nil {
			zap.L().Warn("registry: dropping overlap with unknown regulation",
				zap.String("reg_a", o.RegA),
				zap.String("reg_b", o.RegB),
			)
			continue
		}
		kept = append(kept, o)
	}
	r.Overlaps = kept
}

func (r *Registry) hasCategory(regulationID, categoryID string) bool {
	reg := r.byID[regulationID]
	if reg == nil {
		return false
	}
	for _, c := range reg.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}

// Regulation returns the catalogue entry for the given ID.
func (r *Registry) Regulation(id string) (model.Regulation, bool) {
	reg := r.byID[id]
	if reg == nil {
		return model.Regulation{}, false
	}
	return *reg, true
}

// RegulationIDs returns the catalogue order of regulation IDs.
func (r *Registry) RegulationIDs() []string {
	ids := make([]string, 0, len(r.Regulations))
	for _, reg := range r.Regulations {
		ids = append(ids, reg.ID)
	}
	return ids
}
