package analytics

// Terrain classifies the surface of a course section.
type Terrain string

// Terrain values.
const (
	TerrainTrail Terrain = "trail"
	TerrainRoad  Terrain = "road"
)

// Label returns the display label for a terrain.
func (t Terrain) Label() string {
	if t == TerrainRoad {
		return "Road"
	}
	return "Trail"
}

// SectionOverride replaces the parity-derived terrain of one section,
// e.g. the historical weather exception that rerouted a trail section
// onto road for a single edition.
type SectionOverride struct {
	Section int     `json:"section"`
	Terrain Terrain `json:"terrain"`
	Label   string  `json:"label"`
}

// SectionRules describes how the lap axis partitions into sections:
// the first section's length, the length of subsequent odd-numbered
// sections, the length of even-numbered sections, and any per-edition
// terrain overrides.
type SectionRules struct {
	FirstLength int
	OddLength   int
	EvenLength  int
	Overrides   []SectionOverride
}

// DefaultSectionRules returns the course layout shared by both
// editions: section 1 covers 10 laps, later odd sections 11, even
// sections 13, odd terrain trail and even terrain road.
func DefaultSectionRules() SectionRules {
	return SectionRules{FirstLength: 10, OddLength: 11, EvenLength: 13}
}

// Section is one contiguous run of laps with a single terrain.
type Section struct {
	Number   int     `json:"number"`
	StartLap int     `json:"start_lap"`
	EndLap   int     `json:"end_lap"`
	Terrain  Terrain `json:"terrain"`
	Label    string  `json:"label"`
}

func (r SectionRules) length(number int) int {
	switch {
	case number == 1:
		return r.FirstLength
	case number%2 == 1:
		return r.OddLength
	default:
		return r.EvenLength
	}
}

func (r SectionRules) terrain(number int) (Terrain, string) {
	terrain := TerrainTrail
	if number%2 == 0 {
		terrain = TerrainRoad
	}
	for _, o := range r.Overrides {
		if o.Section == number {
			label := o.Label
			if label == "" {
				label = o.Terrain.Label()
			}
			return o.Terrain, label
		}
	}
	return terrain, terrain.Label()
}

// SectionPlan partitions laps 1..maxLap into consecutive sections,
// clipping the final section at maxLap. The result paints the chart's
// background bands and their center-aligned labels.
func SectionPlan(maxLap int, rules SectionRules) []Section {
	if maxLap < 1 || rules.FirstLength < 1 || rules.OddLength < 1 || rules.EvenLength < 1 {
		return nil
	}

	var plan []Section
	start := 1
	for number := 1; start <= maxLap; number++ {
		end := start + rules.length(number) - 1
		if end > maxLap {
			end = maxLap
		}
		terrain, label := rules.terrain(number)
		plan = append(plan, Section{
			Number:   number,
			StartLap: start,
			EndLap:   end,
			Terrain:  terrain,
			Label:    label,
		})
		start = end + 1
	}
	return plan
}

// SectionAt resolves the section containing the given lap. The second
// return value is false for laps below 1.
func SectionAt(lap int, rules SectionRules) (Section, bool) {
	if lap < 1 {
		return Section{}, false
	}
	plan := SectionPlan(lap, rules)
	if len(plan) == 0 {
		return Section{}, false
	}
	return plan[len(plan)-1], true
}
