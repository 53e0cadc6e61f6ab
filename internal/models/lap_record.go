package models

// LapRecord is one lap split for one participant. Records carry no
// lap number; a runner's lap sequence is the order their records
// appear in the dataset.
type LapRecord struct {
	Bib      int    `json:"bib" validate:"required,gt=0"`
	LapSplit string `json:"lap_split"`
}
