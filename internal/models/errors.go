package models

import "errors"

// Custom errors
var (
	ErrUnknownEdition    = errors.New("unknown edition")
	ErrSnapshotNotLoaded = errors.New("no edition snapshot loaded")
	ErrEmptyDataset      = errors.New("edition dataset is empty")
	ErrUnknownBib        = errors.New("bib not present in current edition")
)
