package domain

import "time"

type ScanStatus int

const (
	StatusSuccess ScanStatus = iota
	StatusNotFound
	StatusError
)

func (s ScanStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not_found"
	case StatusError:
		return "error"
	}
	return ""
}

// A ScanReport is the aggregate outcome of one pipeline run.
// Product, Assessment, Recommendations and Alternatives are populated
// only when Status is StatusSuccess; Message explains the other two.
type ScanReport struct {
	Status          ScanStatus
	GTIN            string
	Product         Product
	Assessment      *Assessment
	Recommendations []Recommendation
	Alternatives    []Alternative
	Message         string
}

// A ScanEvent is the record of a completed scan, published to the
// event stream and persisted in history.
type ScanEvent struct {
	GTIN       string
	Name       string
	Category   string
	EcoGrade   Grade
	Footprint  *Assessment
	HighCarbon bool
	ScannedAt  time.Time
}
