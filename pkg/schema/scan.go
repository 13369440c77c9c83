package schema

import "time"

const ScanEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "ecoscan",
	"name": "scan_event",
	"fields" : [
		{"name": "gtin", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "eco_grade", "type": "string"},
		{"name": "carbon_footprint", "type": ["null", "double"], "default": null},
		{"name": "high_carbon", "type": "boolean"},
		{"name": "scanned_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ScanEventV1 struct {
	GTIN            string    `avro:"gtin"`
	Name            string    `avro:"name"`
	Category        string    `avro:"category"`
	EcoGrade        string    `avro:"eco_grade"`
	CarbonFootprint *float64  `avro:"carbon_footprint"`
	HighCarbon      bool      `avro:"high_carbon"`
	ScannedAt       time.Time `avro:"scanned_at"`
}
