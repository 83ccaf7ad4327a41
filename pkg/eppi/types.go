package eppi

import (
	"encoding/json"
	"fmt"
)

// AttributeNode is one node of the nested classification forest as returned
// by ReviewSetList/FetchJSON. The same shape appears at every level: the
// top-level entries are the taxonomy sets, their nested attributesList holds
// the actual codes.
type AttributeNode struct {
	AttributeName           string     `json:"attributeName"`
	AttributeID             int64      `json:"attributeId"`
	ParentAttributeID       *int64     `json:"parentAttributeId,omitempty"`
	SetID                   int64      `json:"setId"`
	AttributeSetDescription string     `json:"attributeSetDescription"`
	Attributes              NestedList `json:"attributes"`
}

// NestedList wraps the nested attribute list envelope.
type NestedList struct {
	AttributesList []AttributeNode `json:"attributesList"`
}

// FrequencyRow is one child-code count from Frequencies/GetFrequenciesJSON.
type FrequencyRow struct {
	Attribute   string `json:"attribute"`
	AttributeID int64  `json:"attributeId"`
	ItemCount   int64  `json:"itemCount"`
	SetID       int64  `json:"setId"`
}

type frequenciesResponse struct {
	Results []FrequencyRow `json:"results"`
}

// Record is one bibliographic reference. Field names mirror the item list
// JSON; everything besides ItemID is display data passed through as-is.
type Record struct {
	ItemID         int64      `json:"itemId"`
	Title          string     `json:"title"`
	Abstract       string     `json:"abstract"`
	Authors        string     `json:"authors"`
	Year           LooseValue `json:"year"`
	Issue          string     `json:"issue"`
	Volume         string     `json:"volume"`
	ParentTitle    string     `json:"parentTitle"`
	Pages          string     `json:"pages"`
	StandardNumber string     `json:"standardNumber"`
	DOI            string     `json:"doi"`
	City           string     `json:"city"`
	Publisher      string     `json:"publisher"`
	URL            string     `json:"url"`
	TypeName       string     `json:"typeName"`
	QuickCitation  string     `json:"quickCitation"`
}

// LooseValue decodes a JSON field that the service emits inconsistently as
// either a string or a number (the year field in particular).
type LooseValue string

func (v *LooseValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = LooseValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value is neither string nor number: %s", data)
	}
	*v = LooseValue(n.String())
	return nil
}

func (v LooseValue) String() string {
	return string(v)
}

type itemPage struct {
	Items []Record `json:"items"`

	TotalItemCount int64 `json:"totalItemCount"`
}

type itemListResponse struct {
	Items itemPage `json:"items"`
}

// YearCount is one bucket of the publication year histogram.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// CrosstabRow is one y-axis attribute with its per-column record counts.
type CrosstabRow struct {
	AttributeName string  `json:"attributeName"`
	Counts        []int64 `json:"counts"`
}

// Crosstab is the raw result of Frequencies/GetCrosstabJSON: column names
// from the x attribute, one row of counts per y attribute.
type Crosstab struct {
	ColumnAttNames []string      `json:"columnAttNames"`
	Rows           []CrosstabRow `json:"rows"`
}
