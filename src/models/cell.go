package models

import "encoding/json"

// -----------------------------------------------------------------------------
// MCell: tagged optional value for a single observation.
// -----------------------------------------------------------------------------

// MCell is either a present float64 or an explicit absence marker.
// Absence is never encoded as 0 or NaN: a missing observation must stay
// distinguishable from a zero return all the way to the export boundary.
type MCell struct {
	value float64
	valid bool
}

// Present returns a cell holding v.
func Present(v float64) MCell {
	return MCell{value: v, valid: true}
}

// Absent returns the explicit "no observation" cell.
func Absent() MCell {
	return MCell{}
}

// -----------------------------------------------------------------------------

// Valid reports whether the cell holds an observation.
func (c MCell) Valid() bool {
	return c.valid
}

// Value returns the observation and whether it is present.
func (c MCell) Value() (float64, bool) {
	return c.value, c.valid
}

// Float returns the observation, or 0 for an absent cell.
// Callers must check Valid first when the distinction matters.
func (c MCell) Float() float64 {
	return c.value
}

// -----------------------------------------------------------------------------

// MarshalJSON encodes an absent cell as null, matching the wire shape of the
// upstream chart API (null slots in the close array).
func (c MCell) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

// UnmarshalJSON decodes null as absent and a number as present.
func (c *MCell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Absent()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Present(v)
	return nil
}
