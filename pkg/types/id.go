package types

import (
	"bytes"
	"strconv"
	"strings"
)

// FlexID is a product identifier that may arrive as a JSON string or number.
// Both decode to the same canonical string form so that identity comparisons
// never miss on a primitive-type mismatch.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*f = ""
		return nil
	}
	s := string(raw)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*f = FlexID(strings.TrimSpace(s))
	return nil
}

func (f FlexID) String() string {
	return string(f)
}
