package forms

import (
	"fmt"
	"strconv"
)

// Checkbox is a bool that also accepts what an HTML checkbox posts:
// "on" when checked, nothing or "off" otherwise.
type Checkbox bool

func (c *Checkbox) UnmarshalParam(param string) error {
	switch param {
	case "", "off":
		*c = false
		return nil
	case "on":
		*c = true
		return nil
	}

	v, err := strconv.ParseBool(param)
	if err != nil {
		return fmt.Errorf("invalid checkbox value %q", param)
	}
	*c = Checkbox(v)
	return nil
}
