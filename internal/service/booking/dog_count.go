package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DogCount accepts a JSON number or a numeric string. An empty string or null
// decodes to zero, which the required check reports as missing.
type DogCount int

func (d *DogCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*d = 0
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("numberOfDogs: %q is not a whole number", raw)
	}
	*d = DogCount(n)
	return nil
}
