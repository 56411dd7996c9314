package compare

import (
	"encoding/json"
)

// JSONFormatter renders a state comparison as JSON with amounts in cents
type JSONFormatter struct {
	Pretty bool
}

// Format marshals the rounded comparison set
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	rounded := compSet.Rounded()

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(rounded, "", "  ")
	} else {
		data, err = json.Marshal(rounded)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
