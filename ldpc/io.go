package ldpc

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
)

//LoadTable reads a JSON table from path and builds its code.
func LoadTable(path string) (*Code, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Table
	if err := json.Unmarshal(bs, &t); err != nil {
		return nil, fmt.Errorf("decoding table %v: %w", path, err)
	}

	return New(t)
}

//SaveTable writes t to path as JSON.
func SaveTable(path string, t Table) error {
	bs, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, bs, 0644)
}
