package metajson

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
)

// MetaJSON is the georeferencing sidecar for the PNG elevation data in a
// run directory. The images themselves carry no coordinates, so xll/yll
// and the cell size come from here.
type MetaJSON struct {
	WorldName       string  `json:"worldName"`
	Xll             float64 `json:"xll"`
	Yll             float64 `json:"yll"`
	CellSize        float64 `json:"cellsize"`
	ElevationOffset float64 `json:"elevationOffset"`
	// Corner marks xll/yll as the lower-left cell corner instead of the
	// cell center.
	Corner bool `json:"corner"`
}

// Read meta.json from given path
func Read(metaJSONPath string) (MetaJSON, error) {

	var val MetaJSON

	jsonFile, err := os.Open(metaJSONPath)
	if err != nil {
		return val, err
	}
	defer jsonFile.Close()

	byteValue, err := ioutil.ReadAll(jsonFile)
	if err != nil {
		return val, err
	}

	if err := json.Unmarshal(byteValue, &val); err != nil {
		return val, err
	}

	if val.CellSize <= 0 {
		return val, fmt.Errorf("meta.json cellsize must be greater than 0")
	}

	return val, nil
}
